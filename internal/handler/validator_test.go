package handler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateColor(t *testing.T) {
	tests := map[string]bool{
		"#a0B1c2":  true,
		"crimson":  true,
		"#abc":     false,
		"#gggggg":  false,
		"re":       false,
		"red blue": false,
	}
	for color, valid := range tests {
		err := GetValidator().ValidateStruct(RegisterAccountRequest{Pseudonym: "p", Color: color})
		assert.Equal(t, valid, err == nil, color)
	}
}

func TestValidateSlotAndBuilding(t *testing.T) {
	assert.NoError(t, GetValidator().ValidateStruct(UnequipRequest{Slot: "Orbe"}))
	assert.Error(t, GetValidator().ValidateStruct(UnequipRequest{Slot: "orbe"}), "slot names are exact")

	assert.NoError(t, GetValidator().ValidateStruct(InteractRequest{Building: "donjon"}))
	assert.Error(t, GetValidator().ValidateStruct(InteractRequest{Building: "tavern"}))
}

func TestFormatValidationError(t *testing.T) {
	err := GetValidator().ValidateStruct(RegisterAccountRequest{Color: "#12"})
	require.Error(t, err)

	fields := FormatValidationError(err)

	assert.Equal(t, ValidationMsgRequired, fields["pseudonym"])
	assert.Equal(t, ValidationMsgColor, fields["color"])
	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, ValidationMsgFormat, FormatValidationError(errors.New("boom"))["error"])
}
