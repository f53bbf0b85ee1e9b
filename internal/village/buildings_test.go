package village

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/KubeRPG_Go/internal/domain"
)

func TestBuildingAt(t *testing.T) {
	tests := []struct {
		name   string
		point  domain.Point
		want   domain.BuildingID
		wantOK bool
	}{
		{"forge center", domain.Point{X: 160, Y: 120}, domain.BuildingForge, true},
		{"forge corner", domain.Point{X: 100, Y: 80}, domain.BuildingForge, true},
		{"forge far edge", domain.Point{X: 220, Y: 160}, domain.BuildingForge, true},
		{"house", domain.Point{X: 700, Y: 500}, domain.BuildingHouse, true},
		{"bar", domain.Point{X: 61, Y: 509}, domain.BuildingBar, true},
		{"donjon", domain.Point{X: 430, Y: 280}, domain.BuildingDonjon, true},
		{"staging point is open ground", domain.StagingPoint, "", false},
		{"just outside forge", domain.Point{X: 220.5, Y: 120}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := BuildingAt(tt.point)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, b.ID)
		})
	}
}

func TestBuildingLabels(t *testing.T) {
	labels := make(map[domain.BuildingID]string)
	for _, b := range Buildings {
		labels[b.ID] = b.Label
	}

	assert.Equal(t, map[domain.BuildingID]string{
		domain.BuildingForge:  "Forge",
		domain.BuildingHouse:  "Maison",
		domain.BuildingBar:    "Bar",
		domain.BuildingDonjon: "Donjon",
	}, labels)
}

func TestLookupBuilding(t *testing.T) {
	b, ok := LookupBuilding(domain.BuildingDonjon)
	assert.True(t, ok)
	assert.Equal(t, BuildingNameDonjon, b.Name)

	_, ok = LookupBuilding("mill")
	assert.False(t, ok)
}
