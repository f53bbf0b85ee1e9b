package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/KubeRPG_Go/internal/domain"
)

func accountWith(level int, items ...domain.Item) *domain.Account {
	acc := &domain.Account{
		Pseudonym: "tester",
		Progress:  domain.Progress{Level: level},
		Equipment: make(map[domain.ItemType]string),
	}
	for i, it := range items {
		it.ID = string(it.Type) + "-" + string(rune('a'+i))
		acc.Inventory = append(acc.Inventory, it)
		if err := acc.Equip(it.ID); err != nil {
			panic(err)
		}
	}
	return acc
}

func TestDerive_BaseStatsAtLevelOne(t *testing.T) {
	d := NewDeriver(DefaultConfig())

	got := d.Derive(accountWith(1))

	assert.Equal(t, domain.DerivedStats{HP: 30, Damage: 4, Defense: 0}, got)
}

func TestDerive_UnequippedItemsIgnored(t *testing.T) {
	d := NewDeriver(DefaultConfig())
	acc := domain.NewAccount("starter", "#fff")

	got := d.Derive(acc)

	assert.Equal(t, domain.DerivedStats{HP: 30, Damage: 4, Defense: 0}, got,
		"starter items count only once equipped")
}

func TestDerive_EquippedStarterGear(t *testing.T) {
	d := NewDeriver(DefaultConfig())
	acc := domain.NewAccount("starter", "#fff")
	for _, it := range acc.Inventory {
		require.NoError(t, acc.Equip(it.ID))
	}

	got := d.Derive(acc)

	assert.Equal(t, domain.DerivedStats{HP: 35, Damage: 7, Defense: 0}, got)
}

func TestDerive_FullLoadout(t *testing.T) {
	d := NewDeriver(DefaultConfig())
	acc := accountWith(3,
		domain.Item{Type: domain.ItemTypeSword, Rarity: domain.RarityRare, Power: 5},
		domain.Item{Type: domain.ItemTypeOrbe, Rarity: domain.RarityEpic, Power: 2},
		domain.Item{Type: domain.ItemTypeHalo, Rarity: domain.RarityLegendary, Power: 4},
	)

	got := d.Derive(acc)

	// damage (4+7)*1.12=12.32, defense 4*1.08=4.32, hp (30+12)*1.16=48.72
	assert.Equal(t, domain.DerivedStats{HP: 49, Damage: 13, Defense: 5}, got)
}

func TestDerive_DoesNotMutateAccount(t *testing.T) {
	d := NewDeriver(DefaultConfig())
	acc := accountWith(4, domain.Item{Type: domain.ItemTypeSword, Rarity: domain.RarityEpic, Power: 6})
	before := acc.Clone()

	first := d.Derive(acc)
	second := d.Derive(acc)

	assert.Equal(t, first, second)
	assert.Equal(t, before, acc)
}

func TestDerive_DanglingEquipmentContributesNothing(t *testing.T) {
	d := NewDeriver(DefaultConfig())
	acc := accountWith(1)
	acc.Equipment[domain.ItemTypeSword] = "missing"

	assert.Equal(t, domain.DerivedStats{HP: 30, Damage: 4, Defense: 0}, d.Derive(acc))
}

func TestDerive_LevelNeverDecreasesStats(t *testing.T) {
	d := NewDeriver(DefaultConfig())

	for _, rarity := range domain.Rarities {
		for _, itemType := range domain.ItemTypes {
			prev := domain.DerivedStats{}
			for level := 1; level <= 40; level++ {
				got := d.Derive(accountWith(level, domain.Item{Type: itemType, Rarity: rarity, Power: 3}))
				assert.GreaterOrEqual(t, got.HP, prev.HP, "hp %s %s L%d", rarity, itemType, level)
				assert.GreaterOrEqual(t, got.Damage, prev.Damage, "damage %s %s L%d", rarity, itemType, level)
				assert.GreaterOrEqual(t, got.Defense, prev.Defense, "defense %s %s L%d", rarity, itemType, level)
				prev = got
			}
		}
	}
}

func TestDerive_RarityIncreasesContribution(t *testing.T) {
	d := NewDeriver(DefaultConfig())

	for _, power := range []int{1, 2, 5, 10} {
		for i := 1; i < len(domain.Rarities); i++ {
			lower := domain.Item{Type: domain.ItemTypeSword, Rarity: domain.Rarities[i-1], Power: power}
			higher := domain.Item{Type: domain.ItemTypeSword, Rarity: domain.Rarities[i], Power: power}
			assert.Greater(t, d.ItemContribution(higher), d.ItemContribution(lower))
		}
	}
}

func TestDerive_RarityIncreasesDerivedStat(t *testing.T) {
	d := NewDeriver(DefaultConfig())

	tests := []struct {
		itemType domain.ItemType
		pick     func(domain.DerivedStats) int
	}{
		{domain.ItemTypeSword, func(s domain.DerivedStats) int { return s.Damage }},
		{domain.ItemTypeOrbe, func(s domain.DerivedStats) int { return s.Defense }},
		{domain.ItemTypeHalo, func(s domain.DerivedStats) int { return s.HP }},
	}

	for _, tt := range tests {
		t.Run(string(tt.itemType), func(t *testing.T) {
			for level := 1; level <= 10; level++ {
				prev := -1
				for _, rarity := range domain.Rarities {
					got := tt.pick(d.Derive(accountWith(level, domain.Item{Type: tt.itemType, Rarity: rarity, Power: 5})))
					assert.Greater(t, got, prev, "%s at level %d", rarity, level)
					prev = got
				}
			}
		})
	}
}

func TestDerive_CustomConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Base = domain.DerivedStats{HP: 50, Damage: 10, Defense: 2}
	cfg.RarityMultipliers = map[domain.Rarity]float64{domain.RarityRare: 2}
	d := NewDeriver(cfg)

	got := d.Derive(accountWith(1, domain.Item{Type: domain.ItemTypeOrbe, Rarity: domain.RarityRare, Power: 3}))

	assert.Equal(t, domain.DerivedStats{HP: 50, Damage: 10, Defense: 8}, got)
	assert.Equal(t, MultEpic, d.Multiplier(domain.RarityEpic), "unset multipliers keep defaults")
}

func TestDerive_NilAccount(t *testing.T) {
	d := NewDeriver(DefaultConfig())
	assert.Equal(t, domain.DerivedStats{HP: 30, Damage: 4}, d.Derive(nil))
}
