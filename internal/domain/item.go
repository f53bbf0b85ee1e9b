package domain

import "github.com/google/uuid"

// ItemType is the closed set of equippable item kinds. Each type fills exactly
// one equipment slot and carries a single stat.
type ItemType string

const (
	ItemTypeSword ItemType = "Sword"
	ItemTypeOrbe  ItemType = "Orbe"
	ItemTypeHalo  ItemType = "Halo"
)

// ItemTypes lists every item type in slot order. Loot type rolls index into it.
var ItemTypes = []ItemType{ItemTypeSword, ItemTypeOrbe, ItemTypeHalo}

// StatKind names the combat stat an item contributes to
type StatKind string

const (
	StatHP      StatKind = "hp"
	StatDamage  StatKind = "damage"
	StatDefense StatKind = "defense"
)

var itemTypeStats = map[ItemType]StatKind{
	ItemTypeSword: StatDamage,
	ItemTypeOrbe:  StatDefense,
	ItemTypeHalo:  StatHP,
}

// Stat returns the stat this item type feeds. Unknown types report "".
func (t ItemType) Stat() StatKind {
	return itemTypeStats[t]
}

// Valid reports whether t is one of the known item types
func (t ItemType) Valid() bool {
	_, ok := itemTypeStats[t]
	return ok
}

// ParseItemType resolves a slot name. Matching is exact.
func ParseItemType(s string) (ItemType, bool) {
	t := ItemType(s)
	return t, t.Valid()
}

// Rarity is the drop tier of an item
type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
)

// Rarities lists every rarity from most to least common
var Rarities = []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}

// Rank orders rarities, Common = 0. Unknown rarities rank as Common.
func (r Rarity) Rank() int {
	for i, known := range Rarities {
		if known == r {
			return i
		}
	}
	return 0
}

// Item is a single piece of gear owned by exactly one account.
// Power is the item's one stat value; its meaning depends on Type.
type Item struct {
	ID       string   `json:"id"`
	Type     ItemType `json:"type"`
	Rarity   Rarity   `json:"rarity"`
	Power    int      `json:"power"`
	Equipped bool     `json:"equipped"`
}

// NewItem creates a fresh, unequipped item with a new id
func NewItem(itemType ItemType, rarity Rarity, power int) Item {
	return Item{
		ID:     uuid.NewString(),
		Type:   itemType,
		Rarity: rarity,
		Power:  power,
	}
}

// Stat returns the stat kind this item contributes to
func (i Item) Stat() StatKind {
	return i.Type.Stat()
}

// Stats returns the item's stat in the keyed form presentation layers expect,
// e.g. {"damage": 3} for a sword.
func (i Item) Stats() map[StatKind]int {
	return map[StatKind]int{i.Stat(): i.Power}
}
