package domain

import "time"

// Progress tracks an account's advancement
type Progress struct {
	Level        int `json:"level"`
	DungeonStage int `json:"dungeon_stage"`
}

// Account is a persistent player profile keyed by pseudonym.
//
// Equipment maps a slot to the id of an inventory item. Every referenced id
// must exist in Inventory, and Item.Equipped mirrors slot membership.
type Account struct {
	Pseudonym string              `json:"pseudonym"`
	Color     string              `json:"color"`
	Progress  Progress            `json:"progress"`
	Inventory []Item              `json:"inventory"`
	Equipment map[ItemType]string `json:"equipment"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// Starter gear granted on registration
const (
	StarterSwordPower = 3
	StarterHaloPower  = 5
	StartingLevel     = 1
)

// NewAccount builds a level 1 account holding the two starter items
func NewAccount(pseudonym, color string) *Account {
	now := time.Now()
	return &Account{
		Pseudonym: pseudonym,
		Color:     color,
		Progress:  Progress{Level: StartingLevel},
		Inventory: []Item{
			NewItem(ItemTypeSword, RarityCommon, StarterSwordPower),
			NewItem(ItemTypeHalo, RarityCommon, StarterHaloPower),
		},
		Equipment: make(map[ItemType]string),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FindItem returns the index of the inventory item with the given id, or -1
func (a *Account) FindItem(itemID string) int {
	for i := range a.Inventory {
		if a.Inventory[i].ID == itemID {
			return i
		}
	}
	return -1
}

// EquippedItem returns the item occupying slot, if any
func (a *Account) EquippedItem(slot ItemType) (Item, bool) {
	id, ok := a.Equipment[slot]
	if !ok {
		return Item{}, false
	}
	idx := a.FindItem(id)
	if idx < 0 {
		return Item{}, false
	}
	return a.Inventory[idx], true
}

// EquippedItems returns the items in occupied slots, in slot order
func (a *Account) EquippedItems() []Item {
	items := make([]Item, 0, len(ItemTypes))
	for _, slot := range ItemTypes {
		if it, ok := a.EquippedItem(slot); ok {
			items = append(items, it)
		}
	}
	return items
}

// Equip puts the inventory item into its type's slot, displacing whatever was there.
func (a *Account) Equip(itemID string) error {
	idx := a.FindItem(itemID)
	if idx < 0 {
		return ErrItemNotFound
	}
	if a.Equipment == nil {
		a.Equipment = make(map[ItemType]string)
	}
	slot := a.Inventory[idx].Type
	if prev, ok := a.Equipment[slot]; ok {
		if p := a.FindItem(prev); p >= 0 {
			a.Inventory[p].Equipped = false
		}
	}
	a.Equipment[slot] = itemID
	a.Inventory[idx].Equipped = true
	return nil
}

// Unequip empties slot. Unequipping an empty slot is a no-op.
func (a *Account) Unequip(slot ItemType) {
	id, ok := a.Equipment[slot]
	if !ok {
		return
	}
	if idx := a.FindItem(id); idx >= 0 {
		a.Inventory[idx].Equipped = false
	}
	delete(a.Equipment, slot)
}

// Normalize repairs the equipment invariant after loading: dangling slot
// references are dropped and Equipped flags are recomputed from the slots.
func (a *Account) Normalize() {
	if a.Equipment == nil {
		a.Equipment = make(map[ItemType]string)
	}
	for slot, id := range a.Equipment {
		idx := a.FindItem(id)
		if idx < 0 || a.Inventory[idx].Type != slot {
			delete(a.Equipment, slot)
		}
	}
	for i := range a.Inventory {
		a.Inventory[i].Equipped = a.Equipment[a.Inventory[i].Type] == a.Inventory[i].ID
	}
	if a.Progress.Level < StartingLevel {
		a.Progress.Level = StartingLevel
	}
}

// Clone returns a deep copy so callers can mutate without touching shared state
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	c.Inventory = append([]Item(nil), a.Inventory...)
	c.Equipment = make(map[ItemType]string, len(a.Equipment))
	for k, v := range a.Equipment {
		c.Equipment[k] = v
	}
	return &c
}

// DerivedStats are an account's effective combat stats. Never persisted.
type DerivedStats struct {
	HP      int `json:"hp"`
	Damage  int `json:"damage"`
	Defense int `json:"defense"`
}
