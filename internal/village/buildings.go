package village

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/KubeRPG_Go/internal/domain"
)

// Rect is an axis-aligned area of the village map
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Contains reports whether p lies inside r. Edges are inclusive.
func (r Rect) Contains(p domain.Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Building is an interactable area of the village
type Building struct {
	ID    domain.BuildingID `json:"id"`
	Name  string            `json:"name"`
	Label string            `json:"label"`
	Area  Rect              `json:"area"`
}

var titleCaser = cases.Title(language.French)

func newBuilding(id domain.BuildingID, name string, area Rect) Building {
	return Building{ID: id, Name: name, Label: titleCaser.String(name), Area: area}
}

// Buildings is the village layout
var Buildings = []Building{
	newBuilding(domain.BuildingForge, BuildingNameForge, Rect{X: 100, Y: 80, W: 120, H: 80}),
	newBuilding(domain.BuildingHouse, BuildingNameHouse, Rect{X: 620, Y: 420, W: 120, H: 100}),
	newBuilding(domain.BuildingBar, BuildingNameBar, Rect{X: 60, Y: 420, W: 140, H: 90}),
	newBuilding(domain.BuildingDonjon, BuildingNameDonjon, Rect{X: 360, Y: 220, W: 140, H: 120}),
}

// BuildingAt returns the building under p
func BuildingAt(p domain.Point) (Building, bool) {
	for _, b := range Buildings {
		if b.Area.Contains(p) {
			return b, true
		}
	}
	return Building{}, false
}

// LookupBuilding finds a building by id
func LookupBuilding(id domain.BuildingID) (Building, bool) {
	for _, b := range Buildings {
		if b.ID == id {
			return b, true
		}
	}
	return Building{}, false
}
