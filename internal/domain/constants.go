package domain

// BuildingID identifies an interactable village building
type BuildingID string

// Village buildings
const (
	BuildingForge  BuildingID = "forge"
	BuildingHouse  BuildingID = "house"
	BuildingBar    BuildingID = "bar"
	BuildingDonjon BuildingID = "donjon"
)

// Point is a village (overworld) coordinate in pixels
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// StagingPoint is where party members are placed after leaving the dungeon
var StagingPoint = Point{X: 400, Y: 500}

// Encounter defaults
const (
	DefaultGridCols = 8
	DefaultGridRows = 6
)
