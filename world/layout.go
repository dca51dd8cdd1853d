package world

import (
	"encoding/json"
	"fmt"
	"os"

	"driftstation/server/atmos"
	"driftstation/server/logging"
)

// StationDefinition models the JSON contract for an authored station
// layout. It is shared with the schema generator so tooling can validate
// layout files.
type StationDefinition struct {
	Name     string              `json:"name" jsonschema:"title=Station name,description=Display name for the station"`
	Subgrids []SubgridDefinition `json:"subgrids" jsonschema:"title=Subgrids,description=Independently coordinate-spaced sections composing the station"`
}

// SubgridDefinition is one authored subgrid: a global offset and ASCII tile
// rows. Row r maps to local y=r; column c to local x=c; z is always 0.
//
// Legend: '.' floor, '#' wall, '+' closed door, '-' open door, ' ' space.
type SubgridDefinition struct {
	Name   string   `json:"name" jsonschema:"title=Subgrid name,description=Unique name used to address the subgrid in commands"`
	Offset [3]int   `json:"offset" jsonschema:"title=Global offset,description=Position of the subgrid local origin in global space"`
	Tiles  []string `json:"tiles" jsonschema:"title=Tile rows,description=ASCII rows; '.' floor '#' wall '+' closed door '-' open door ' ' space"`
}

// LoadStation reads a station layout from disk.
func LoadStation(path string) (StationDefinition, error) {
	var def StationDefinition
	data, err := os.ReadFile(path)
	if err != nil {
		return def, fmt.Errorf("read station layout: %w", err)
	}
	if err := json.Unmarshal(data, &def); err != nil {
		return def, fmt.Errorf("parse station layout: %w", err)
	}
	return def, nil
}

// DefaultStation is a two-section layout: an enclosed habitat whose east
// corridor abuts the dock across the seam at global x=5, and a dock whose
// south end is breached to open space. The habitat stays a room, the dock
// classifies as space, and the seam cell becomes a boundary node.
func DefaultStation() StationDefinition {
	return StationDefinition{
		Name: "driftstation",
		Subgrids: []SubgridDefinition{
			{
				Name:   "habitat",
				Offset: [3]int{0, 0, 0},
				Tiles: []string{
					"#####",
					"#...#",
					"#.+..",
					"#...#",
					"#####",
				},
			},
			{
				Name:   "dock",
				Offset: [3]int{5, 0, 0},
				Tiles: []string{
					"####",
					"#..#",
					"...#",
					"#.  ",
					"##  ",
				},
			},
		},
	}
}

// BuildWorld constructs a world from a layout definition. Subgrids are
// registered in authored order; the atmospherics sweep is left to the
// caller.
func BuildWorld(def StationDefinition, pub logging.Publisher) (*World, error) {
	w := NewWorld(pub)
	seen := make(map[string]struct{}, len(def.Subgrids))
	for _, sd := range def.Subgrids {
		if sd.Name == "" {
			return nil, fmt.Errorf("subgrid with empty name")
		}
		if _, dup := seen[sd.Name]; dup {
			return nil, fmt.Errorf("duplicate subgrid name %q", sd.Name)
		}
		seen[sd.Name] = struct{}{}
		sub, err := sd.build()
		if err != nil {
			return nil, fmt.Errorf("subgrid %q: %w", sd.Name, err)
		}
		w.AddSubgrid(sub)
	}
	return w, nil
}

func (d SubgridDefinition) build() (*Subgrid, error) {
	if len(d.Tiles) == 0 {
		return nil, fmt.Errorf("no tile rows")
	}
	width := len(d.Tiles[0])
	if width == 0 {
		return nil, fmt.Errorf("empty tile row")
	}
	for i, row := range d.Tiles {
		if len(row) != width {
			return nil, fmt.Errorf("row %d is %d cells wide, expected %d", i, len(row), width)
		}
	}

	offset := atmos.Vec3{X: d.Offset[0], Y: d.Offset[1], Z: d.Offset[2]}
	bounds := atmos.Bounds{Max: atmos.Vec3{X: width, Y: len(d.Tiles), Z: 1}}
	sub := NewSubgrid(d.Name, offset, bounds)

	for y, row := range d.Tiles {
		for x, ch := range []byte(row) {
			p := atmos.Vec3{X: x, Y: y}
			switch ch {
			case ' ':
				sub.SetTile(p, TileSpace)
			case '.':
				sub.SetTile(p, TileFloor)
			case '#':
				sub.SetTile(p, TileWall)
			case '+':
				sub.AddDoor(p, true)
			case '-':
				sub.AddDoor(p, false)
			default:
				return nil, fmt.Errorf("unknown tile %q at (%d,%d)", ch, x, y)
			}
		}
	}
	return sub, nil
}
