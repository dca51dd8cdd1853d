package atmos_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"driftstation/server/atmos"
	"driftstation/server/logging"
	"driftstation/server/world"
)

// buildStation assembles a world from authored subgrid layouts without
// running the classification sweep.
func buildStation(t *testing.T, subs ...world.SubgridDefinition) *world.World {
	t.Helper()
	w, err := world.BuildWorld(world.StationDefinition{Name: "test", Subgrids: subs}, logging.NopPublisher())
	require.NoError(t, err)
	return w
}

func systemFor(t *testing.T, w *world.World, name string) (*world.Subgrid, *atmos.System) {
	t.Helper()
	sub, ok := w.SubgridByName(name)
	require.True(t, ok, "subgrid %q not registered", name)
	sys, ok := w.SystemFor(sub.ID())
	require.True(t, ok, "subgrid %q has no system", name)
	return sub, sys
}

// sealedRoomLayout is a 3x3 passable interior with a closed door at its
// centre, enclosed by hull so nothing opens to space.
func sealedRoomLayout(name string) world.SubgridDefinition {
	return world.SubgridDefinition{
		Name: name,
		Tiles: []string{
			"#####",
			"#...#",
			"#.+.#",
			"#...#",
			"#####",
		},
	}
}

// breachedRoomLayout is the same interior with the east hull opened at row
// 2, exposing the region to true exterior space.
func breachedRoomLayout(name string) world.SubgridDefinition {
	return world.SubgridDefinition{
		Name: name,
		Tiles: []string{
			"#####",
			"#...#",
			"#.+..",
			"#...#",
			"#####",
		},
	}
}

// interior enumerates the eight passable cells around the door of the
// sealed layout.
func interiorCells() []atmos.Vec3 {
	return []atmos.Vec3{
		{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1},
		{X: 1, Y: 2}, {X: 3, Y: 2},
		{X: 1, Y: 3}, {X: 2, Y: 3}, {X: 3, Y: 3},
	}
}
