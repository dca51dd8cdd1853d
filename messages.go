package main

// stateMessage is broadcast to every subscriber after each tick.
type stateMessage struct {
	Type          string          `json:"type"`
	Tick          uint64          `json:"tick"`
	ServerTime    int64           `json:"serverTime"`
	BoundaryCells int             `json:"boundaryCells"`
	VentedTotal   uint64          `json:"ventedTotal"`
	Subgrids      []subgridStatus `json:"subgrids"`
}

// subgridStatus summarises one subgrid's atmospherics state.
type subgridStatus struct {
	Name          string `json:"name"`
	Rooms         int    `json:"rooms"`
	BoundaryCells int    `json:"boundaryCells"`
}

// clientMessage is a command from a subscriber. Positions are local to the
// named subgrid.
type clientMessage struct {
	Type    string `json:"type"`
	Subgrid string `json:"subgrid"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Z       int    `json:"z"`
}
