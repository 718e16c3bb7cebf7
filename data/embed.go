package data

import (
	_ "embed"
)

// SeedJSON holds demo listings, helper profiles and reviews keyed by table name.
// Collection fields use the mixed representations older clients wrote.
//
//go:embed seed/roomfinder.json
var SeedJSON []byte
