package testutil

import (
	"github.com/google/uuid"
)

// Fixed UUIDs for deterministic testing
var (
	TestPredictionID1 = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestUnknownID     = uuid.MustParse("00000000-0000-0000-0000-0000000000ff")
)
