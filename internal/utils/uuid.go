// Package utils contains small helpers shared across orchestrator packages.
package utils

import "github.com/google/uuid"

// UUIDGenerator produces time-ordered identifiers. The orchestrator tags
// every log line of one bootstrap invocation with a generated id so the
// lines of concurrent container restarts can be told apart.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7 string, falling back to a random UUIDv4 when
// the monotonic source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
