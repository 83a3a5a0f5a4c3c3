package utils

import "github.com/google/uuid"

// UUIDGenerator issues bundle identifiers. Time-ordered v7 IDs keep journal
// rows sortable by creation.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() uuid.UUID {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}

	return v7
}
