package core

import (
	"netchess/internal/board"

	"github.com/google/uuid"
)

// Player is the holder of a seat. The ID doubles as the seat token.
type Player struct {
	ID    string      `json:"id"`
	Color board.Color `json:"color"`
}

// NewPlayer creates a seat holder with a fresh token
func NewPlayer(color board.Color) *Player {
	return &Player{
		ID:    uuid.New().String(),
		Color: color,
	}
}
