// Package core holds the request, response and player types shared by the
// server layers.
package core

// Request types

type CreateGameRequest struct {
	FEN string `json:"fen,omitempty" validate:"omitempty,max=100"`
}

type JoinGameRequest struct {
	Color string `json:"color,omitempty" validate:"omitempty,oneof=w b any"`
}

type LeaveGameRequest struct {
	Token string `json:"token" validate:"required,uuid"`
}

type MoveRequest struct {
	Move  string `json:"move" validate:"required,min=4,max=5"` // UCI, e.g. e2e4 or a7a8q
	Token string `json:"token,omitempty" validate:"omitempty,uuid"`
}

type UndoRequest struct {
	Count int `json:"count" validate:"required,min=1,max=300"`
}

type SetPositionRequest struct {
	FEN string `json:"fen" validate:"required,max=100"`
}

// Response types

type GameResponse struct {
	GameID     string        `json:"gameId"`
	FEN        string        `json:"fen"`
	Turn       string        `json:"turn"`  // "w" or "b"
	State      string        `json:"state"` // ONGOING, WIN_WHITE, DRAW_STALEMATE, ...
	Moves      []string      `json:"moves"`
	Check      bool          `json:"check"`
	Seats      SeatsResponse `json:"seats"`
	LastMove   *MoveInfo     `json:"lastMove,omitempty"`
	LegalMoves []string      `json:"legalMoves,omitempty"`
}

// SeatsResponse reports which seats are claimed. Tokens are never echoed.
type SeatsResponse struct {
	White bool `json:"white"`
	Black bool `json:"black"`
}

type MoveInfo struct {
	Move        string `json:"move"`
	PlayerColor string `json:"playerColor"` // "w" or "b"
	Flag        string `json:"flag,omitempty"`
}

type JoinResponse struct {
	GameID string `json:"gameId"`
	Color  string `json:"color"` // "w" or "b"
	Token  string `json:"token"`
}

type LegalMovesResponse struct {
	GameID string   `json:"gameId"`
	Moves  []string `json:"moves"`
}

type BoardResponse struct {
	FEN   string `json:"fen"`
	Board string `json:"board"` // ASCII representation
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
