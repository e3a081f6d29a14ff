package processor

import (
	"netchess/internal/board"
	"netchess/internal/server/core"
	"netchess/internal/server/service"
)

// CommandType defines the type of command being executed
type CommandType int

const (
	CmdCreateGame CommandType = iota
	CmdJoinGame
	CmdLeaveGame
	CmdGetGame
	CmdMakeMove
	CmdPlayMove
	CmdUndoMove
	CmdDeleteGame
	CmdGetBoard
	CmdGetPosition
	CmdLegalMoves
	CmdResetGame
	CmdSetPosition
)

// Command is a unified structure for all processor operations
type Command struct {
	Type   CommandType
	GameID string // For game-specific commands
	Token  string // Seat token of the caller, if any
	Args   any    // Command-specific arguments
}

// PlayMoveArgs carries a decoded move from a client bound to a color.
type PlayMoveArgs struct {
	Color board.Color
	Move  board.Move
}

// CreateGameArgs lets in-process hosts tag where a game comes from.
type CreateGameArgs struct {
	Request core.CreateGameRequest
	Source  string
}

// ProcessorResponse wraps the response with metadata
type ProcessorResponse struct {
	Success bool                `json:"success"`
	Data    any                 `json:"data,omitempty"`
	Error   *core.ErrorResponse `json:"error,omitempty"`
}

// NewCreateGameCommand creates an API game. gameID may be empty to have one generated.
func NewCreateGameCommand(gameID string, req core.CreateGameRequest) Command {
	return Command{
		Type:   CmdCreateGame,
		GameID: gameID,
		Args:   req,
	}
}

// NewCreateSocketGameCommand creates the shared game of a socket host.
func NewCreateSocketGameCommand(fen string) Command {
	return Command{
		Type: CmdCreateGame,
		Args: CreateGameArgs{
			Request: core.CreateGameRequest{FEN: fen},
			Source:  service.SourceSocket,
		},
	}
}

func NewJoinGameCommand(gameID string, req core.JoinGameRequest) Command {
	return Command{
		Type:   CmdJoinGame,
		GameID: gameID,
		Args:   req,
	}
}

func NewLeaveGameCommand(gameID, token string) Command {
	return Command{
		Type:   CmdLeaveGame,
		GameID: gameID,
		Token:  token,
	}
}

func NewGetGameCommand(gameID string) Command {
	return Command{
		Type:   CmdGetGame,
		GameID: gameID,
	}
}

func NewMakeMoveCommand(gameID string, req core.MoveRequest) Command {
	return Command{
		Type:   CmdMakeMove,
		GameID: gameID,
		Token:  req.Token,
		Args:   req,
	}
}

// NewPlayMoveCommand submits a move on behalf of a connection seated as color.
func NewPlayMoveCommand(gameID string, color board.Color, m board.Move) Command {
	return Command{
		Type:   CmdPlayMove,
		GameID: gameID,
		Args:   PlayMoveArgs{Color: color, Move: m},
	}
}

func NewUndoMoveCommand(gameID string, req core.UndoRequest) Command {
	return Command{
		Type:   CmdUndoMove,
		GameID: gameID,
		Args:   req,
	}
}

func NewDeleteGameCommand(gameID string) Command {
	return Command{
		Type:   CmdDeleteGame,
		GameID: gameID,
	}
}

func NewGetBoardCommand(gameID string) Command {
	return Command{
		Type:   CmdGetBoard,
		GameID: gameID,
	}
}

// NewGetPositionCommand fetches a copy of the live position.
func NewGetPositionCommand(gameID string) Command {
	return Command{
		Type:   CmdGetPosition,
		GameID: gameID,
	}
}

func NewLegalMovesCommand(gameID string) Command {
	return Command{
		Type:   CmdLegalMoves,
		GameID: gameID,
	}
}

// NewResetGameCommand restarts a game from the starting position.
func NewResetGameCommand(gameID string) Command {
	return Command{
		Type:   CmdResetGame,
		GameID: gameID,
	}
}

func NewSetPositionCommand(gameID string, req core.SetPositionRequest) Command {
	return Command{
		Type:   CmdSetPosition,
		GameID: gameID,
		Args:   req,
	}
}
