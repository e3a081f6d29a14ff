// Package processor executes game commands on a single goroutine and turns
// their outcome into API responses.
package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"netchess/internal/board"
	"netchess/internal/server/core"
	"netchess/internal/server/game"
	"netchess/internal/server/service"
)

const queueSize = 256

// Processor handles command execution against the service
type Processor struct {
	svc   *service.Service
	queue *CommandQueue
}

func New(svc *service.Service) *Processor {
	p := &Processor{svc: svc}
	p.queue = NewCommandQueue(queueSize, p.dispatch)
	return p
}

// Execute runs cmd on the processor goroutine and waits for the result
func (p *Processor) Execute(cmd Command) ProcessorResponse {
	return p.ExecuteContext(context.Background(), cmd)
}

// ExecuteContext is Execute bounded by ctx
func (p *Processor) ExecuteContext(ctx context.Context, cmd Command) ProcessorResponse {
	resp, err := p.queue.Do(ctx, cmd)
	if err != nil {
		return p.errorResponse(fmt.Sprintf("command not executed: %v", err), core.ErrInternalError)
	}
	return resp
}

func (p *Processor) dispatch(cmd Command) ProcessorResponse {
	switch cmd.Type {
	case CmdCreateGame:
		return p.handleCreateGame(cmd)
	case CmdJoinGame:
		return p.handleJoinGame(cmd)
	case CmdLeaveGame:
		return p.handleLeaveGame(cmd)
	case CmdGetGame:
		return p.handleGetGame(cmd)
	case CmdMakeMove:
		return p.handleMakeMove(cmd)
	case CmdPlayMove:
		return p.handlePlayMove(cmd)
	case CmdUndoMove:
		return p.handleUndoMove(cmd)
	case CmdDeleteGame:
		return p.handleDeleteGame(cmd)
	case CmdGetBoard:
		return p.handleGetBoard(cmd)
	case CmdGetPosition:
		return p.handleGetPosition(cmd)
	case CmdLegalMoves:
		return p.handleLegalMoves(cmd)
	case CmdResetGame:
		return p.handleSetPosition(cmd, board.StartingFEN)
	case CmdSetPosition:
		args, ok := cmd.Args.(core.SetPositionRequest)
		if !ok {
			return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
		}
		return p.handleSetPosition(cmd, args.FEN)
	default:
		return p.errorResponse("unknown command", core.ErrInvalidRequest)
	}
}

// isMoveSafe checks a UCI move for shape only: [a-h][1-8][a-h][1-8][qrbn]?
func (p *Processor) isMoveSafe(move string) bool {
	for _, r := range move {
		if unicode.IsControl(r) {
			return false
		}
	}

	if len(move) < 4 || len(move) > 5 {
		return false
	}

	if move[0] < 'a' || move[0] > 'h' ||
		move[1] < '1' || move[1] > '8' ||
		move[2] < 'a' || move[2] > 'h' ||
		move[3] < '1' || move[3] > '8' {
		return false
	}

	if len(move) == 5 {
		promotion := move[4]
		if promotion != 'q' && promotion != 'r' && promotion != 'b' && promotion != 'n' {
			return false
		}
	}

	return true
}

// isFENSafe rejects control characters before the FEN parser sees the string
func (p *Processor) isFENSafe(fen string) bool {
	for _, r := range fen {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

func (p *Processor) handleCreateGame(cmd Command) ProcessorResponse {
	var (
		req    core.CreateGameRequest
		source = service.SourceAPI
	)
	switch args := cmd.Args.(type) {
	case core.CreateGameRequest:
		req = args
	case CreateGameArgs:
		req, source = args.Request, args.Source
	default:
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	initialFEN := board.StartingFEN
	if fen := strings.TrimSpace(req.FEN); fen != "" {
		if !p.isFENSafe(fen) {
			return p.errorResponse("invalid FEN characters", core.ErrInvalidFEN)
		}
		initialFEN = fen
	}

	gameID := cmd.GameID
	if gameID == "" {
		gameID = p.svc.GenerateGameID()
	}

	g, err := p.svc.CreateGame(gameID, initialFEN, source)
	if err != nil {
		return p.failure(err)
	}

	return ProcessorResponse{
		Success: true,
		Data:    p.buildGameResponse(gameID, g),
	}
}

func (p *Processor) handleJoinGame(cmd Command) ProcessorResponse {
	req, _ := cmd.Args.(core.JoinGameRequest)

	color := board.NoColor
	if req.Color != "" && req.Color != "any" {
		c, err := board.ParseColor(req.Color)
		if err != nil || c == board.NoColor {
			return p.errorResponse("color must be w, b or any", core.ErrInvalidRequest)
		}
		color = c
	}

	player, err := p.svc.ClaimSeat(cmd.GameID, color)
	if err != nil {
		return p.failure(err)
	}

	return ProcessorResponse{
		Success: true,
		Data: core.JoinResponse{
			GameID: cmd.GameID,
			Color:  player.Color.String(),
			Token:  player.ID,
		},
	}
}

func (p *Processor) handleLeaveGame(cmd Command) ProcessorResponse {
	released, err := p.svc.ReleaseSeat(cmd.GameID, cmd.Token)
	if err != nil {
		return p.failure(err)
	}
	if !released {
		return p.errorResponse("token does not hold a seat", core.ErrInvalidRequest)
	}
	return ProcessorResponse{Success: true}
}

func (p *Processor) handleGetGame(cmd Command) ProcessorResponse {
	g, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.failure(err)
	}

	return ProcessorResponse{
		Success: true,
		Data:    p.buildGameResponse(cmd.GameID, g),
	}
}

// handleMakeMove plays a UCI move. When the side to move has a seated
// player, only that player's token may move for it.
func (p *Processor) handleMakeMove(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.MoveRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	g, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.failure(err)
	}

	if g.State().IsTerminal() {
		return p.errorResponse(fmt.Sprintf("game is over: %s", g.State()), core.ErrGameOver)
	}

	turn := g.NextTurnColor()
	if seat := g.GetPlayer(turn); seat != nil && seat.ID != cmd.Token {
		return p.errorResponse(fmt.Sprintf("%s seat is held by another player", turn.Name()), core.ErrNotYourTurn)
	}
	if cmd.Token != "" {
		if color := g.ColorOf(cmd.Token); color != board.NoColor && color != turn {
			return p.errorResponse(fmt.Sprintf("it is %s's turn", turn.Name()), core.ErrNotYourTurn)
		}
	}

	move := strings.ToLower(strings.TrimSpace(args.Move))
	if !p.isMoveSafe(move) {
		return p.errorResponse("invalid move format", core.ErrInvalidMove)
	}

	if _, err := p.svc.ApplyMove(cmd.GameID, move); err != nil {
		return p.failure(err)
	}

	return ProcessorResponse{
		Success: true,
		Data:    p.buildGameResponse(cmd.GameID, g),
	}
}

// handlePlayMove plays a decoded move for a connection bound to a color.
func (p *Processor) handlePlayMove(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(PlayMoveArgs)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	g, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.failure(err)
	}
	if g.State().IsTerminal() {
		return p.errorResponse(fmt.Sprintf("game is over: %s", g.State()), core.ErrGameOver)
	}
	if turn := g.NextTurnColor(); args.Color != turn {
		return p.errorResponse(fmt.Sprintf("it is %s's turn", turn.Name()), core.ErrNotYourTurn)
	}

	if err := p.svc.ApplyBoardMove(cmd.GameID, args.Move); err != nil {
		return p.failure(err)
	}

	return ProcessorResponse{
		Success: true,
		Data:    p.buildGameResponse(cmd.GameID, g),
	}
}

func (p *Processor) handleUndoMove(cmd Command) ProcessorResponse {
	args := core.UndoRequest{Count: 1}
	if req, ok := cmd.Args.(core.UndoRequest); ok && req.Count > 0 {
		args = req
	}

	if err := p.svc.UndoMoves(cmd.GameID, args.Count); err != nil {
		return p.failure(err)
	}

	g, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.failure(err)
	}

	return ProcessorResponse{
		Success: true,
		Data:    p.buildGameResponse(cmd.GameID, g),
	}
}

func (p *Processor) handleDeleteGame(cmd Command) ProcessorResponse {
	if err := p.svc.DeleteGame(cmd.GameID); err != nil {
		return p.failure(err)
	}
	return ProcessorResponse{Success: true}
}

func (p *Processor) handleGetBoard(cmd Command) ProcessorResponse {
	g, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.failure(err)
	}

	return ProcessorResponse{
		Success: true,
		Data: core.BoardResponse{
			FEN:   g.CurrentFEN(),
			Board: g.ToASCII(),
		},
	}
}

func (p *Processor) handleGetPosition(cmd Command) ProcessorResponse {
	g, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.failure(err)
	}
	return ProcessorResponse{Success: true, Data: g.Position()}
}

func (p *Processor) handleLegalMoves(cmd Command) ProcessorResponse {
	g, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.failure(err)
	}
	return ProcessorResponse{
		Success: true,
		Data: core.LegalMovesResponse{
			GameID: cmd.GameID,
			Moves:  g.LegalMoves(),
		},
	}
}

func (p *Processor) handleSetPosition(cmd Command, fen string) ProcessorResponse {
	if !p.isFENSafe(fen) {
		return p.errorResponse("invalid FEN characters", core.ErrInvalidFEN)
	}
	if err := p.svc.ResetGame(cmd.GameID, fen); err != nil {
		return p.failure(err)
	}

	g, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.failure(err)
	}
	return ProcessorResponse{
		Success: true,
		Data:    p.buildGameResponse(cmd.GameID, g),
	}
}

// buildGameResponse constructs standard game response
func (p *Processor) buildGameResponse(gameID string, g *game.Game) core.GameResponse {
	snap := g.Snapshot()

	resp := core.GameResponse{
		GameID:     gameID,
		FEN:        snap.FEN,
		Turn:       snap.Turn.String(),
		State:      snap.State.String(),
		Moves:      snap.Moves,
		Check:      snap.Check,
		LegalMoves: snap.LegalMoves,
		Seats: core.SeatsResponse{
			White: snap.WhiteSeated,
			Black: snap.BlackSeated,
		},
	}

	if r := snap.LastResult; r != nil {
		resp.LastMove = &core.MoveInfo{
			Move:        r.Move,
			PlayerColor: r.PlayerColor.String(),
			Flag:        r.Flag.String(),
		}
	}

	return resp
}

// failure maps a service or game error onto an error response
func (p *Processor) failure(err error) ProcessorResponse {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return p.errorResponse("game not found", core.ErrGameNotFound)
	case errors.Is(err, game.ErrGameOver):
		return p.errorResponse(err.Error(), core.ErrGameOver)
	case errors.Is(err, game.ErrIllegalMove):
		return p.errorResponse(err.Error(), core.ErrInvalidMove)
	case errors.Is(err, game.ErrSeatTaken):
		return p.errorResponse(err.Error(), core.ErrSeatTaken)
	case errors.Is(err, board.ErrMalformedFEN):
		return p.errorResponse(err.Error(), core.ErrInvalidFEN)
	case errors.Is(err, service.ErrTooManyGames):
		return p.errorResponse(err.Error(), core.ErrInvalidRequest)
	default:
		return p.errorResponse(err.Error(), core.ErrInvalidRequest)
	}
}

// errorResponse creates error response
func (p *Processor) errorResponse(message, code string) ProcessorResponse {
	return ProcessorResponse{
		Success: false,
		Error: &core.ErrorResponse{
			Error: message,
			Code:  code,
		},
	}
}

// Close stops the command goroutine
func (p *Processor) Close() error {
	return p.queue.Shutdown(5 * time.Second)
}
