package http

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"netchess/internal/board"
	"netchess/internal/render"
	"netchess/internal/server/core"
	"netchess/internal/server/processor"
	"netchess/internal/server/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const rateLimitRate = 10 // req/sec

// Config tunes the API app.
type Config struct {
	DevMode   bool
	RateLimit int  // requests per second per client; 0 disables the limiter
	Quiet     bool // no request log
}

// DefaultConfig returns the production limits, doubled in dev mode.
func DefaultConfig(devMode bool) Config {
	rate := rateLimitRate
	if devMode {
		rate = rateLimitRate * 2
	}
	return Config{DevMode: devMode, RateLimit: rate}
}

// HTTPHandler handles HTTP requests and routes them to the processor
type HTTPHandler struct {
	proc *processor.Processor
	svc  *service.Service
}

func NewHTTPHandler(proc *processor.Processor, svc *service.Service) *HTTPHandler {
	return &HTTPHandler{proc: proc, svc: svc}
}

func NewFiberApp(proc *processor.Processor, svc *service.Service, cfg Config) *fiber.App {
	h := NewHTTPHandler(proc, svc)

	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          service.WaitTimeout + 10*time.Second,
		IdleTimeout:           60 * time.Second,
		DisableStartupMessage: !cfg.DevMode,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	if !cfg.Quiet {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${status} ${method} ${path} ${latency}\n",
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Health check (no rate limit)
	app.Get("/health", h.Health)

	api := app.Group("/api/v1")

	if cfg.RateLimit > 0 {
		maxReq := cfg.RateLimit
		api.Use(limiter.New(limiter.Config{
			Max:        maxReq,
			Expiration: 1 * time.Second,
			KeyGenerator: func(c *fiber.Ctx) string {
				if xff := c.Get("X-Forwarded-For"); xff != "" {
					if idx := strings.Index(xff, ","); idx != -1 {
						return strings.TrimSpace(xff[:idx])
					}
					return xff
				}
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(core.ErrorResponse{
					Error:   "rate limit exceeded",
					Code:    core.ErrRateLimitExceeded,
					Details: fmt.Sprintf("%d requests per second allowed", maxReq),
				})
			},
		}))
	}

	// Content-Type validation for POST and PUT requests
	api.Use(contentTypeValidator)

	// Parse and validate request bodies before the handlers see them
	api.Use(validationMiddleware)

	api.Post("/games", h.CreateGame)
	api.Get("/games/:gameId", h.GetGame)
	api.Delete("/games/:gameId", h.DeleteGame)
	api.Post("/games/:gameId/join", h.JoinGame)
	api.Post("/games/:gameId/leave", h.LeaveGame)
	api.Post("/games/:gameId/moves", h.MakeMove)
	api.Get("/games/:gameId/moves", h.LegalMoves)
	api.Post("/games/:gameId/undo", h.UndoMove)
	api.Put("/games/:gameId/position", h.SetPosition)
	api.Post("/games/:gameId/reset", h.ResetGame)
	api.Get("/games/:gameId/board", h.GetBoard)
	api.Get("/games/:gameId/board.png", h.GetBoardImage)

	return app
}

// contentTypeValidator ensures POST and PUT requests have application/json
func contentTypeValidator(c *fiber.Ctx) error {
	method := c.Method()
	if method == fiber.MethodPost || method == fiber.MethodPut {
		contentType := c.Get("Content-Type")
		if contentType != "" && !strings.HasPrefix(contentType, fiber.MIMEApplicationJSON) {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(core.ErrorResponse{
				Error:   "unsupported media type",
				Code:    core.ErrInvalidContent,
				Details: "Content-Type must be application/json",
			})
		}
	}
	return c.Next()
}

// customErrorHandler provides consistent error responses
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	response := core.ErrorResponse{
		Error: "internal server error",
		Code:  core.ErrInternalError,
	}

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		response.Error = e.Message

		switch code {
		case fiber.StatusNotFound:
			response.Code = core.ErrGameNotFound
		case fiber.StatusBadRequest, fiber.StatusMethodNotAllowed:
			response.Code = core.ErrInvalidRequest
		case fiber.StatusTooManyRequests:
			response.Code = core.ErrRateLimitExceeded
		}
	}

	return c.Status(code).JSON(response)
}

// errorStatus maps an API error code to its HTTP status
func errorStatus(code string) int {
	switch code {
	case core.ErrGameNotFound:
		return fiber.StatusNotFound
	case core.ErrNotYourTurn:
		return fiber.StatusForbidden
	case core.ErrSeatTaken, core.ErrGameOver:
		return fiber.StatusConflict
	case core.ErrInternalError:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusBadRequest
	}
}

// respond writes a processor response, using status on success
func respond(c *fiber.Ctx, resp processor.ProcessorResponse, status int) error {
	if !resp.Success {
		return c.Status(errorStatus(resp.Error.Code)).JSON(resp.Error)
	}
	if resp.Data == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(status).JSON(resp.Data)
}

// gameIDParam returns the validated :gameId, or writes the error response
func gameIDParam(c *fiber.Ctx) (string, bool) {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid game ID format",
			Code:    core.ErrInvalidRequest,
			Details: "game ID must be a valid UUID",
		})
		return "", false
	}
	return gameID, true
}

// validatedBody returns the request parsed by validationMiddleware
func validatedBody[T any](c *fiber.Ctx) (T, bool) {
	var zero T

	// Ensure middleware validation ran
	validated, ok := c.Locals("validated").(bool)
	if !ok || !validated {
		c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "validation bypass detected",
			Code:  core.ErrInternalError,
		})
		return zero, false
	}

	req, ok := c.Locals("validatedBody").(*T)
	if !ok || req == nil {
		c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "validation data missing",
			Code:  core.ErrInternalError,
		})
		return zero, false
	}
	return *req, true
}

// Health check endpoint with storage status
func (h *HTTPHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"time":    time.Now().Unix(),
		"games":   h.svc.GameCount(),
		"storage": h.svc.GetStorageHealth(),
	})
}

// CreateGame starts a game from the optional FEN
func (h *HTTPHandler) CreateGame(c *fiber.Ctx) error {
	req, ok := validatedBody[core.CreateGameRequest](c)
	if !ok {
		return nil
	}
	return respond(c, h.proc.Execute(processor.NewCreateGameCommand("", req)), fiber.StatusCreated)
}

// GetGame returns the game state. With wait=true and moveCount=N it holds
// the request until the move count differs from N or the wait times out.
func (h *HTTPHandler) GetGame(c *fiber.Ctx) error {
	gameID, ok := gameIDParam(c)
	if !ok {
		return nil
	}

	if c.Query("wait", "false") != "true" {
		return respond(c, h.proc.Execute(processor.NewGetGameCommand(gameID)), fiber.StatusOK)
	}

	moveCount, err := strconv.Atoi(c.Query("moveCount", "-1"))
	if err != nil {
		moveCount = -1
	}

	// Register before reading the state so a move in between still wakes us.
	// The fasthttp request context is not derived from; shutdown is
	// observed through the select below.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	notify := h.svc.RegisterWait(ctx, gameID, moveCount)

	resp := h.proc.Execute(processor.NewGetGameCommand(gameID))
	if !resp.Success || len(resp.Data.(core.GameResponse).Moves) != moveCount {
		return respond(c, resp, fiber.StatusOK)
	}

	select {
	case <-notify:
		// Changed, deleted or timed out; report whatever is there now
		return respond(c, h.proc.Execute(processor.NewGetGameCommand(gameID)), fiber.StatusOK)
	case <-c.Context().Done():
		return nil
	}
}

// DeleteGame removes a game from memory. Archived records stay.
func (h *HTTPHandler) DeleteGame(c *fiber.Ctx) error {
	gameID, ok := gameIDParam(c)
	if !ok {
		return nil
	}
	return respond(c, h.proc.Execute(processor.NewDeleteGameCommand(gameID)), fiber.StatusNoContent)
}

// JoinGame claims a seat and returns its token
func (h *HTTPHandler) JoinGame(c *fiber.Ctx) error {
	gameID, ok := gameIDParam(c)
	if !ok {
		return nil
	}
	req, ok := validatedBody[core.JoinGameRequest](c)
	if !ok {
		return nil
	}
	return respond(c, h.proc.Execute(processor.NewJoinGameCommand(gameID, req)), fiber.StatusCreated)
}

// LeaveGame frees the seat held by the token
func (h *HTTPHandler) LeaveGame(c *fiber.Ctx) error {
	gameID, ok := gameIDParam(c)
	if !ok {
		return nil
	}
	req, ok := validatedBody[core.LeaveGameRequest](c)
	if !ok {
		return nil
	}
	return respond(c, h.proc.Execute(processor.NewLeaveGameCommand(gameID, req.Token)), fiber.StatusNoContent)
}

// MakeMove submits a move
func (h *HTTPHandler) MakeMove(c *fiber.Ctx) error {
	gameID, ok := gameIDParam(c)
	if !ok {
		return nil
	}
	req, ok := validatedBody[core.MoveRequest](c)
	if !ok {
		return nil
	}
	return respond(c, h.proc.Execute(processor.NewMakeMoveCommand(gameID, req)), fiber.StatusOK)
}

// LegalMoves lists the legal moves of the side to move
func (h *HTTPHandler) LegalMoves(c *fiber.Ctx) error {
	gameID, ok := gameIDParam(c)
	if !ok {
		return nil
	}
	return respond(c, h.proc.Execute(processor.NewLegalMovesCommand(gameID)), fiber.StatusOK)
}

// UndoMove undoes one or more moves
func (h *HTTPHandler) UndoMove(c *fiber.Ctx) error {
	gameID, ok := gameIDParam(c)
	if !ok {
		return nil
	}
	req, ok := validatedBody[core.UndoRequest](c)
	if !ok {
		return nil
	}
	return respond(c, h.proc.Execute(processor.NewUndoMoveCommand(gameID, req)), fiber.StatusOK)
}

// SetPosition restarts the game from a FEN, keeping the seats
func (h *HTTPHandler) SetPosition(c *fiber.Ctx) error {
	gameID, ok := gameIDParam(c)
	if !ok {
		return nil
	}
	req, ok := validatedBody[core.SetPositionRequest](c)
	if !ok {
		return nil
	}
	return respond(c, h.proc.Execute(processor.NewSetPositionCommand(gameID, req)), fiber.StatusOK)
}

// ResetGame restarts the game from the starting position
func (h *HTTPHandler) ResetGame(c *fiber.Ctx) error {
	gameID, ok := gameIDParam(c)
	if !ok {
		return nil
	}
	return respond(c, h.proc.Execute(processor.NewResetGameCommand(gameID)), fiber.StatusOK)
}

// GetBoard returns ASCII representation of the board
func (h *HTTPHandler) GetBoard(c *fiber.Ctx) error {
	gameID, ok := gameIDParam(c)
	if !ok {
		return nil
	}
	return respond(c, h.proc.Execute(processor.NewGetBoardCommand(gameID)), fiber.StatusOK)
}

// GetBoardImage renders the position as a PNG. Query: size (square pixels),
// flip, labels.
func (h *HTTPHandler) GetBoardImage(c *fiber.Ctx) error {
	gameID, ok := gameIDParam(c)
	if !ok {
		return nil
	}

	gameResp := h.proc.Execute(processor.NewGetGameCommand(gameID))
	if !gameResp.Success {
		return respond(c, gameResp, fiber.StatusOK)
	}
	posResp := h.proc.Execute(processor.NewGetPositionCommand(gameID))
	if !posResp.Success {
		return respond(c, posResp, fiber.StatusOK)
	}

	opts := render.DefaultOptions()
	opts.SquareSize = c.QueryInt("size", render.DefaultSquareSize)
	opts.Flip = c.QueryBool("flip", false)
	opts.Labels = c.QueryBool("labels", true)
	if last := gameResp.Data.(core.GameResponse).LastMove; last != nil && len(last.Move) >= 4 {
		from, err1 := board.ParseCoordinate(last.Move[:2])
		to, err2 := board.ParseCoordinate(last.Move[2:4])
		if err1 == nil && err2 == nil {
			opts.Highlight = []board.Coordinate{from, to}
		}
	}

	var buf bytes.Buffer
	if err := render.PNG(&buf, posResp.Data.(*board.Position), opts); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Send(buf.Bytes())
}
