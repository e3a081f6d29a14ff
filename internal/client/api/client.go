// Package api is a REST client for the game server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"netchess/internal/client/display"
	"netchess/internal/server/core"
)

// Error is a non-2xx answer from the server
type Error struct {
	Status  int
	Code    string
	Message string
	Details string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%d %s", e.Status, e.Message)
	if e.Code != "" {
		msg += " (" + e.Code + ")"
	}
	if e.Details != "" {
		msg += ": " + e.Details
	}
	return msg
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Verbose    bool
	// Out receives the request trace. Nil disables it.
	Out io.Writer
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			// Long-poll waits are bounded by the server; leave headroom
			Timeout: 60 * time.Second,
		},
	}
}

func (c *Client) SetVerbose(v bool) {
	c.Verbose = v
}

// SetBaseURL updates the API base URL for the client
func (c *Client) SetBaseURL(url string) {
	c.BaseURL = strings.TrimRight(url, "/")
}

func (c *Client) tracef(format string, args ...any) {
	if c.Out != nil {
		fmt.Fprintf(c.Out, format, args...)
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	respBody, _, err := c.doRaw(ctx, method, path, body)
	if err != nil {
		return err
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func (c *Client) doRaw(ctx context.Context, method, path string, body any) ([]byte, http.Header, error) {
	var bodyReader io.Reader
	var bodyStr string
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, nil, err
		}
		bodyReader = bytes.NewReader(jsonData)
		bodyStr = string(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.tracef("%s[API] %s %s%s\n", display.Blue, method, path, display.Reset)
	if bodyStr != "" && c.Verbose {
		c.tracef("%sRequest Body:%s %s\n", display.Cyan, display.Reset, bodyStr)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}

	statusColor := display.Green
	if resp.StatusCode >= 400 {
		statusColor = display.Red
	}
	c.tracef("%s[%d %s]%s\n", statusColor, resp.StatusCode, http.StatusText(resp.StatusCode), display.Reset)
	if c.Verbose && len(respBody) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		c.tracef("%sResponse Body:%s %s\n", display.Cyan, display.Reset, string(respBody))
	}

	if resp.StatusCode >= 400 {
		apiErr := &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var errResp core.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			apiErr.Message = errResp.Error
			apiErr.Code = errResp.Code
			apiErr.Details = errResp.Details
		}
		return nil, nil, apiErr
	}
	return respBody, resp.Header, nil
}

func gamePath(gameID string, rest ...string) string {
	p := "/api/v1/games/" + url.PathEscape(gameID)
	for _, r := range rest {
		p += "/" + r
	}
	return p
}

func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	var resp map[string]any
	err := c.do(ctx, http.MethodGet, "/health", nil, &resp)
	return resp, err
}

// CreateGame starts a game. An empty fen means the starting position.
func (c *Client) CreateGame(ctx context.Context, fen string) (*core.GameResponse, error) {
	var resp core.GameResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/games", core.CreateGameRequest{FEN: fen}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetGame(ctx context.Context, gameID string) (*core.GameResponse, error) {
	var resp core.GameResponse
	if err := c.do(ctx, http.MethodGet, gamePath(gameID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// WaitGame long-polls until the game's move count differs from moveCount or
// the server gives up waiting.
func (c *Client) WaitGame(ctx context.Context, gameID string, moveCount int) (*core.GameResponse, error) {
	var resp core.GameResponse
	path := gamePath(gameID) + "?wait=true&moveCount=" + strconv.Itoa(moveCount)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteGame(ctx context.Context, gameID string) error {
	return c.do(ctx, http.MethodDelete, gamePath(gameID), nil, nil)
}

// JoinGame claims a seat: "w", "b" or "any"/"" for the first free one.
func (c *Client) JoinGame(ctx context.Context, gameID, color string) (*core.JoinResponse, error) {
	var resp core.JoinResponse
	if err := c.do(ctx, http.MethodPost, gamePath(gameID, "join"), core.JoinGameRequest{Color: color}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) LeaveGame(ctx context.Context, gameID, token string) error {
	return c.do(ctx, http.MethodPost, gamePath(gameID, "leave"), core.LeaveGameRequest{Token: token}, nil)
}

// MakeMove submits a UCI move. token may be empty for an unclaimed seat.
func (c *Client) MakeMove(ctx context.Context, gameID, move, token string) (*core.GameResponse, error) {
	var resp core.GameResponse
	req := core.MoveRequest{Move: move, Token: token}
	if err := c.do(ctx, http.MethodPost, gamePath(gameID, "moves"), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) LegalMoves(ctx context.Context, gameID string) ([]string, error) {
	var resp core.LegalMovesResponse
	if err := c.do(ctx, http.MethodGet, gamePath(gameID, "moves"), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Moves, nil
}

func (c *Client) UndoMoves(ctx context.Context, gameID string, count int) (*core.GameResponse, error) {
	var resp core.GameResponse
	if err := c.do(ctx, http.MethodPost, gamePath(gameID, "undo"), core.UndoRequest{Count: count}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SetPosition(ctx context.Context, gameID, fen string) (*core.GameResponse, error) {
	var resp core.GameResponse
	if err := c.do(ctx, http.MethodPut, gamePath(gameID, "position"), core.SetPositionRequest{FEN: fen}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ResetGame(ctx context.Context, gameID string) (*core.GameResponse, error) {
	var resp core.GameResponse
	if err := c.do(ctx, http.MethodPost, gamePath(gameID, "reset"), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetBoard(ctx context.Context, gameID string) (*core.BoardResponse, error) {
	var resp core.BoardResponse
	if err := c.do(ctx, http.MethodGet, gamePath(gameID, "board"), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// BoardImage downloads the PNG rendering of the position.
func (c *Client) BoardImage(ctx context.Context, gameID string, size int, flip bool) ([]byte, error) {
	q := url.Values{}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
	if flip {
		q.Set("flip", "true")
	}
	path := gamePath(gameID, "board.png")
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	data, _, err := c.doRaw(ctx, http.MethodGet, path, nil)
	return data, err
}

// RawRequest sends an arbitrary request and returns the body undecoded.
func (c *Client) RawRequest(ctx context.Context, method, path, body string) ([]byte, error) {
	var payload any
	if body != "" {
		payload = json.RawMessage(body)
	}
	data, _, err := c.doRaw(ctx, strings.ToUpper(method), path, payload)
	return data, err
}
