// Package protocol implements the line protocol spoken between the socket
// host and its clients: one JSON object of string keys and string values per
// line.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"netchess/internal/board"
)

// Commands
const (
	CmdColor   = "color"
	CmdMove    = "move"
	CmdState   = "state"
	CmdRestart = "restart"
	CmdError   = "error"
)

// Keys
const (
	KeyCmd   = "cmd"
	KeyColor = "color"
	KeyStart = "start"
	KeyEnd   = "end"
	KeyFlag  = "flag"
	KeyFEN   = "fen"
	KeyState = "state"
	KeyError = "error"
)

// MaxLineLength bounds a single encoded message.
const MaxLineLength = 4096

var (
	ErrMalformed   = errors.New("malformed message")
	ErrNoCommand   = fmt.Errorf("%w: no cmd", ErrMalformed)
	ErrLineTooLong = errors.New("message exceeds maximum line length")
)

// Message is one protocol line.
type Message map[string]string

func (m Message) Cmd() string {
	return m[KeyCmd]
}

// Encode returns the wire form of msg, newline terminated.
func Encode(msg Message) ([]byte, error) {
	if msg.Cmd() == "" {
		return nil, ErrNoCommand
	}
	data, err := json.Marshal(map[string]string(msg))
	if err != nil {
		return nil, err
	}
	if len(data)+1 > MaxLineLength {
		return nil, ErrLineTooLong
	}
	return append(data, '\n'), nil
}

// Decode parses one line. Surrounding whitespace is ignored.
func Decode(line []byte) (Message, error) {
	line = []byte(strings.TrimSpace(string(line)))
	if len(line) > MaxLineLength {
		return nil, ErrLineTooLong
	}
	var msg Message
	if err := json.Unmarshal(line, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if msg.Cmd() == "" {
		return nil, ErrNoCommand
	}
	return msg, nil
}

// ColorMessage assigns a seat: WHITE, BLACK or NONE for spectators.
func ColorMessage(c board.Color) Message {
	return Message{KeyCmd: CmdColor, KeyColor: c.Name()}
}

// MoveMessage carries a move as start tile, end tile and flag name.
func MoveMessage(m board.Move) Message {
	return Message{
		KeyCmd:   CmdMove,
		KeyStart: m.From.String(),
		KeyEnd:   m.To.String(),
		KeyFlag:  m.Flag.String(),
	}
}

// StateMessage carries a position and its game state.
func StateMessage(fen string, state board.GameState) Message {
	return Message{KeyCmd: CmdState, KeyFEN: fen, KeyState: state.String()}
}

// PositionMessage is StateMessage for p.
func PositionMessage(p *board.Position) Message {
	return StateMessage(p.FEN(), board.InferState(p))
}

func RestartMessage() Message {
	return Message{KeyCmd: CmdRestart}
}

func ErrorMessage(reason string) Message {
	return Message{KeyCmd: CmdError, KeyError: reason}
}

// Move decodes the payload of a move message. A missing flag means NONE.
func (m Message) Move() (board.Move, error) {
	from, err := board.ParseCoordinate(m[KeyStart])
	if err != nil {
		return board.Move{}, fmt.Errorf("start tile: %w", err)
	}
	to, err := board.ParseCoordinate(m[KeyEnd])
	if err != nil {
		return board.Move{}, fmt.Errorf("end tile: %w", err)
	}
	flag := board.FlagNone
	if s, ok := m[KeyFlag]; ok && s != "" {
		if flag, err = board.ParseFlag(s); err != nil {
			return board.Move{}, err
		}
	}
	return board.NewMove(from, to, flag), nil
}

// Color decodes the payload of a color message.
func (m Message) Color() (board.Color, error) {
	return board.ParseColor(m[KeyColor])
}

// State decodes the payload of a state message.
func (m Message) State() (string, board.GameState, error) {
	fen := m[KeyFEN]
	if fen == "" {
		return "", board.Ongoing, errors.New("state message has no fen")
	}
	state, err := board.ParseGameState(m[KeyState])
	if err != nil {
		return "", board.Ongoing, err
	}
	return fen, state, nil
}
