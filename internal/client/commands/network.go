package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"netchess/internal/board"
	"netchess/internal/client/display"
	"netchess/internal/protocol"
)

func (r *Registry) registerNetworkCommands() {
	r.Register(&Command{
		Name:        "connect",
		ShortName:   "c",
		Description: "Play on a socket host",
		Usage:       "connect <host:port>",
		Group:       "Network",
		Handler:     connectHandler,
	})
	r.Register(&Command{
		Name:        "disconnect",
		Description: "Leave the socket host or server game and play locally",
		Usage:       "disconnect",
		Group:       "Network",
		Handler:     disconnectHandler,
	})
	r.Register(&Command{
		Name:        "create",
		Description: "Create a game on the server and switch to it",
		Usage:       "create [fen]",
		Group:       "Network",
		Handler:     createHandler,
	})
	r.Register(&Command{
		Name:        "join",
		ShortName:   "j",
		Description: "Switch to a server game and claim a seat",
		Usage:       "join <gameId> [w|b|any|watch]",
		Group:       "Network",
		Handler:     joinHandler,
	})
	r.Register(&Command{
		Name:        "leave",
		Description: "Give up the claimed seat",
		Usage:       "leave",
		Group:       "Network",
		Handler:     leaveHandler,
	})
	r.Register(&Command{
		Name:        "poll",
		ShortName:   "p",
		Description: "Wait for the next move in the server game",
		Usage:       "poll",
		Group:       "Network",
		Handler:     pollHandler,
	})
	r.Register(&Command{
		Name:        "delete",
		ShortName:   "d",
		Description: "Delete the server game",
		Usage:       "delete",
		Group:       "Network",
		Handler:     deleteHandler,
	})
	r.Register(&Command{
		Name:        "health",
		ShortName:   ".",
		Description: "Check server health",
		Usage:       "health",
		Group:       "Network",
		Handler:     healthHandler,
	})
	r.Register(&Command{
		Name:        "url",
		ShortName:   "/",
		Description: "Show or set the server URL",
		Usage:       "url [new-url]",
		Group:       "Network",
		Handler:     urlHandler,
	})
	r.Register(&Command{
		Name:        "raw",
		ShortName:   ":",
		Description: "Send a raw API request",
		Usage:       "raw <METHOD> <path> [json-body]",
		Group:       "Network",
		Handler:     rawHandler,
	})
}

var errNoServer = errors.New("no server configured")

func connectHandler(s *Session, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: connect <host:port>")
	}
	if s.Mode() == ModeSocket {
		return errors.New("already connected; disconnect first")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, err := protocol.Dial(ctx, args[0])
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.mode = ModeSocket
	s.conn = conn
	s.socketColor = board.NoColor
	s.socketFEN = ""
	s.socketState = board.Ongoing
	s.mu.Unlock()

	display.Success(s.out, "Connected to %s", conn.RemoteAddr())
	go s.readSocket(conn)
	return nil
}

// readSocket applies host messages to the session until the connection ends
func (s *Session) readSocket(conn *protocol.Conn) {
	err := conn.ReadLoop(func(msg protocol.Message) {
		s.handleHostMessage(msg)
		s.notify()
	}, func(err error) {
		display.Error(s.out, "Bad message from host: %v", err)
	})

	s.mu.Lock()
	current := s.conn == conn
	if current {
		s.conn = nil
		s.mode = ModeLocal
	}
	s.mu.Unlock()
	conn.Close()

	if current {
		if err != nil {
			display.Error(s.out, "Connection lost: %v", err)
		} else {
			display.Info(s.out, "Host closed the connection")
		}
	}
	s.notify()
}

func (s *Session) handleHostMessage(msg protocol.Message) {
	switch msg.Cmd() {
	case protocol.CmdColor:
		color, err := msg.Color()
		if err != nil {
			display.Error(s.out, "Bad color message: %v", err)
			return
		}
		s.mu.Lock()
		s.socketColor = color
		s.mu.Unlock()
		if color == board.NoColor {
			display.Info(s.out, "Both seats are taken; watching")
		} else {
			display.Info(s.out, "Playing %s", display.ColorForTurn(color.Name()))
		}

	case protocol.CmdState:
		fen, state, err := msg.State()
		if err != nil {
			display.Error(s.out, "Bad state message: %v", err)
			return
		}
		p, err := board.ParseFEN(fen)
		if err != nil {
			display.Error(s.out, "Bad position from host: %v", err)
			return
		}
		s.mu.Lock()
		s.socketFEN = fen
		s.socketState = state
		s.mu.Unlock()

		display.RenderBoard(s.out, p.ToASCII())
		if state.IsTerminal() {
			display.Info(s.out, "Game over: %s", state)
		} else {
			fmt.Fprintf(s.out, "%s to move\n", display.ColorForTurn(p.SideToMove().Name()))
		}

	case protocol.CmdError:
		display.Error(s.out, "Host: %s", msg[protocol.KeyError])

	default:
		display.Error(s.out, "Unexpected message from host: %s", msg.Cmd())
	}
}

func disconnectHandler(s *Session, args []string) error {
	s.mu.Lock()
	mode := s.mode
	conn := s.conn
	s.conn = nil
	s.mode = ModeLocal
	s.gameID, s.token, s.color = "", "", ""
	s.mu.Unlock()

	switch mode {
	case ModeSocket:
		if conn != nil {
			conn.Close()
		}
		display.Success(s.out, "Disconnected")
	case ModeRemote:
		display.Success(s.out, "Back to the local game")
	default:
		fmt.Fprintln(s.out, "Already playing locally")
	}
	return nil
}

func (s *Session) requireClient() error {
	if s.client == nil || s.client.BaseURL == "" {
		return errNoServer
	}
	if s.Mode() == ModeSocket {
		return errNotOverSocket
	}
	return nil
}

func (s *Session) requireGame() error {
	if err := s.requireClient(); err != nil {
		return err
	}
	if s.Mode() != ModeRemote {
		return errors.New("no server game; use 'create' or 'join' first")
	}
	return nil
}

func createHandler(s *Session, args []string) error {
	if err := s.requireClient(); err != nil {
		return err
	}
	ctx, cancel := requestContext()
	defer cancel()

	g, err := s.client.CreateGame(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	join, err := s.client.JoinGame(ctx, g.GameID, "any")
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.mode = ModeRemote
	s.gameID = g.GameID
	s.token = join.Token
	s.color = join.Color
	s.lastMoveCount = len(g.Moves)
	s.mu.Unlock()

	display.Success(s.out, "Game created: %s", g.GameID)
	display.Info(s.out, "Playing %s", display.ColorForTurn(join.Color))
	return nil
}

func joinHandler(s *Session, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: join <gameId> [w|b|any|watch]")
	}
	if err := s.requireClient(); err != nil {
		return err
	}
	gameID := args[0]
	seat := "any"
	if len(args) == 2 {
		seat = args[1]
	}

	ctx, cancel := requestContext()
	defer cancel()

	g, err := s.client.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	var token, color string
	if seat != "watch" {
		join, err := s.client.JoinGame(ctx, gameID, seat)
		if err != nil {
			return err
		}
		token, color = join.Token, join.Color
	}

	s.mu.Lock()
	s.mode = ModeRemote
	s.gameID = g.GameID
	s.token = token
	s.color = color
	s.lastMoveCount = len(g.Moves)
	s.mu.Unlock()

	if color == "" {
		display.Success(s.out, "Watching %s", g.GameID)
	} else {
		display.Success(s.out, "Joined %s as %s", g.GameID, display.ColorForTurn(color))
	}
	printRemoteState(s, g.FEN, g.Turn, g.State, g.Check)
	return nil
}

func leaveHandler(s *Session, args []string) error {
	if err := s.requireGame(); err != nil {
		return err
	}
	if s.token == "" {
		return errors.New("no seat held")
	}
	ctx, cancel := requestContext()
	defer cancel()
	if err := s.client.LeaveGame(ctx, s.gameID, s.token); err != nil {
		return err
	}
	s.mu.Lock()
	s.token, s.color = "", ""
	s.mu.Unlock()
	display.Success(s.out, "Seat released; still watching %s", s.gameID)
	return nil
}

func pollHandler(s *Session, args []string) error {
	if err := s.requireGame(); err != nil {
		return err
	}
	ctx, cancel := requestContext()
	defer cancel()

	s.mu.Lock()
	last := s.lastMoveCount
	s.mu.Unlock()

	display.Info(s.out, "Waiting for a move...")
	g, err := s.client.WaitGame(ctx, s.gameID, last)
	if err != nil {
		return err
	}
	if len(g.Moves) == last {
		fmt.Fprintln(s.out, "No change")
		return nil
	}

	s.mu.Lock()
	s.lastMoveCount = len(g.Moves)
	s.mu.Unlock()
	if g.LastMove != nil {
		display.Success(s.out, "%s played %s", display.ColorForTurn(g.LastMove.PlayerColor), g.LastMove.Move)
	}
	printRemoteState(s, g.FEN, g.Turn, g.State, g.Check)
	return nil
}

func deleteHandler(s *Session, args []string) error {
	if err := s.requireGame(); err != nil {
		return err
	}
	ctx, cancel := requestContext()
	defer cancel()
	if err := s.client.DeleteGame(ctx, s.gameID); err != nil {
		return err
	}
	display.Success(s.out, "Deleted %s", s.gameID)
	return disconnectHandler(s, nil)
}

func healthHandler(s *Session, args []string) error {
	if s.client == nil {
		return errNoServer
	}
	ctx, cancel := requestContext()
	defer cancel()
	resp, err := s.client.Health(ctx)
	if err != nil {
		return err
	}
	display.PrettyPrintJSON(s.out, resp)
	return nil
}

func urlHandler(s *Session, args []string) error {
	if s.client == nil {
		return errNoServer
	}
	if len(args) == 0 {
		fmt.Fprintf(s.out, "Server URL: %s\n", s.client.BaseURL)
		return nil
	}
	url := args[0]
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "http://" + url
	}
	s.client.SetBaseURL(url)
	display.Success(s.out, "Server URL set to %s", s.client.BaseURL)
	return nil
}

func rawHandler(s *Session, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: raw <METHOD> <path> [json-body]")
	}
	if s.client == nil {
		return errNoServer
	}
	ctx, cancel := requestContext()
	defer cancel()
	body, err := s.client.RawRequest(ctx, args[0], args[1], strings.Join(args[2:], " "))
	if err != nil {
		return err
	}
	if len(body) > 0 {
		fmt.Fprintln(s.out, string(body))
	}
	return nil
}
