package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"netchess/internal/board"
	"netchess/internal/client/display"
	"netchess/internal/protocol"
	"netchess/internal/render"
)

const maxPerftDepth = 6

var errNotOverSocket = errors.New("not available while connected to a socket host")

func (r *Registry) registerBoardCommands() {
	r.Register(&Command{
		Name:        "show",
		ShortName:   "h",
		Description: "Display the board",
		Usage:       "show",
		Group:       "Board",
		Handler:     showHandler,
	})
	r.Register(&Command{
		Name:        "fen",
		ShortName:   "f",
		Description: "Print the position as FEN",
		Usage:       "fen",
		Group:       "Board",
		Handler:     fenHandler,
	})
	r.Register(&Command{
		Name:        "moves",
		ShortName:   "l",
		Description: "List the legal moves",
		Usage:       "moves",
		Group:       "Board",
		Handler:     movesHandler,
	})
	r.Register(&Command{
		Name:        "move",
		ShortName:   "m",
		Description: "Make a move",
		Usage:       "move <uci>  (e2e4, e7e8q)",
		Group:       "Board",
		Handler:     moveHandler,
	})
	r.Register(&Command{
		Name:        "undo",
		ShortName:   "u",
		Description: "Take back moves",
		Usage:       "undo [count]",
		Group:       "Board",
		Handler:     undoHandler,
	})
	r.Register(&Command{
		Name:        "state",
		ShortName:   "s",
		Description: "Show the game state and move list",
		Usage:       "state",
		Group:       "Board",
		Handler:     stateHandler,
	})
	r.Register(&Command{
		Name:        "new",
		ShortName:   "n",
		Description: "Start over from the starting position or a FEN",
		Usage:       "new [fen]",
		Group:       "Board",
		Handler:     newHandler,
	})
	r.Register(&Command{
		Name:        "perft",
		Description: "Count leaf nodes of the move tree",
		Usage:       "perft <depth>",
		Group:       "Board",
		Handler:     perftHandler,
	})
	r.Register(&Command{
		Name:        "divide",
		Description: "Perft count per root move",
		Usage:       "divide <depth>",
		Group:       "Board",
		Handler:     divideHandler,
	})
	r.Register(&Command{
		Name:        "export",
		ShortName:   "e",
		Description: "Write the board as a PNG image",
		Usage:       "export <file.png> [size] [flip]",
		Group:       "Board",
		Handler:     exportHandler,
	})
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 70*time.Second)
}

func showHandler(s *Session, args []string) error {
	if s.Mode() == ModeRemote {
		ctx, cancel := requestContext()
		defer cancel()
		resp, err := s.client.GetBoard(ctx, s.gameID)
		if err != nil {
			return err
		}
		display.RenderBoard(s.out, resp.Board)
		return nil
	}

	p, err := s.Position()
	if err != nil {
		return err
	}
	display.RenderBoard(s.out, p.ToASCII())
	fmt.Fprintf(s.out, "%s to move", display.ColorForTurn(p.SideToMove().Name()))
	if p.InCheck() {
		fmt.Fprintf(s.out, " %s(check)%s", display.Red, display.Reset)
	}
	fmt.Fprintln(s.out)
	return nil
}

func fenHandler(s *Session, args []string) error {
	if s.Mode() == ModeRemote {
		ctx, cancel := requestContext()
		defer cancel()
		g, err := s.client.GetGame(ctx, s.gameID)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, g.FEN)
		return nil
	}

	p, err := s.Position()
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, p.FEN())
	return nil
}

func movesHandler(s *Session, args []string) error {
	var moves []string
	if s.Mode() == ModeRemote {
		ctx, cancel := requestContext()
		defer cancel()
		var err error
		if moves, err = s.client.LegalMoves(ctx, s.gameID); err != nil {
			return err
		}
	} else {
		p, err := s.Position()
		if err != nil {
			return err
		}
		if !board.InferState(p).IsTerminal() {
			for _, m := range board.LegalMoves(p) {
				moves = append(moves, m.String())
			}
		}
	}

	sort.Strings(moves)
	fmt.Fprintf(s.out, "%d legal moves\n", len(moves))
	if len(moves) > 0 {
		fmt.Fprintln(s.out, strings.Join(moves, " "))
	}
	return nil
}

func moveHandler(s *Session, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: move <uci>")
	}
	uci := strings.ToLower(args[0])

	switch s.Mode() {
	case ModeRemote:
		ctx, cancel := requestContext()
		defer cancel()
		g, err := s.client.MakeMove(ctx, s.gameID, uci, s.token)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.lastMoveCount = len(g.Moves)
		s.mu.Unlock()
		printRemoteState(s, g.FEN, g.Turn, g.State, g.Check)
		return nil

	case ModeSocket:
		p, err := s.Position()
		if err != nil {
			return err
		}
		m, err := board.ParseMove(p, uci)
		if err != nil {
			return err
		}
		s.mu.Lock()
		conn := s.conn
		s.mu.Unlock()
		if conn == nil {
			return errors.New("not connected")
		}
		// The host answers with a state broadcast or an error
		return conn.Send(protocol.MoveMessage(m))

	default:
		s.mu.Lock()
		m, err := s.playLocal(uci)
		state := s.board.State()
		check := s.board.InCheck()
		s.mu.Unlock()
		if err != nil {
			return err
		}
		display.Success(s.out, "Played %s (%s)", m, m.Flag)
		if state.IsTerminal() {
			display.Info(s.out, "Game over: %s", state)
		} else if check {
			display.Info(s.out, "Check")
		}
		return nil
	}
}

func undoHandler(s *Session, args []string) error {
	count := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid count: %s", args[0])
		}
		count = n
	}

	switch s.Mode() {
	case ModeRemote:
		ctx, cancel := requestContext()
		defer cancel()
		g, err := s.client.UndoMoves(ctx, s.gameID, count)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.lastMoveCount = len(g.Moves)
		s.mu.Unlock()
		display.Success(s.out, "Undid %d move(s)", count)
		return nil

	case ModeSocket:
		return errNotOverSocket

	default:
		s.mu.Lock()
		defer s.mu.Unlock()
		if available := s.board.History(); available < count {
			return fmt.Errorf("cannot undo %d moves: only %d moves available", count, available)
		}
		for i := 0; i < count; i++ {
			if err := s.board.UnmakeMove(); err != nil {
				return err
			}
		}
		s.moves = s.moves[:len(s.moves)-count]
		display.Success(s.out, "Undid %d move(s)", count)
		return nil
	}
}

func stateHandler(s *Session, args []string) error {
	switch s.Mode() {
	case ModeRemote:
		ctx, cancel := requestContext()
		defer cancel()
		g, err := s.client.GetGame(ctx, s.gameID)
		if err != nil {
			return err
		}
		display.PrettyPrintJSON(s.out, g)
		return nil

	case ModeSocket:
		fen, state, color := s.SocketState()
		fmt.Fprintf(s.out, "Seat:  %s\n", color.Name())
		fmt.Fprintf(s.out, "State: %s\n", state)
		fmt.Fprintf(s.out, "FEN:   %s\n", fen)
		return nil

	default:
		s.mu.Lock()
		defer s.mu.Unlock()
		p := s.board.Position()
		fmt.Fprintf(s.out, "State: %s\n", s.board.State())
		fmt.Fprintf(s.out, "Turn:  %s\n", display.ColorForTurn(p.SideToMove().Name()))
		fmt.Fprintf(s.out, "Check: %v\n", p.InCheck())
		if p.Degraded() {
			fmt.Fprintf(s.out, "%sPosition has no king; move generation is pseudo-legal%s\n", display.Yellow, display.Reset)
		}
		if len(s.moves) > 0 {
			start, _ := board.ParseFEN(s.initialFEN)
			fmt.Fprintf(s.out, "Moves: %s\n", display.FormatHistory(s.moves, start.SideToMove() == board.Black))
		}
		return nil
	}
}

func newHandler(s *Session, args []string) error {
	fen := board.StartingFEN
	if len(args) > 0 {
		fen = strings.Join(args, " ")
	}

	switch s.Mode() {
	case ModeRemote:
		ctx, cancel := requestContext()
		defer cancel()
		g, err := s.client.SetPosition(ctx, s.gameID, fen)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.lastMoveCount = 0
		s.mu.Unlock()
		printRemoteState(s, g.FEN, g.Turn, g.State, g.Check)
		return nil

	case ModeSocket:
		if len(args) > 0 {
			return errors.New("a socket host only restarts from the starting position")
		}
		s.mu.Lock()
		conn := s.conn
		s.mu.Unlock()
		if conn == nil {
			return errors.New("not connected")
		}
		return conn.Send(protocol.RestartMessage())

	default:
		s.mu.Lock()
		err := s.resetLocal(fen)
		s.mu.Unlock()
		if err != nil {
			return err
		}
		return showHandler(s, nil)
	}
}

func parseDepth(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("depth required")
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 1 || depth > maxPerftDepth {
		return 0, fmt.Errorf("depth must be 1-%d", maxPerftDepth)
	}
	return depth, nil
}

func perftHandler(s *Session, args []string) error {
	depth, err := parseDepth(args)
	if err != nil {
		return err
	}
	p, err := s.Position()
	if err != nil {
		return err
	}

	start := time.Now()
	nodes := board.Perft(board.NewBoardFromPosition(p), depth)
	fmt.Fprintf(s.out, "Nodes: %d (%s)\n", nodes, time.Since(start).Round(time.Millisecond))
	return nil
}

func divideHandler(s *Session, args []string) error {
	depth, err := parseDepth(args)
	if err != nil {
		return err
	}
	p, err := s.Position()
	if err != nil {
		return err
	}

	counts := board.Divide(board.NewBoardFromPosition(p), depth)
	keys := make([]string, 0, len(counts))
	var total int64
	for k, n := range counts {
		keys = append(keys, k)
		total += n
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(s.out, "%s: %d\n", k, counts[k])
	}
	fmt.Fprintf(s.out, "Moves: %d\tNodes: %d\n", len(keys), total)
	return nil
}

func exportHandler(s *Session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: export <file.png> [size] [flip]")
	}
	path := args[0]
	opts := render.DefaultOptions()
	for _, a := range args[1:] {
		if a == "flip" {
			opts.Flip = true
			continue
		}
		n, err := strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("invalid option: %s", a)
		}
		opts.SquareSize = n
	}

	if s.Mode() == ModeRemote {
		ctx, cancel := requestContext()
		defer cancel()
		data, err := s.client.BoardImage(ctx, s.gameID, opts.SquareSize, opts.Flip)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		display.Success(s.out, "Wrote %s", path)
		return nil
	}

	p, err := s.Position()
	if err != nil {
		return err
	}
	if s.Mode() == ModeLocal {
		s.mu.Lock()
		if n := len(s.moves); n > 0 {
			last := s.moves[n-1]
			from, _ := board.ParseCoordinate(last[:2])
			to, _ := board.ParseCoordinate(last[2:4])
			opts.Highlight = []board.Coordinate{from, to}
		}
		s.mu.Unlock()
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.PNG(f, p, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	display.Success(s.out, "Wrote %s", path)
	return nil
}

func printRemoteState(s *Session, fen, turn, state string, check bool) {
	fmt.Fprintf(s.out, "FEN:   %s\n", fen)
	fmt.Fprintf(s.out, "Turn:  %s\n", display.ColorForTurn(turn))
	fmt.Fprintf(s.out, "State: %s", state)
	if check {
		fmt.Fprintf(s.out, " %s(check)%s", display.Red, display.Reset)
	}
	fmt.Fprintln(s.out)
}
