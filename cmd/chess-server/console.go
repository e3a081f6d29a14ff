package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"netchess/internal/board"
	"netchess/internal/client/display"
	"netchess/internal/perft"
	"netchess/internal/transport/tcp"

	"github.com/chzyer/readline"
)

// console is the operator prompt for the socket host's shared game
type console struct {
	host *tcp.Host
	out  io.Writer
}

var errQuit = errors.New("quit")

const consoleHelp = `Commands:
  set <fen>                    replace the shared position
  get                          print the shared position
  reset                        restart from the starting position
  perft [-s N] [-e N] [-d] [-depth N]
                               run the perft suite (start, end, divide)
  addr                         show the listening address and seats
  help                         this text
  quit                         stop the console (the server keeps running)`

// exec runs one console line
func (c *console) exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	args := fields[1:]

	switch strings.ToLower(fields[0]) {
	case "set":
		if len(args) == 0 {
			return fmt.Errorf("usage: set <fen>")
		}
		if err := c.host.SetPosition(strings.Join(args, " ")); err != nil {
			return err
		}
		return c.printPosition()

	case "get":
		return c.printPosition()

	case "reset":
		if err := c.host.Reset(); err != nil {
			return err
		}
		return c.printPosition()

	case "perft":
		return c.perft(args)

	case "addr":
		white, black, spectators := c.host.Seats()
		fmt.Fprintf(c.out, "Listening on %s\n", c.host.Addr())
		fmt.Fprintf(c.out, "White: %s  Black: %s  Spectators: %d\n", seated(white), seated(black), spectators)
		return nil

	case "help", "?":
		fmt.Fprintln(c.out, consoleHelp)
		return nil

	case "quit", "exit":
		return errQuit

	default:
		return fmt.Errorf("unknown command: %s (try help)", fields[0])
	}
}

func seated(b bool) string {
	if b {
		return "seated"
	}
	return "open"
}

func (c *console) printPosition() error {
	p, err := c.host.Position()
	if err != nil {
		return err
	}
	display.RenderBoard(c.out, p.ToASCII())
	fmt.Fprintf(c.out, "FEN:   %s\n", p.FEN())
	fmt.Fprintf(c.out, "State: %s\n", board.InferState(p))
	return nil
}

func (c *console) perft(args []string) error {
	fs := flag.NewFlagSet("perft", flag.ContinueOnError)
	fs.SetOutput(c.out)
	start := fs.Int("s", 0, "first case")
	end := fs.Int("e", len(perft.Suite)-1, "last case")
	divide := fs.Bool("d", false, "print per-move counts")
	depth := fs.Int("depth", 3, "maximum depth")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sum := perft.Run(c.out, *start, *end, *depth, *divide)
	if sum.Failed > 0 {
		return fmt.Errorf("%d perft case(s) failed", sum.Failed)
	}
	return nil
}

// run reads commands until EOF or quit
func (c *console) run(rl *readline.Instance) {
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			return
		}
		if err := c.exec(line); err != nil {
			if errors.Is(err, errQuit) {
				return
			}
			fmt.Fprintf(c.out, "%sError: %v%s\n", display.Red, err, display.Reset)
		}
	}
}
