// Command chess is an interactive client: a local board, server games over
// the REST API and shared games on a socket host.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"netchess/internal/board"
	"netchess/internal/client/api"
	"netchess/internal/client/commands"
	"netchess/internal/client/display"
	"netchess/internal/savestore"

	"github.com/chzyer/readline"
)

func main() {
	fen := flag.String("fen", board.StartingFEN, "Starting position")
	dataDir := flag.String("data-dir", "", "Directory for saved games (default: platform data dir)")
	history := flag.String("history", "", "Readline history file (default: <data-dir>/history)")
	apiURL := flag.String("api", "http://localhost:8080", "Game server URL")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	flag.Parse()

	if err := run(*fen, *dataDir, *history, *apiURL, *noColor); err != nil {
		fmt.Fprintf(os.Stderr, "%s%s%s\n", display.Red, err, display.Reset)
		os.Exit(1)
	}
}

func run(fen, dataDir, history, apiURL string, noColor bool) error {
	if noColor {
		display.SetColor(false)
	} else {
		display.AutoColor(os.Stdout)
	}

	if dataDir == "" {
		dir, err := savestore.DataDir()
		if err != nil {
			return err
		}
		dataDir = dir
	}
	if history == "" {
		history = filepath.Join(dataDir, "history")
	}

	// The client still works without saves, e.g. on a read-only home
	store, err := savestore.OpenDefault(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%sSaved games disabled: %v%s\n", display.Yellow, err, display.Reset)
		store = nil
	} else {
		defer store.Close()
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          display.Prompt("chess"),
		HistoryFile:     history,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	session, err := commands.NewSession(rl.Stdout(), fen, api.New(apiURL), store)
	if err != nil {
		return err
	}
	defer session.Close()

	registry := commands.NewRegistry(session)
	items := make([]readline.PrefixCompleterInterface, 0, len(registry.Names()))
	for _, name := range registry.Names() {
		items = append(items, readline.PcItem(name))
	}
	rl.Config.AutoComplete = readline.NewPrefixCompleter(items...)

	out := rl.Stdout()
	fmt.Fprintf(out, "%sChess Client%s\n", display.Cyan, display.Reset)
	fmt.Fprintf(out, "%sServer: %s%s\n", display.Cyan, apiURL, display.Reset)
	fmt.Fprintf(out, "Type 'help' for commands\n\n")
	registry.Execute("show")

	for {
		rl.SetPrompt(display.Prompt(session.Prompt()))

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "quit" {
			line = "exit"
		}
		if err := registry.Execute(line); errors.Is(err, commands.ErrExit) {
			return nil
		}
	}
}
