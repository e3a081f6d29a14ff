package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"netchess/internal/client/display"
)

func (r *Registry) registerSaveCommands() {
	r.Register(&Command{
		Name:        "save",
		Description: "Save the current game under a name",
		Usage:       "save <name>",
		Group:       "Save",
		Handler:     saveHandler,
	})
	r.Register(&Command{
		Name:        "load",
		Description: "Load a saved game",
		Usage:       "load <name>",
		Group:       "Save",
		Handler:     loadHandler,
	})
	r.Register(&Command{
		Name:        "saves",
		Description: "List saved games",
		Usage:       "saves",
		Group:       "Save",
		Handler:     savesHandler,
	})
	r.Register(&Command{
		Name:        "remove",
		Description: "Delete a saved game",
		Usage:       "remove <name>",
		Group:       "Save",
		Handler:     removeHandler,
	})
}

func saveHandler(s *Session, args []string) error {
	if s.saves == nil {
		return errNoSaves
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: save <name>")
	}

	var initial string
	var moves []string
	switch s.Mode() {
	case ModeLocal:
		initial, moves = s.LocalGame()
	case ModeRemote:
		ctx, cancel := requestContext()
		defer cancel()
		g, err := s.client.GetGame(ctx, s.gameID)
		if err != nil {
			return err
		}
		initial = g.FEN
	default:
		p, err := s.Position()
		if err != nil {
			return err
		}
		initial = p.FEN()
	}

	// Only the local game keeps its history; elsewhere the position is saved
	fen := initial
	if len(moves) > 0 {
		p, _ := s.Position()
		fen = p.FEN()
	}

	if err := s.saves.Save(args[0], initial, moves, fen); err != nil {
		return err
	}
	display.Success(s.out, "Saved %s", args[0])
	return nil
}

func loadHandler(s *Session, args []string) error {
	if s.saves == nil {
		return errNoSaves
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: load <name>")
	}
	saved, err := s.saves.Load(args[0])
	if err != nil {
		return err
	}

	switch s.Mode() {
	case ModeRemote:
		ctx, cancel := requestContext()
		defer cancel()
		if _, err := s.client.SetPosition(ctx, s.gameID, saved.FEN); err != nil {
			return err
		}
		s.mu.Lock()
		s.lastMoveCount = 0
		s.mu.Unlock()
	case ModeSocket:
		return errNotOverSocket
	default:
		if err := s.replay(saved.InitialFEN, saved.Moves); err != nil {
			return err
		}
	}

	display.Success(s.out, "Loaded %s", saved.Name)
	return showHandler(s, nil)
}

func savesHandler(s *Session, args []string) error {
	if s.saves == nil {
		return errNoSaves
	}
	list, err := s.saves.List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(s.out, "No saved games")
		return nil
	}

	w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMOVES\tSAVED\tFEN")
	for _, sp := range list {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", sp.Name, len(sp.Moves), sp.SavedAt.Local().Format(time.DateTime), sp.FEN)
	}
	return w.Flush()
}

func removeHandler(s *Session, args []string) error {
	if s.saves == nil {
		return errNoSaves
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: remove <name>")
	}
	if err := s.saves.Delete(args[0]); err != nil {
		return err
	}
	display.Success(s.out, "Removed %s", args[0])
	return nil
}

