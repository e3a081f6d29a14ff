// Package commands implements the client's REPL commands.
package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"netchess/internal/client/display"
)

// ErrExit is returned by the exit command. The REPL stops on it.
var ErrExit = errors.New("exit")

// Command defines a client command with its handler
type Command struct {
	Name        string
	ShortName   string
	Description string
	Usage       string
	Group       string
	Handler     func(*Session, []string) error
}

type Registry struct {
	session  *Session
	commands map[string]*Command
	groups   []string
}

// NewRegistry registers every command against session
func NewRegistry(session *Session) *Registry {
	r := &Registry{
		session:  session,
		commands: make(map[string]*Command),
	}

	r.registerBoardCommands()
	r.registerSaveCommands()
	r.registerNetworkCommands()

	r.Register(&Command{
		Name:        "help",
		ShortName:   "?",
		Description: "Show available commands",
		Usage:       "help [command]",
		Group:       "Utility",
		Handler:     r.helpHandler,
	})
	r.Register(&Command{
		Name:        "clear",
		ShortName:   "-",
		Description: "Clear the screen",
		Usage:       "clear",
		Group:       "Utility",
		Handler: func(s *Session, args []string) error {
			fmt.Fprint(s.out, "\033[H\033[2J")
			return nil
		},
	})
	r.Register(&Command{
		Name:        "exit",
		ShortName:   "x",
		Description: "Exit the client",
		Usage:       "exit",
		Group:       "Utility",
		Handler: func(s *Session, args []string) error {
			fmt.Fprintf(s.out, "%sGoodbye!%s\n", display.Cyan, display.Reset)
			return ErrExit
		},
	})

	return r
}

func (r *Registry) Register(cmd *Command) {
	if _, seen := r.commands[cmd.Name]; !seen && !r.hasGroup(cmd.Group) {
		r.groups = append(r.groups, cmd.Group)
	}
	r.commands[cmd.Name] = cmd
	if cmd.ShortName != "" {
		r.commands[cmd.ShortName] = cmd
	}
}

func (r *Registry) hasGroup(g string) bool {
	for _, have := range r.groups {
		if have == g {
			return true
		}
	}
	return false
}

// Names lists the full command names, sorted. Used for tab completion.
func (r *Registry) Names() []string {
	var names []string
	for key, cmd := range r.commands {
		if key == cmd.Name {
			names = append(names, key)
		}
	}
	sort.Strings(names)
	return names
}

// Execute runs one input line. Command failures are printed, not returned;
// only ErrExit comes back.
func (r *Registry) Execute(input string) error {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}

	cmdName := strings.ToLower(parts[0])
	args := parts[1:]

	// Trailing -v turns on request tracing for this command
	verbose := false
	if n := len(args); n > 0 && args[n-1] == "-v" {
		verbose = true
		args = args[:n-1]
	}

	cmd, exists := r.commands[cmdName]
	if !exists {
		fmt.Fprintf(r.session.out, "%sUnknown command: %s%s\n", display.Red, cmdName, display.Reset)
		fmt.Fprintf(r.session.out, "Type 'help' for available commands\n")
		return nil
	}

	prev := r.session.verbose
	r.session.SetVerbose(prev || verbose)
	defer r.session.SetVerbose(prev)

	if err := cmd.Handler(r.session, args); err != nil {
		if errors.Is(err, ErrExit) {
			return err
		}
		display.Error(r.session.out, "Error: %s", err.Error())
	}
	return nil
}

func (r *Registry) helpHandler(s *Session, args []string) error {
	if len(args) > 0 {
		cmd, exists := r.commands[args[0]]
		if !exists {
			return fmt.Errorf("unknown command: %s", args[0])
		}
		fmt.Fprintf(s.out, "\n%s%s%s - %s\n", display.Cyan, cmd.Name, display.Reset, cmd.Description)
		if cmd.ShortName != "" {
			fmt.Fprintf(s.out, "Short form: %s%s%s\n", display.Cyan, cmd.ShortName, display.Reset)
		}
		fmt.Fprintf(s.out, "Usage: %s\n", cmd.Usage)
		return nil
	}

	fmt.Fprintf(s.out, "\n%sAvailable Commands:%s\n", display.Cyan, display.Reset)
	for _, group := range r.groups {
		fmt.Fprintf(s.out, "\n%s%s Commands:%s\n", display.Yellow, group, display.Reset)
		for _, name := range r.Names() {
			cmd := r.commands[name]
			if cmd.Group != group {
				continue
			}
			shortPart := "    "
			if cmd.ShortName != "" {
				shortPart = fmt.Sprintf("[%s%s%s] ", display.Cyan, cmd.ShortName, display.Reset)
			}
			fmt.Fprintf(s.out, "  %s%-10s %s\n", shortPart, cmd.Name, cmd.Description)
		}
	}

	fmt.Fprintf(s.out, "\nType 'help <command>' for detailed usage\n")
	fmt.Fprintf(s.out, "Add '-v' to any command for verbose output\n")
	return nil
}
