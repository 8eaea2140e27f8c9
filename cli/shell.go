package cli

import (
	"errors"
	"io"

	"github.com/chzyer/readline"
)

// NewReadline opens the terminal with line editing. historyFile may be empty.
func NewReadline(historyFile string) (*readline.Instance, error) {
	return readline.NewEx(&readline.Config{
		Prompt:          "othello> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
}

// Shell runs commands read from rl until quit or end of input.
func Shell(s *Session, rl *readline.Instance) error {
	s.printf("Othello\nType 'help' for commands\n\n")
	for {
		rl.SetPrompt(s.Prompt())
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			if err := s.Execute("quit"); !errors.Is(err, ErrQuit) {
				return err
			}
			return nil
		case err != nil:
			return err
		}

		err = s.Execute(line)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			s.printf("Error: %s\n", err)
		}
	}
}
