package cli

import (
	"errors"
	"fmt"
	"othello/engine"
	"othello/export"
	"othello/game"
	"othello/review"
	"othello/searcher"
	"othello/storage"
	"othello/utils"
	"strconv"
	"strings"
)

var colors = []string{"black", "white"}

// Command defines a shell command with its handler
type Command struct {
	Name        string
	ShortName   string
	Description string
	Usage       string
	Handler     func(*Session, []string) error
}

type Registry struct {
	commands map[string]*Command
	ordered  []*Command
}

func newRegistry() *Registry {
	r := &Registry{commands: make(map[string]*Command)}

	r.Register(&Command{Name: "new", ShortName: "n", Description: "Start a game against the computer or another person",
		Usage: "new [easy|medium|hard|expert|two] [black|white]", Handler: newHandler})
	r.Register(&Command{Name: "move", ShortName: "m", Description: "Place a disc; a bare square works too",
		Usage: "move <square>", Handler: moveHandler})
	r.Register(&Command{Name: "pass", Description: "Pass when you have no legal move", Usage: "pass", Handler: passHandler})
	r.Register(&Command{Name: "undo", ShortName: "u", Description: "Take back your last move", Usage: "undo", Handler: undoHandler})
	r.Register(&Command{Name: "hint", Description: "Suggest a move", Usage: "hint", Handler: hintHandler})
	r.Register(&Command{Name: "board", ShortName: "b", Description: "Show the board", Usage: "board", Handler: boardHandler})
	r.Register(&Command{Name: "history", ShortName: "h", Description: "List the moves played", Usage: "history", Handler: historyHandler})
	r.Register(&Command{Name: "review", ShortName: "r", Description: "Step through the game and try other moves",
		Usage: "review [back|forward|start|end|reset [n]|exit|<square>]", Handler: reviewHandler})
	r.Register(&Command{Name: "save", Description: "Save the game in progress", Usage: "save", Handler: saveHandler})
	r.Register(&Command{Name: "load", Description: "Resume the saved game", Usage: "load", Handler: loadHandler})
	r.Register(&Command{Name: "export", ShortName: "e", Description: "Print the game record", Usage: "export", Handler: exportHandler})
	r.Register(&Command{Name: "stats", Description: "Show results and recent games", Usage: "stats", Handler: statsHandler})
	r.Register(&Command{Name: "set", Description: "Change a setting",
		Usage: "set [validmoves|undo] [on|off]", Handler: setHandler})
	r.Register(&Command{Name: "help", ShortName: "?", Description: "Show available commands", Usage: "help [command]", Handler: r.helpHandler})
	r.Register(&Command{Name: "quit", ShortName: "q", Description: "Save and leave", Usage: "quit", Handler: quitHandler})

	return r
}

func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	if cmd.ShortName != "" {
		r.commands[cmd.ShortName] = cmd
	}
	r.ordered = append(r.ordered, cmd)
}

func (r *Registry) execute(s *Session, input string) error {
	parts := strings.Fields(strings.ToLower(input))
	if len(parts) == 0 {
		return nil
	}

	cmd, exists := r.commands[parts[0]]
	if !exists {
		if _, ok := game.ParsePosition(parts[0]); ok {
			return moveHandler(s, parts)
		}
		return fmt.Errorf("unknown command: %s, type 'help' for available commands", parts[0])
	}
	return cmd.Handler(s, parts[1:])
}

func (r *Registry) helpHandler(s *Session, args []string) error {
	if len(args) > 0 {
		cmd, exists := r.commands[args[0]]
		if !exists {
			return fmt.Errorf("unknown command: %s", args[0])
		}
		s.printf("%s - %s\nUsage: %s\n", cmd.Name, cmd.Description, cmd.Usage)
		return nil
	}

	s.printf("Available commands:\n")
	for _, cmd := range r.ordered {
		short := ""
		if cmd.ShortName != "" {
			short = "[" + cmd.ShortName + "]"
		}
		s.printf("  %-4s %-8s %s\n", short, cmd.Name, cmd.Description)
	}
	s.printf("Type 'help <command>' for detailed usage\n")
	return nil
}

func newHandler(s *Session, args []string) error {
	mode := storage.VsCPU(s.settings.LastDifficulty)
	color := game.Black
	for _, arg := range args {
		if arg == "two" {
			mode = storage.TwoPlayer
			continue
		}
		if i := utils.FindIndex(colors, arg); i >= 0 {
			color = game.Player(i)
			continue
		}
		d, ok := searcher.ParseDifficulty(arg)
		if !ok {
			return fmt.Errorf("unknown difficulty or colour: %s", arg)
		}
		mode = storage.VsCPU(d)
		if s.settings.LastDifficulty != d {
			s.settings.LastDifficulty = d
			if err := s.store.SaveSettings(s.settings); err != nil {
				return err
			}
		}
	}
	if mode == storage.TwoPlayer {
		color = game.Black
	}

	s.printf("New game: %s", mode)
	if _, ok := mode.Difficulty(); ok {
		s.printf(", you play %s", color)
	}
	s.printf("\n")
	if err := s.startGame(mode, color, nil); err != nil {
		return err
	}
	if !s.finished {
		s.printBoard(s.local.State())
	}
	return nil
}

func moveHandler(s *Session, args []string) error {
	if err := s.requireGame(); err != nil {
		return err
	}
	if len(args) != 1 {
		return errors.New("usage: move <square>")
	}
	pos, ok := game.ParsePosition(args[0])
	if !ok {
		return fmt.Errorf("not a square: %s", args[0])
	}
	if !s.local.IsHumanTurn() && !s.local.State().IsGameOver() {
		return errNotYourTurn
	}

	player := s.local.State().CurrentPlayer()
	m, err := s.local.Play(pos)
	if err != nil {
		return err
	}
	s.whatIf = nil
	s.printf("%s plays %s, flipping %d.\n", player, pos, m.FlipCount())
	if err := s.advance(); err != nil {
		return err
	}
	if !s.finished {
		s.printBoard(s.local.State())
	}
	return nil
}

func passHandler(s *Session, args []string) error {
	if err := s.requireGame(); err != nil {
		return err
	}
	state := s.local.State()
	if state.IsGameOver() {
		return engine.ErrGameOver
	}
	if state.HasMoves() {
		return fmt.Errorf("%s has a legal move and cannot pass", state.CurrentPlayer())
	}
	return s.advance()
}

func undoHandler(s *Session, args []string) error {
	if err := s.requireGame(); err != nil {
		return err
	}
	if !s.settings.AllowUndo {
		return errors.New("undo is turned off, type 'set undo on' to allow it")
	}
	if s.finished {
		return engine.ErrGameOver
	}
	undone, ok := s.local.Undo()
	if !ok {
		return errors.New("nothing to undo")
	}
	s.whatIf = nil
	s.printf("Took back %d plies.\n", len(undone))
	if err := s.advance(); err != nil {
		return err
	}
	s.printBoard(s.local.State())
	return nil
}

func hintHandler(s *Session, args []string) error {
	if err := s.requireGame(); err != nil {
		return err
	}
	if !s.local.IsHumanTurn() {
		return errNotYourTurn
	}
	state := s.local.State()
	pos, ok := searcher.Hint(state.Board(), state.CurrentPlayer())
	if !ok {
		return errors.New("no move to suggest")
	}
	s.printf("Hint: %s\n", pos)
	return nil
}

func boardHandler(s *Session, args []string) error {
	if err := s.requireGame(); err != nil {
		return err
	}
	s.printBoard(s.local.State())
	return nil
}

func historyHandler(s *Session, args []string) error {
	if err := s.requireGame(); err != nil {
		return err
	}
	state := s.local.State()
	if state.MoveCount() == 0 {
		s.printf("No moves yet.\n")
		return nil
	}
	s.printf("%s\n", export.FormatCompact(state))
	return nil
}

func reviewHandler(s *Session, args []string) error {
	if err := s.requireGame(); err != nil {
		return err
	}
	if s.whatIf == nil || len(args) == 0 {
		s.whatIf = review.New(s.local.State())
	}

	w := s.whatIf
	if len(args) > 0 {
		switch args[0] {
		case "back":
			w.StepBack()
		case "forward":
			w.StepForward()
		case "start":
			w.JumpToStart()
		case "end":
			w.JumpToEnd()
		case "reset":
			i := 0
			if len(args) > 1 {
				n, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("not a move number: %s", args[1])
				}
				i = n
			}
			w.ResetToMove(i)
		case "exit":
			s.whatIf = nil
			s.printf("Left review.\n")
			return nil
		case "pass":
			if !w.Pass() {
				return errors.New("a legal move is available")
			}
		default:
			pos, ok := game.ParsePosition(args[0])
			if !ok {
				return fmt.Errorf("unknown review action: %s", args[0])
			}
			if !w.MakeAlternateMove(pos) {
				return fmt.Errorf("%w: %s", engine.ErrIllegalMove, pos)
			}
		}
	}

	s.printf("Move %d/%d", w.CurrentMoveNumber(), w.TotalMoves())
	if w.IsBranched() {
		s.printf(" (what if)")
	}
	s.printf("\n")
	s.printBoard(w.Current())
	return nil
}

func saveHandler(s *Session, args []string) error {
	if err := s.requireGame(); err != nil {
		return err
	}
	if s.finished {
		return engine.ErrGameOver
	}
	sg := storage.SavedGame{State: s.local.State(), PlayerColor: s.color, Mode: s.mode}
	if err := s.store.SaveGame(sg); err != nil {
		return err
	}
	s.printf("Game saved.\n")
	return nil
}

func loadHandler(s *Session, args []string) error {
	sg, err := s.store.LoadGame()
	if err != nil {
		return err
	}
	s.printf("Resuming %s game after %d plies.\n", sg.Mode, sg.State.MoveCount())
	if err := s.startGame(sg.Mode, sg.PlayerColor, sg.State); err != nil {
		return err
	}
	if !s.finished {
		s.printBoard(s.local.State())
	}
	return nil
}

func exportHandler(s *Session, args []string) error {
	if err := s.requireGame(); err != nil {
		return err
	}
	h := s.header()
	s.printf("%s", export.FormatGameRecord(s.local.State(), h.Mode, h.PlayerColor, h.Date))
	return nil
}

func statsHandler(s *Session, args []string) error {
	stats, err := s.store.LoadStatistics()
	if err != nil {
		return err
	}
	s.printf("%-8s %5s %6s %5s\n", "", "Wins", "Losses", "Draws")
	for _, d := range searcher.Difficulties() {
		r := stats.VsCPU[d]
		s.printf("%-8s %5d %6d %5d\n", d, r.Wins, r.Losses, r.Draws)
	}
	s.printf("Two player games: %d\n", stats.TwoPlayerGames)
	s.printf("Total games: %d\n", stats.Total())

	recent, err := s.store.RecentGames(5)
	if err != nil {
		return err
	}
	if len(recent) > 0 {
		s.printf("\nRecent games:\n")
	}
	for _, rec := range recent {
		s.printf("  %s  %-16s %-5s %2d-%-2d\n", rec.FinishedAt.Local().Format("2006-01-02 15:04"), rec.Mode, rec.Winner, rec.BlackDiscs, rec.WhiteDiscs)
	}
	return nil
}

func setHandler(s *Session, args []string) error {
	if len(args) == 0 {
		s.printf("validmoves %s\nundo       %s\n", onOff(s.settings.ShowValidMoves), onOff(s.settings.AllowUndo))
		return nil
	}
	if len(args) != 2 || (args[1] != "on" && args[1] != "off") {
		return errors.New("usage: set [validmoves|undo] [on|off]")
	}
	on := args[1] == "on"
	switch args[0] {
	case "validmoves":
		s.settings.ShowValidMoves = on
	case "undo":
		s.settings.AllowUndo = on
	default:
		return fmt.Errorf("unknown setting: %s", args[0])
	}
	return s.store.SaveSettings(s.settings)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// quitHandler saves an unfinished game before leaving.
func quitHandler(s *Session, args []string) error {
	if s.local != nil && !s.finished && s.local.State().MoveCount() > 0 {
		if err := saveHandler(s, nil); err != nil {
			return err
		}
	}
	return ErrQuit
}
