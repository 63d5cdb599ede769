package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
)

var errQuit = errors.New("quit")

var flagShellStrategy string

const shellHelp = `Play or inspect a session by typing commands. Coordinates are
column then row, with row 0 at the bottom of the board.

Commands:
  show               - Print the board
  swaps              - List legal swaps and their first-pass points
  hint               - Suggest a swap
  swap c1 r1 c2 r2   - Swap two adjacent tokens
  auto [n]           - Let the autoplayer make n swaps (default 1)
  new [level]        - Start a new session, optionally on another level
  status             - Show score, target and moves
  help               - Show this help
  exit               - Leave the shell

Examples:
  match3 shell
  match3 shell level_03 --seed 7 --strategy random`

var shellCmd = &cobra.Command{
	Use:   "shell [level]",
	Short: "Interactive text shell over a game session",
	Long:  shellHelp,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShell,
}

func init() {
	shellCmd.Flags().StringVar(&flagShellStrategy, "strategy", "greedy", "Strategy for the auto command: first, random, greedy")
}

func runShell(cmd *cobra.Command, args []string) error {
	lvl := campaign[0]
	if len(args) == 1 {
		var err error
		if lvl, err = findLevel(args[0]); err != nil {
			return err
		}
	}
	strategy, err := match3.ParseStrategy(flagShellStrategy)
	if err != nil {
		return err
	}

	sh, err := newShell(cmd.OutOrStdout(), lvl, seed(), strategy)
	if err != nil {
		return err
	}
	return sh.loop()
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// shell is a line-oriented front end over one session at a time.
type shell struct {
	out      io.Writer
	level    levels.Level
	seed     int64
	strategy match3.Strategy
	session  *match3.Session
	player   *match3.Autoplayer
}

func newShell(out io.Writer, lvl levels.Level, seed int64, strategy match3.Strategy) (*shell, error) {
	sh := &shell{out: out, seed: seed, strategy: strategy}
	if err := sh.start(lvl); err != nil {
		return nil, err
	}
	return sh, nil
}

// start begins a new session on lvl with the next seed.
func (sh *shell) start(lvl levels.Level) error {
	s, err := match3.NewSession(lvl, match3.Options{
		Seed:   sh.seed,
		Config: appConfig,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	if err := s.Begin(); err != nil {
		return err
	}
	sh.level = lvl
	sh.session = s
	sh.player = match3.NewAutoplayer(sh.strategy, sh.seed)
	sh.printf("%s (%s), seed %s: reach %d points in %d moves\n",
		lvl.ID, lvl.Title(), strconv.FormatInt(sh.seed, 10), lvl.TargetScore, lvl.Moves)
	sh.seed++
	return nil
}

func (sh *shell) printf(format string, args ...any) {
	printer.Fprintf(sh.out, format, args...)
}

func (sh *shell) loop() error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "match3> ",
		HistoryFile:     filepath.Join(os.TempDir(), "match3_history.tmp"),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return err
	}
	defer l.Close()
	sh.out = l.Stdout()

	sh.show()
	for {
		line, err := l.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if errors.Is(err, io.EOF) {
			return nil
		}

		if err := sh.execute(line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintf(l.Stderr(), "error: %v\n", err)
		}
	}
}

// execute runs one command line. It returns errQuit for exit.
func (sh *shell) execute(line string) error {
	fields, err := shellquote.Split(line)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "show", "board":
		sh.show()
	case "swaps":
		sh.swaps()
	case "hint":
		sw, ok := sh.session.Hint()
		if !ok {
			sh.printf("No legal swap.\n")
			return nil
		}
		sh.printf("Try %s\n", swapArgs(sw))
	case "swap":
		return sh.swap(args)
	case "auto":
		return sh.auto(args)
	case "new":
		lvl := sh.level
		if len(args) > 0 {
			if lvl, err = findLevel(args[0]); err != nil {
				return err
			}
		}
		if err := sh.start(lvl); err != nil {
			return err
		}
		sh.show()
	case "status":
		sh.status()
	case "help", "?":
		sh.printf("%s\n", shellHelp)
	case "exit", "quit", "q":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
	return nil
}

// show prints the board, top row first, with coordinates.
func (sh *shell) show() {
	sh.printf("%s", formatBoard(sh.session.Board()))
	sh.status()
}

func formatBoard(b *core.Board) string {
	var sb strings.Builder
	lines := strings.Split(b.String(), "\n")
	for i, line := range lines {
		row := b.H - 1 - i
		fmt.Fprintf(&sb, "%2d |", row)
		for _, r := range line {
			sb.WriteRune(' ')
			sb.WriteRune(r)
		}
		sb.WriteRune('\n')
	}
	sb.WriteString("   +" + strings.Repeat("--", b.W) + "\n    ")
	for col := 0; col < b.W; col++ {
		fmt.Fprintf(&sb, " %d", col%10)
	}
	sb.WriteRune('\n')
	return sb.String()
}

func (sh *shell) status() {
	s := sh.session
	if s.Endless() {
		sh.printf("Score %d, %d moves made, best chain %d\n", s.Score(), s.MovesMade(), s.MaxChain())
		return
	}
	sh.printf("Score %d / %d, %d moves left, best chain %d [%s]\n",
		s.Score(), sh.level.TargetScore, s.MovesLeft(), s.MaxChain(), s.Status())
}

func (sh *shell) swaps() {
	swaps := sh.session.LegalSwaps()
	if len(swaps) == 0 {
		sh.printf("No legal swaps.\n")
		return
	}
	for _, sw := range swaps {
		sh.printf("  %-10s %5d\n", swapArgs(sw), sh.session.Engine().PreviewSwap(sw))
	}
	sh.printf("%d legal swaps\n", len(swaps))
}

func (sh *shell) swap(args []string) error {
	if len(args) != 4 {
		return errors.New("usage: swap c1 r1 c2 r2")
	}
	n := make([]int, 4)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("bad coordinate %q", a)
		}
		n[i] = v
	}

	turn, err := sh.session.TrySwap(core.C(n[0], n[1]), core.C(n[2], n[3]))
	if err != nil {
		return err
	}
	sh.report(turn)
	sh.show()
	return nil
}

func (sh *shell) auto(args []string) error {
	turns := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v <= 0 {
			return fmt.Errorf("bad turn count %q", args[0])
		}
		turns = v
	}

	for i := 0; i < turns && !sh.session.Over(); i++ {
		turn, err := sh.player.PlayTurn(sh.session)
		if err != nil {
			return err
		}
		sh.report(turn)
	}
	sh.show()
	return nil
}

// report prints the outcome of one turn.
func (sh *shell) report(turn match3.Turn) {
	sh.printf("%s: %d points", swapArgs(turn.Swap), turn.Points)
	if turn.Chain > 1 {
		sh.printf(", chain of %d", turn.Chain)
	}
	if len(turn.Steps) > 1 {
		sh.printf(", %d cascades", len(turn.Steps)-1)
	}
	sh.printf("\n")
	if turn.Reshuffled {
		sh.printf("No legal swaps left, board reshuffled.\n")
	}
	switch turn.Status {
	case match3.StatusLevelComplete:
		sh.printf("Level complete!\n")
	case match3.StatusGameOver:
		sh.printf("Out of moves.\n")
	}
}

// swapArgs formats a swap the way the swap command takes it.
func swapArgs(sw core.Swap) string {
	return fmt.Sprintf("%d %d %d %d", sw.A.Col, sw.A.Row, sw.B.Col, sw.B.Row)
}
