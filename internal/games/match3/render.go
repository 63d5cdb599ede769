package match3

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	platformcore "github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

const (
	cellWidth = 3 // Each board cell is drawn as " X " or "[X]"
	hudHeight = 4
	minWidth  = 44
)

var printer = message.NewPrinter(language.English)

// TokenStyle is how one token type looks on screen.
type TokenStyle struct {
	Glyph rune
	Color platformcore.Color
}

// Theme maps token types to glyphs and colors.
var Theme = map[core.TokenType]TokenStyle{
	core.TypeRuby:     {Glyph: '◆', Color: platformcore.ColorRed},
	core.TypeEmerald:  {Glyph: '♣', Color: platformcore.ColorGreen},
	core.TypeSapphire: {Glyph: '●', Color: platformcore.ColorBlue},
	core.TypeTopaz:    {Glyph: '▲', Color: platformcore.ColorYellow},
	core.TypeAmethyst: {Glyph: '★', Color: platformcore.ColorMagenta},
	core.TypePearl:    {Glyph: '○', Color: platformcore.ColorWhite},
}

// StyleFor returns the style of a token type.
func StyleFor(t core.TokenType) TokenStyle {
	if s, ok := Theme[t]; ok {
		return s
	}
	return TokenStyle{Glyph: '?', Color: platformcore.ColorGray}
}

// layoutSize returns the minimum screen size for the current level.
func (g *Game) layoutSize() (w, h int) {
	b := g.session.Board()
	boardW := b.W*cellWidth + 2
	boardH := b.H + 2
	return max(boardW, minWidth), hudHeight + boardH + 2
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.session == nil {
		dst.DrawTextCentered(g.screenH/2, "Level could not be started", platformcore.ColorBrightRed)
		return
	}

	// Check screen size
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	b := g.session.Board()
	boardW := b.W*cellWidth + 2
	boardH := b.H + 2
	_, totalH := g.layoutSize()

	boardX := (g.screenW - boardW) / 2
	boardY := (g.screenH-totalH)/2 + hudHeight
	panelX := (g.screenW - minWidth) / 2

	g.renderHUD(dst, panelX)
	g.renderBoard(dst, boardX, boardY)
	g.renderFooter(dst, boardY+boardH)
	g.renderOverlays(dst, platformcore.NewRect(boardX, boardY, boardW, boardH))
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	w, h := g.layoutSize()
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", platformcore.ColorDefault)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Please resize terminal to %dx%d", w, h), platformcore.ColorGray)
}

// renderHUD draws the title, score, target, moves and combo lines.
func (g *Game) renderHUD(dst *platformcore.Screen, x int) {
	s := g.session
	lvl := s.Level()
	top := (g.screenH - g.totalHeight()) / 2

	title := g.Title()
	if g.mode == ModeCampaign {
		title = fmt.Sprintf("%s - Level %d/%d: %s", title, g.levelIndex+1, len(g.levels), lvl.Title())
	}
	dst.DrawTextCentered(top, title, platformcore.ColorBrightCyan)

	score := g.totalScore + s.Score()
	if s.Endless() {
		dst.DrawText(x, top+1, printer.Sprintf("Score: %d", score))
		dst.DrawText(x, top+2, printer.Sprintf("Moves: %d", s.MovesMade()))
	} else {
		dst.DrawText(x, top+1, printer.Sprintf("Score: %d / %d", s.Score(), lvl.TargetScore))
		movesColor := platformcore.ColorDefault
		if s.MovesLeft() <= 3 {
			movesColor = platformcore.ColorBrightRed
		}
		dst.DrawTextColored(x, top+2, fmt.Sprintf("Moves: %d", s.MovesLeft()), movesColor)
		if g.totalScore > 0 {
			total := printer.Sprintf("Total: %d", score)
			dst.DrawText(x+minWidth-len(total), top+1, total)
		}
	}

	best := fmt.Sprintf("Best chain: %d", s.MaxChain())
	dst.DrawText(x+minWidth-len(best), top+2, best)
}

func (g *Game) totalHeight() int {
	_, h := g.layoutSize()
	return h
}

// renderBoard draws the tile mask and tokens inside a box.
func (g *Game) renderBoard(dst *platformcore.Screen, boardX, boardY int) {
	b := g.session.Board()
	dst.DrawBox(platformcore.NewRect(boardX, boardY, b.W*cellWidth+2, b.H+2), platformcore.ColorGray)

	types := b.Types()
	var marked map[core.Coord]bool
	phase := PhaseNone
	if f, ok := g.currentFrame(); ok {
		types, marked, phase = f.board, f.marked, f.phase
	}

	hinted := map[core.Coord]bool{}
	if g.hint != nil && phase == PhaseNone && (g.tick/20)%2 == 0 {
		hinted[g.hint.A] = true
		hinted[g.hint.B] = true
	}

	for row := 0; row < b.H; row++ {
		// Row 0 is the bottom line of the box
		y := boardY + b.H - row
		for col := 0; col < b.W; col++ {
			x := boardX + 1 + col*cellWidth
			c := core.C(col, row)
			if !b.MaskedAt(col, row) {
				continue
			}

			t := types[row][col]
			glyph, color := '·', platformcore.ColorGray
			if t.Live() {
				st := StyleFor(t)
				glyph, color = st.Glyph, st.Color
			}

			switch {
			case marked[c] && phase == PhaseClear && (g.frameTicks/2)%2 == 0:
				glyph, color = '✶', platformcore.ColorBrightWhite
			case marked[c] && phase == PhaseInvalid:
				color = platformcore.ColorBrightRed
			case marked[c] || hinted[c]:
				color = color.Bright()
			}
			dst.SetColored(x+1, y, glyph, color)

			switch {
			case g.selected != nil && *g.selected == c:
				dst.SetColored(x, y, '(', platformcore.ColorBrightYellow)
				dst.SetColored(x+2, y, ')', platformcore.ColorBrightYellow)
			case g.cursor == c && phase == PhaseNone:
				dst.SetColored(x, y, '[', platformcore.ColorBrightWhite)
				dst.SetColored(x+2, y, ']', platformcore.ColorBrightWhite)
			}
		}
	}
}

// renderFooter draws the transient message and key help.
func (g *Game) renderFooter(dst *platformcore.Screen, y int) {
	if g.message != "" {
		dst.DrawTextCentered(y, g.message, platformcore.ColorBrightYellow)
	}
	dst.DrawTextCentered(y+1, "arrows move  space select  ? hint  p pause  r restart  q quit", platformcore.ColorGray)
}

// renderOverlays draws pause, level-clear and end-of-game boxes.
func (g *Game) renderOverlays(dst *platformcore.Screen, board platformcore.Rect) {
	var lines []string
	color := platformcore.ColorBrightWhite
	switch {
	case g.won:
		lines = []string{"YOU WIN!", printer.Sprintf("Final score: %d", g.State().Score), "Press R to play again"}
		color = platformcore.ColorBrightGreen
	case g.gameOver:
		lines = []string{"GAME OVER", printer.Sprintf("Score: %d", g.State().Score), "Press R to restart"}
		color = platformcore.ColorBrightRed
	case g.levelCleared:
		lines = []string{"LEVEL COMPLETE", printer.Sprintf("Score: %d", g.session.Score())}
		color = platformcore.ColorBrightGreen
	case g.paused:
		lines = []string{"PAUSED", "Press P to resume"}
	default:
		return
	}

	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	box := board.Centered(w+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, color)
	for i, l := range lines {
		dst.DrawTextColored(box.X+(box.W-len([]rune(l)))/2, box.Y+1+i, l, color)
	}
}
