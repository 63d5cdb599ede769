package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-match3/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawText(0, 0, "Score: 120")
	s.DrawTextColored(2, 1, "◆◆◆", core.ColorRed)
	s.SetColored(11, 2, '●', core.ColorBlue)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "Score: 120") {
		t.Errorf("line 0 = %q, expected score text", lines[0])
	}
	if !strings.Contains(lines[1], "◆◆◆") {
		t.Errorf("line 1 = %q, expected colored run", lines[1])
	}
	if !strings.Contains(lines[2], "●") {
		t.Errorf("line 2 = %q, expected last cell", lines[2])
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	got := styleFor(core.Color(200)).Render("x")
	want := colorStyles[core.ColorDefault].Render("x")
	if got != want {
		t.Errorf("styleFor(unknown) rendered %q, expected %q", got, want)
	}
}
