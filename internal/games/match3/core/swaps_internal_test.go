package core

import "testing"

func TestWithSwappedRevertsOnPanic(t *testing.T) {
	b, err := ParseBoard("RE")
	if err != nil {
		t.Fatal(err)
	}

	func() {
		defer func() { _ = recover() }()
		withSwapped(b, C(0, 0), C(1, 0), func() int {
			if b.TypeAt(0, 0) != TypeEmerald {
				t.Error("cells should be exchanged inside fn")
			}
			panic("boom")
		})
	}()

	if got := b.String(); got != "RE" {
		t.Errorf("board after panic = %q, expected %q", got, "RE")
	}
	if tok := b.TokenAt(0, 0); tok.Col != 0 || tok.Row != 0 {
		t.Errorf("token coordinates not restored: %v", tok)
	}
}
