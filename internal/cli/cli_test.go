package cli

import (
	"strings"
	"testing"

	"github.com/bkazemi/gohilo/internal/hilo"
	"github.com/bkazemi/gohilo/internal/round"

	"github.com/rivo/uniseg"
)

func TestCardFace2String(t *testing.T) {
	queen := hilo.MustCard(hilo.SuitHeart, hilo.RankQueen)
	ten := hilo.MustCard(hilo.SuitSpade, hilo.RankTen)

	tests := []struct {
		name     string
		face     round.CardFace
		contains []string
		excludes []string
	}{
		{"face down", round.CardFace{Card: queen}, []string{"?"}, []string{"Q", "♥", "[red]"}},
		{"empty", round.CardFace{FaceUp: true}, []string{"?"}, nil},
		{"red", round.CardFace{Card: queen, FaceUp: true}, []string{"[red]", "Q", "♥"}, []string{"?"}},
		{"dark", round.CardFace{Card: ten, FaceUp: true}, []string{"[white]", "10", "♠"}, []string{"[red]"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := cardFace2String(tt.face)

			for _, want := range tt.contains {
				if !strings.Contains(s, want) {
					t.Errorf("%q missing %q", s, want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(s, unwanted) {
					t.Errorf("%q has %q", s, unwanted)
				}
			}

			// every row of the box is the same width once color tags are gone
			lines := strings.Split(strings.Trim(s, "\n"), "\n")
			for _, line := range lines {
				line = stripTags(line)
				if w := uniseg.StringWidth(line); w != 9 {
					t.Errorf("row %q is %d wide, want 9", line, w)
				}
			}
		})
	}
}

func stripTags(s string) string {
	for _, tag := range []string{"[red]", "[white]", "[-]"} {
		s = strings.ReplaceAll(s, tag, "")
	}
	return s
}
