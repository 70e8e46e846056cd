package console

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/nebula-forge/internal/games/nebula"
)

func TestParseCommands(t *testing.T) {
	tests := []struct {
		in   string
		want Command
	}{
		{"up", Command{Verb: VerbMove, DY: -1}},
		{"  DOWN ", Command{Verb: VerbMove, DY: 1}},
		{"w", Command{Verb: VerbMove, DX: -1}},
		{"east", Command{Verb: VerbMove, DX: 1}},
		{"n", Command{Verb: VerbMove, DY: -1}},
		{"move left", Command{Verb: VerbMove, DX: -1}},
		{"go s", Command{Verb: VerbMove, DY: 1}},
		{"craft shield", Command{Verb: VerbCraft, Tool: nebula.Shield}},
		{"make Pulse", Command{Verb: VerbCraft, Tool: nebula.Pulse}},
		{"use pulse", Command{Verb: VerbUse, Tool: nebula.Pulse}},
		{"use shield", Command{Verb: VerbUse, Tool: nebula.Shield}},
		{"reset", Command{Verb: VerbReset}},
		{"look", Command{Verb: VerbLook}},
		{"l", Command{Verb: VerbLook}},
		{"?", Command{Verb: VerbHelp}},
		{"q", Command{Verb: VerbQuit}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFuzzy(t *testing.T) {
	tests := []struct {
		in   string
		want Command
	}{
		{"crfat shield", Command{Verb: VerbCraft, Tool: nebula.Shield}},
		{"craft sheild", Command{Verb: VerbCraft, Tool: nebula.Shield}},
		{"cra pul", Command{Verb: VerbCraft, Tool: nebula.Pulse}},
		{"moove rigth", Command{Verb: VerbMove, DX: 1}},
		{"rest", Command{Verb: VerbReset}},
		{"helpp", Command{Verb: VerbHelp}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		in      string
		suggest string
	}{
		{"dance", ""},
		{"craft laser", ""},
		{"move sideways", ""},
		{"craft", ""},
		{"up up", ""},
		{"zzzzzzzz", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := Parse(tt.in)
			if err == nil {
				t.Fatalf("Parse(%q) should fail", tt.in)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Errorf("Parse(%q) error %T, want *ParseError", tt.in, err)
			}
		})
	}
}

func TestParseErrorSuggestion(t *testing.T) {
	_, err := Parse("crumble")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Suggestion == "" {
		t.Error("expected a suggestion")
	}
	if !strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error text %q lacks a suggestion", err.Error())
	}
}

func TestParseEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "\t"} {
		if _, err := Parse(in); !errors.Is(err, ErrEmpty) {
			t.Errorf("Parse(%q) = %v, want ErrEmpty", in, err)
		}
	}
}

func TestCommandMutates(t *testing.T) {
	tests := []struct {
		verb Verb
		want bool
	}{
		{VerbMove, true},
		{VerbCraft, true},
		{VerbUse, true},
		{VerbReset, true},
		{VerbLook, false},
		{VerbHelp, false},
		{VerbQuit, false},
	}
	for _, tt := range tests {
		if got := (Command{Verb: tt.verb}).Mutates(); got != tt.want {
			t.Errorf("%v.Mutates() = %v, want %v", tt.verb, got, tt.want)
		}
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in     string
		dx, dy int
		ok     bool
	}{
		{"up", 0, -1, true},
		{"South", 0, 1, true},
		{"w", -1, 0, true},
		{" right ", 1, 0, true},
		{"rigt", 1, 0, true},
		{"sideways", 0, 0, false},
	}
	for _, tt := range tests {
		dx, dy, err := ParseDirection(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseDirection(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
			continue
		}
		if tt.ok && (dx != tt.dx || dy != tt.dy) {
			t.Errorf("ParseDirection(%q) = (%d,%d), want (%d,%d)", tt.in, dx, dy, tt.dx, tt.dy)
		}
	}
}
