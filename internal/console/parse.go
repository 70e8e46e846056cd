// Package console is a line-oriented text host for Nebula Forge.
//
// Parse turns a typed line into a Command, forgiving typos within a small
// edit distance. Run drives a session from a reader and writes an ASCII
// board after every command.
package console

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/nebula-forge/internal/games/nebula"
)

// Verb is what a command does.
type Verb int

const (
	VerbNone Verb = iota
	VerbMove
	VerbCraft
	VerbUse
	VerbReset
	VerbLook
	VerbHelp
	VerbQuit
)

var verbNames = map[string]Verb{
	"move":  VerbMove,
	"craft": VerbCraft,
	"use":   VerbUse,
	"reset": VerbReset,
	"look":  VerbLook,
	"help":  VerbHelp,
	"quit":  VerbQuit,
}

// String returns the canonical verb.
func (v Verb) String() string {
	for name, verb := range verbNames {
		if verb == v {
			return name
		}
	}
	return "none"
}

var verbs = newVocabulary(map[string][]string{
	"move":  {"go", "walk", "m"},
	"craft": {"make", "build", "c"},
	"use":   {"fire", "activate"},
	"reset": {"restart", "new"},
	"look":  {"l", "board", "map", "status"},
	"help":  {"h", "?", "commands"},
	"quit":  {"q", "exit", "bye"},
})

var directions = newVocabulary(map[string][]string{
	"up":    {"u", "n", "north"},
	"down":  {"d", "s", "south"},
	"left":  {"w", "west"},
	"right": {"r", "e", "east"},
})

var directionSteps = map[string][2]int{
	"up":    {0, -1},
	"down":  {0, 1},
	"left":  {-1, 0},
	"right": {1, 0},
}

var tools = newVocabulary(map[string][]string{
	"shield": {"sh", "s"},
	"pulse":  {"p", "bomb"},
})

// ErrEmpty is returned for a blank line.
var ErrEmpty = errors.New("console: empty command")

// ParseError reports input that could not be understood.
type ParseError struct {
	Input      string
	Reason     string
	Suggestion string
}

func (e *ParseError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s %q; did you mean %q?", e.Reason, e.Input, e.Suggestion)
	}
	return fmt.Sprintf("%s %q", e.Reason, e.Input)
}

// Command is one parsed line.
type Command struct {
	Verb   Verb
	DX, DY int
	Tool   nebula.ToolKind
}

// Apply runs a gameplay command against st. Look, help and quit do nothing.
func (c Command) Apply(st *nebula.State) {
	switch c.Verb {
	case VerbMove:
		st.Move(c.DX, c.DY)
	case VerbCraft:
		st.CraftTool(c.Tool)
	case VerbUse:
		st.UseTool(c.Tool)
	case VerbReset:
		st.Reset()
	}
}

// Mutates reports whether the command runs against the game.
func (c Command) Mutates() bool {
	switch c.Verb {
	case VerbMove, VerbCraft, VerbUse, VerbReset:
		return true
	}
	return false
}

// Parse interprets one line of input.
func Parse(line string) (Command, error) {
	tokens := strings.Fields(strings.ToLower(line))
	if len(tokens) == 0 {
		return Command{}, ErrEmpty
	}
	head, args := tokens[0], tokens[1:]

	// A bare direction is a move. Only exact spellings count here so that
	// typos of verbs are not read as directions.
	if dir, kind := directions.lookup(head); kind == matchExact {
		if len(args) > 0 {
			return Command{}, &ParseError{Input: line, Reason: "unexpected arguments in"}
		}
		return moveTo(dir), nil
	}

	word, kind := verbs.lookup(head)
	if kind == matchNone {
		return Command{}, &ParseError{Input: head, Reason: "unknown command", Suggestion: verbs.suggest(head)}
	}
	verb := verbNames[word]

	switch verb {
	case VerbMove:
		if len(args) != 1 {
			return Command{}, &ParseError{Input: line, Reason: "move takes one direction:"}
		}
		dir, kind := directions.lookup(args[0])
		if kind == matchNone {
			return Command{}, &ParseError{Input: args[0], Reason: "unknown direction", Suggestion: directions.suggest(args[0])}
		}
		return moveTo(dir), nil

	case VerbCraft, VerbUse:
		if len(args) != 1 {
			return Command{}, &ParseError{Input: line, Reason: word + " takes one tool:"}
		}
		name, kind := tools.lookup(args[0])
		if kind == matchNone {
			return Command{}, &ParseError{Input: args[0], Reason: "unknown tool", Suggestion: tools.suggest(args[0])}
		}
		tool, err := nebula.ParseTool(name)
		if err != nil {
			return Command{}, err
		}
		return Command{Verb: verb, Tool: tool}, nil

	default:
		if len(args) > 0 {
			return Command{}, &ParseError{Input: line, Reason: "unexpected arguments in"}
		}
		return Command{Verb: verb}, nil
	}
}

func moveTo(dir string) Command {
	step := directionSteps[dir]
	return Command{Verb: VerbMove, DX: step[0], DY: step[1]}
}

// ParseDirection converts a direction word ("up", "n", "east"...) to a step.
func ParseDirection(word string) (dx, dy int, err error) {
	token := strings.ToLower(strings.TrimSpace(word))
	dir, kind := directions.lookup(token)
	if kind == matchNone {
		return 0, 0, &ParseError{Input: word, Reason: "unknown direction", Suggestion: directions.suggest(token)}
	}
	step := directionSteps[dir]
	return step[0], step[1], nil
}
