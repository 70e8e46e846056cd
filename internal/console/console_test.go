package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/nebula-forge/internal/games/nebula"
	"github.com/vovakirdan/nebula-forge/internal/session"
	"github.com/vovakirdan/nebula-forge/internal/storage"
)

func newTestSession() *session.Session {
	return session.New("console", "tester", 7, nebula.DefaultRules(), nil, log.New(io.Discard))
}

func TestRunScript(t *testing.T) {
	sess := newTestSession()
	in := strings.NewReader("help\ncraft shield\nlook\ndance\nquit\nup\n")
	var out bytes.Buffer

	if err := Run(context.Background(), in, &out, sess); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	text := out.String()
	for _, want := range []string{"Commands:", "Not enough resources for a Shield.", "unknown command", "Bye."} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if sess.Snapshot().Moves != 0 {
		t.Error("input after quit should not run")
	}
}

func TestRunStopsAtEOF(t *testing.T) {
	sess := newTestSession()
	var out bytes.Buffer

	if err := Run(context.Background(), strings.NewReader("reset\n"), &out, sess); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "New nebula charted.") {
		t.Error("reset output missing")
	}
}

func TestExecMove(t *testing.T) {
	sess := newTestSession()
	var out bytes.Buffer

	before := sess.Snapshot()
	Exec(context.Background(), &out, sess, "up")
	after := sess.Snapshot()

	if after.Last.Command != nebula.CommandMove {
		t.Fatalf("last command = %v, want move", after.Last.Command)
	}
	if after.Last.Outcome.Moved() && after.Player == before.Player {
		t.Error("a successful move should change the position")
	}
}

type countingSaver struct {
	mu   sync.Mutex
	runs []string
}

func (c *countingSaver) SaveScore(_ context.Context, s storage.Score) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runs = append(c.runs, s.RunID)
	return nil
}

func TestExecResetStartsNewRun(t *testing.T) {
	rules := nebula.DefaultRules()
	rules.SpawnBatch = 99
	rules.ResourceChance = 0
	saver := &countingSaver{}
	sess := session.New("console", "tester", 1, rules, saver, log.New(io.Discard))
	var out bytes.Buffer

	for _, line := range []string{"right", "reset", "left"} {
		Exec(context.Background(), &out, sess, line)
	}

	if !sess.Snapshot().GameOver {
		t.Fatal("expected the second run to end on a hazard")
	}
	if len(saver.runs) != 2 {
		t.Fatalf("saved %d scores across two runs, want 2", len(saver.runs))
	}
	if saver.runs[0] == saver.runs[1] {
		t.Error("each run should be saved under its own run id")
	}
}

func TestFormatBoard(t *testing.T) {
	s := nebula.NewState(nil, nebula.Rules{}).Snapshot()
	text := FormatBoard(s)

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) < nebula.GridSize+1 {
		t.Fatalf("board has %d lines", len(lines))
	}
	if !strings.Contains(text, "@") {
		t.Error("board should show the player")
	}
	if !strings.Contains(text, "Quark 0") || !strings.Contains(text, "Pulse 0") {
		t.Error("board should show the inventory")
	}
}
