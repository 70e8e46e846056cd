package session

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/nebula-forge/internal/games/nebula"
	"github.com/vovakirdan/nebula-forge/internal/storage"
)

type memSaver struct {
	mu     sync.Mutex
	scores []storage.Score
}

func (m *memSaver) SaveScore(_ context.Context, s storage.Score) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = append(m.scores, s)
	return nil
}

func (m *memSaver) saved() []storage.Score {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]storage.Score(nil), m.scores...)
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// allHazards makes every populated item a hazard so the game ends quickly.
func allHazards() nebula.Rules {
	r := nebula.DefaultRules()
	r.SpawnBatch = 99
	r.ResourceChance = 0
	return r
}

func TestSessionRecordsScoreOncePerRun(t *testing.T) {
	ctx := context.Background()
	saver := &memSaver{}
	s := New("s1", "ada", 1, allHazards(), saver, quietLogger())

	// Every neighbour is a hazard, so the first move ends the run.
	res := s.Move(ctx, 1, 0)
	if !res.Snapshot.GameOver {
		t.Fatal("expected game over on a board full of hazards")
	}
	if res.OK {
		t.Error("walking into a hazard should not report ok")
	}

	s.Move(ctx, 0, 1)
	s.Craft(ctx, nebula.Shield)

	got := saver.saved()
	if len(got) != 1 {
		t.Fatalf("saved %d scores, want 1", len(got))
	}
	if got[0].GameID != nebula.ID || got[0].Player != "ada" || got[0].RunID == "" {
		t.Errorf("unexpected score row: %+v", got[0])
	}

	s.Reset(ctx)
	s.Move(ctx, -1, 0)

	got = saver.saved()
	if len(got) != 2 {
		t.Fatalf("saved %d scores after a second run, want 2", len(got))
	}
	if got[0].RunID == got[1].RunID {
		t.Error("each run should get its own run id")
	}
}

func TestSessionResetInsideDoStartsNewRun(t *testing.T) {
	ctx := context.Background()
	saver := &memSaver{}
	s := New("s1", "ada", 1, allHazards(), saver, quietLogger())

	s.Do(ctx, func(st *nebula.State) { st.Move(1, 0) })
	s.Do(ctx, func(st *nebula.State) { st.Reset() })
	s.Do(ctx, func(st *nebula.State) { st.Move(-1, 0) })

	got := saver.saved()
	if len(got) != 2 {
		t.Fatalf("saved %d scores across two runs, want 2", len(got))
	}
	if got[0].RunID == got[1].RunID {
		t.Error("a reset should start a new run id")
	}
}

func TestSessionResult(t *testing.T) {
	ctx := context.Background()
	s := New("s1", "", 3, nebula.DefaultRules(), nil, quietLogger())

	res := s.Craft(ctx, nebula.Shield)
	if res.OK || res.Outcome != nebula.OutcomeRejected {
		t.Errorf("craft without resources = %+v", res.Outcome)
	}

	res = s.Reset(ctx)
	if !res.OK {
		t.Error("reset should report ok")
	}
	if res.Snapshot.Player != nebula.Center() {
		t.Errorf("player after reset = %v", res.Snapshot.Player)
	}
}

func TestSessionConcurrentCommands(t *testing.T) {
	ctx := context.Background()
	s := New("s1", "", 5, nebula.DefaultRules(), nil, quietLogger())

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 50 {
				switch (i + j) % 4 {
				case 0:
					s.Move(ctx, 1, 0)
				case 1:
					s.Move(ctx, -1, 0)
				case 2:
					s.Use(ctx, nebula.Pulse)
				default:
					_ = s.Snapshot()
				}
			}
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	if snap.Grid.Count(nebula.CellPlayer) != 1 {
		t.Error("concurrent commands corrupted the board")
	}
}

func TestSessionSubscribe(t *testing.T) {
	ctx := context.Background()
	s := New("s1", "", 5, nebula.DefaultRules(), nil, quietLogger())

	ch, cancel := s.Subscribe(1)
	s.Craft(ctx, nebula.Pulse)
	s.Reset(ctx)

	select {
	case snap := <-ch:
		if snap.Last.Command != nebula.CommandReset {
			t.Errorf("expected the latest snapshot, got %v", snap.Last.Command)
		}
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}

	cancel()
	if s.Subscribers() != 0 {
		t.Error("cancel should unsubscribe")
	}
	s.Reset(ctx)
	select {
	case <-ch:
		t.Error("no snapshots after cancel")
	default:
	}
}

func TestSessionPublishesInCommandOrder(t *testing.T) {
	ctx := context.Background()
	rules := nebula.DefaultRules()
	rules.SpawnBatch = 0
	rules.RefillBelow = 0
	s := New("s1", "", 5, rules, nil, quietLogger())

	const workers, perWorker = 4, 25
	ch, cancel := s.Subscribe(workers * perWorker)
	defer cancel()

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dx := 1
			if i%2 == 1 {
				dx = -1
			}
			for range perWorker {
				s.Move(ctx, dx, 0)
				s.Move(ctx, -dx, 0)
			}
		}()
	}
	wg.Wait()

	last := -1
	for {
		select {
		case snap := <-ch:
			if snap.Moves < last {
				t.Fatalf("snapshot with %d moves delivered after %d", snap.Moves, last)
			}
			last = snap.Moves
			continue
		default:
		}
		break
	}
	if want := s.Snapshot().Moves; last != want {
		t.Errorf("last delivered snapshot has %d moves, want %d", last, want)
	}
}

func TestManagerLifecycle(t *testing.T) {
	m := NewManager(nebula.DefaultRules(), nil, quietLogger())

	a := m.Create("ada", 1)
	b := m.Create("bob", 0)
	if a.ID() == b.ID() {
		t.Fatal("session ids must be unique")
	}
	if m.Count() != 2 {
		t.Errorf("count = %d, want 2", m.Count())
	}

	got, ok := m.Get(a.ID())
	if !ok || got != a {
		t.Error("Get should return the created session")
	}

	if !m.Remove(a.ID()) {
		t.Error("Remove should report an existing session")
	}
	select {
	case <-a.Done():
	default:
		t.Error("Done should be closed after Remove")
	}
	if m.Remove(a.ID()) {
		t.Error("second Remove should report false")
	}
	if _, ok := m.Get(a.ID()); ok {
		t.Error("removed session is still reachable")
	}
	if ids := m.IDs(); len(ids) != 1 || ids[0] != b.ID() {
		t.Errorf("IDs = %v", ids)
	}
}

func TestManagerReap(t *testing.T) {
	m := NewManager(nebula.DefaultRules(), nil, quietLogger())
	old := m.Create("old", 1)
	old.mu.Lock()
	old.active = time.Now().Add(-time.Hour)
	old.mu.Unlock()
	fresh := m.Create("fresh", 2)

	if n := m.Reap(time.Now().Add(-time.Minute)); n != 1 {
		t.Errorf("reaped %d, want 1", n)
	}
	if _, ok := m.Get(old.ID()); ok {
		t.Error("idle session should be reaped")
	}
	if _, ok := m.Get(fresh.ID()); !ok {
		t.Error("active session should survive")
	}
}
