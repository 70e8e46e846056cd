// Package session hosts Nebula Forge games for servers with many players.
//
// A Session serializes every command on one State behind a mutex, records
// the score once per run and fans snapshots out to subscribers. A Manager
// tracks live sessions by ID.
package session

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/nebula-forge/internal/games/nebula"
	"github.com/vovakirdan/nebula-forge/internal/storage"
)

// ID uniquely identifies a session.
type ID string

// ScoreSaver is the part of storage.Store a session needs.
type ScoreSaver interface {
	SaveScore(ctx context.Context, s storage.Score) error
}

// Result is the outcome of one command together with the game after it.
type Result struct {
	OK       bool
	Outcome  nebula.Outcome
	Snapshot nebula.Snapshot
}

// Session owns one game.
type Session struct {
	id      ID
	player  string
	created time.Time

	mu       sync.Mutex
	state    *nebula.State
	runID    string
	recorded bool
	active   time.Time

	saver  ScoreSaver
	logger *log.Logger

	subMu  sync.Mutex
	subs   map[int]*subscriber
	nextID int

	closed    chan struct{}
	closeOnce sync.Once
}

// New creates a session. saver may be nil, which disables score recording.
func New(id ID, player string, seed int64, rules nebula.Rules, saver ScoreSaver, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	return &Session{
		id:      id,
		player:  player,
		created: time.Now(),
		active:  time.Now(),
		state:   nebula.NewState(rand.New(rand.NewSource(seed)), rules),
		runID:   uuid.NewString(),
		saver:   saver,
		logger:  logger.With("session", string(id)),
		subs:    make(map[int]*subscriber),
		closed:  make(chan struct{}),
	}
}

// ID returns the session identifier.
func (s *Session) ID() ID {
	return s.id
}

// Player returns the player name recorded with scores.
func (s *Session) Player() string {
	return s.player
}

// Created returns when the session started.
func (s *Session) Created() time.Time {
	return s.created
}

// LastActive returns when the last command ran.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Do runs fn on the game under the session lock, records a finished run and
// notifies subscribers. A reset made by fn starts a new run whatever path
// issued it.
func (s *Session) Do(ctx context.Context, fn func(*nebula.State)) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.state)
	s.active = time.Now()
	snap := s.state.Snapshot()
	if snap.Last.Command == nebula.CommandReset {
		s.runID = uuid.NewString()
		s.recorded = false
	}
	if snap.GameOver && !s.recorded {
		s.recorded = true
		s.record(ctx, snap)
	}

	// Publishing under mu keeps subscribers in command order.
	s.publish(snap)
	return Result{OK: snap.Last.OK(), Outcome: snap.Last.Outcome, Snapshot: snap}
}

// Move steps the player.
func (s *Session) Move(ctx context.Context, dx, dy int) Result {
	return s.Do(ctx, func(st *nebula.State) { st.Move(dx, dy) })
}

// Craft crafts one tool.
func (s *Session) Craft(ctx context.Context, kind nebula.ToolKind) Result {
	return s.Do(ctx, func(st *nebula.State) { st.CraftTool(kind) })
}

// Use spends one tool.
func (s *Session) Use(ctx context.Context, kind nebula.ToolKind) Result {
	return s.Do(ctx, func(st *nebula.State) { st.UseTool(kind) })
}

// Reset starts a new run.
func (s *Session) Reset(ctx context.Context) Result {
	return s.Do(ctx, func(st *nebula.State) { st.Reset() })
}

// Snapshot returns the current game without changing it.
func (s *Session) Snapshot() nebula.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Snapshot()
}

// record saves a finished run. Called with s.mu held.
func (s *Session) record(ctx context.Context, snap nebula.Snapshot) {
	s.logger.Info("game over", "score", snap.Score, "moves", snap.Moves)
	if s.saver == nil {
		return
	}

	err := s.saver.SaveScore(ctx, storage.Score{
		RunID:          s.runID,
		GameID:         nebula.ID,
		Player:         s.player,
		Score:          snap.Score,
		Moves:          snap.Moves,
		Crafted:        snap.Crafted,
		HazardsCleared: snap.HazardsCleared,
	})
	if err != nil {
		s.logger.Error("failed to save score", "err", err)
	}
}
