package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/nebula-forge/internal/console"
	"github.com/vovakirdan/nebula-forge/internal/games/nebula"
	"github.com/vovakirdan/nebula-forge/internal/session"
	"github.com/vovakirdan/nebula-forge/internal/storage"
)

const maxBodyBytes = 4 << 10

type createRequest struct {
	Player string `json:"player"`
	Seed   int64  `json:"seed"`
}

type moveRequest struct {
	DX        *int   `json:"dx"`
	DY        *int   `json:"dy"`
	Direction string `json:"direction"`
}

type toolRequest struct {
	Tool string `json:"tool"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Count(),
		"scores":   s.store != nil,
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeBody(r, &req, true); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	player := strings.TrimSpace(req.Player)
	if player == "" {
		player = "web"
	}
	sess := s.sessions.Create(player, req.Seed)
	respondJSON(w, http.StatusCreated, SessionResponse{
		ID:       string(sess.ID()),
		Player:   sess.Player(),
		Snapshot: newSnapshotDTO(sess.Snapshot()),
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, SessionResponse{
		ID:       string(sess.ID()),
		Player:   sess.Player(),
		Snapshot: newSnapshotDTO(sess.Snapshot()),
	})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := session.ID(chi.URLParam(r, "id"))
	if !s.sessions.Remove(id) {
		respondError(w, http.StatusNotFound, "Session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req moveRequest
	if err := decodeBody(r, &req, false); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var dx, dy int
	switch {
	case req.Direction != "":
		var err error
		dx, dy, err = console.ParseDirection(req.Direction)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	case req.DX != nil && req.DY != nil:
		dx, dy = *req.DX, *req.DY
	default:
		respondError(w, http.StatusBadRequest, "Provide dx and dy, or a direction")
		return
	}

	respondJSON(w, http.StatusOK, newCommandResponse(sess.Move(r.Context(), dx, dy)))
}

func (s *Server) handleCraft(w http.ResponseWriter, r *http.Request) {
	sess, kind, ok := s.toolCommand(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, newCommandResponse(sess.Craft(r.Context(), kind)))
}

func (s *Server) handleUse(w http.ResponseWriter, r *http.Request) {
	sess, kind, ok := s.toolCommand(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, newCommandResponse(sess.Use(r.Context(), kind)))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, newCommandResponse(sess.Reset(r.Context())))
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	limit := storage.DefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	if s.store == nil {
		respondJSON(w, http.StatusOK, ScoresResponse{Scores: []ScoreDTO{}})
		return
	}

	scores, err := s.store.TopScores(r.Context(), nebula.ID, limit)
	if err != nil {
		s.logger.Error("load scores", "err", err)
		respondError(w, http.StatusInternalServerError, "Failed to load scores")
		return
	}
	stats, err := s.store.Stats(r.Context(), nebula.ID)
	if err != nil {
		s.logger.Error("load stats", "err", err)
		respondError(w, http.StatusInternalServerError, "Failed to load scores")
		return
	}

	respondJSON(w, http.StatusOK, ScoresResponse{
		Enabled: true,
		Scores:  newScoreDTOs(scores),
		Stats:   newStatsDTO(stats),
	})
}

// lookup finds the session named in the URL, writing 404 when missing.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := s.sessions.Get(session.ID(chi.URLParam(r, "id")))
	if !ok {
		respondError(w, http.StatusNotFound, "Session not found")
		return nil, false
	}
	return sess, true
}

func (s *Server) toolCommand(w http.ResponseWriter, r *http.Request) (*session.Session, nebula.ToolKind, bool) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return nil, 0, false
	}

	var req toolRequest
	if err := decodeBody(r, &req, false); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return nil, 0, false
	}
	kind, err := nebula.ParseTool(req.Tool)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Unknown tool")
		return nil, 0, false
	}
	return sess, kind, true
}

// decodeBody reads a JSON body into v. An empty body is accepted only when
// optional is set.
func decodeBody(r *http.Request, v any, optional bool) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	err := dec.Decode(v)
	if errors.Is(err, io.EOF) && optional {
		return nil
	}
	return err
}
