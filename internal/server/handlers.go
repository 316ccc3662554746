package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/claude/coachplan/internal/coach"
	"github.com/claude/coachplan/internal/feedback"
	"github.com/claude/coachplan/internal/pdfexport"
	"github.com/claude/coachplan/internal/plan"
	"github.com/claude/coachplan/internal/storage"
)

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	var req plan.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	sessionKey := SessionKeyFromContext(r.Context())

	// The stored history is the default prior load; an explicit value in the
	// request (e.g. training done outside the app) overrides it.
	if req.LastWeekLoad <= 0 {
		prior, err := s.db.LatestTotalLoad(r.Context(), sessionKey)
		if err != nil {
			s.log.Error("prior load lookup failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		req.LastWeekLoad = prior
	}

	p := s.composer.Compose(r.Context(), req)

	if err := s.db.SavePlan(r.Context(), sessionKey, p); err != nil {
		s.log.Error("plan save failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleCurrentPlan(w http.ResponseWriter, r *http.Request) {
	p, ok := s.currentPlan(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePlanHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.db.PlanHistory(r.Context(), SessionKeyFromContext(r.Context()))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if history == nil {
		history = []plan.WeeklyPlan{}
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handlePlanPDF(w http.ResponseWriter, r *http.Request) {
	p, ok := s.currentPlan(w, r)
	if !ok {
		return
	}

	coachText := coach.FallbackMessage
	if s.coach != nil {
		coachText = s.coach.Motivate(r.Context(), p)
	}

	pdf, err := pdfexport.Render(p, coachText)
	if err != nil {
		s.log.Error("pdf render failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="training_plan.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

func (s *Server) handleCoachMessage(w http.ResponseWriter, r *http.Request) {
	p, ok := s.currentPlan(w, r)
	if !ok {
		return
	}

	message := coach.FallbackMessage
	if s.coach != nil {
		message = s.coach.Motivate(r.Context(), p)
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	// Questions work without a plan; the answer just loses plan context.
	p, err := s.db.CurrentPlan(r.Context(), SessionKeyFromContext(r.Context()))
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	answer := coach.CannedAnswer(req.Question)
	if s.coach != nil {
		answer = s.coach.Answer(r.Context(), req.Question, p)
	}
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func (s *Server) handleVoice(w http.ResponseWriter, r *http.Request) {
	if s.voice == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "voice synthesis not configured"})
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	text := req.Text
	if text == "" {
		p, ok := s.currentPlan(w, r)
		if !ok {
			return
		}
		text = coach.FallbackMessage
		if s.coach != nil {
			text = s.coach.Motivate(r.Context(), p)
		}
	}

	audio, err := s.voice.Synthesize(r.Context(), text)
	if err != nil {
		s.log.Warn("voice synthesis failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "voice synthesis failed"})
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	w.Write(audio)
}

func (s *Server) handleReflection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Entries []feedback.Entry `json:"entries"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	p, ok := s.currentPlan(w, r)
	if !ok {
		return
	}

	entries := alignEntries(p, req.Entries)
	if err := s.db.SaveReflections(r.Context(), p.ID, entries); err != nil {
		s.log.Error("reflection save failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, feedback.Summarize(entries))
}

func (s *Server) handleGetReflection(w http.ResponseWriter, r *http.Request) {
	p, ok := s.currentPlan(w, r)
	if !ok {
		return
	}

	stored, err := s.db.QueryReflections(r.Context(), p.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	entries := alignEntries(p, stored)
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"summary": feedback.Summarize(entries),
	})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.db.DeleteSession(r.Context(), SessionKeyFromContext(r.Context())); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "session cleared"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if info, ok := r.Context().Value(userInfoKey).(UserInfo); ok {
		writeJSON(w, http.StatusOK, info)
		return
	}
	writeJSON(w, http.StatusOK, UserInfo{Login: "local", DisplayName: "Local Dev User"})
}

// currentPlan loads the session's current plan, writing a 404 when the
// session has none yet.
func (s *Server) currentPlan(w http.ResponseWriter, r *http.Request) (*plan.WeeklyPlan, bool) {
	p, err := s.db.CurrentPlan(r.Context(), SessionKeyFromContext(r.Context()))
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no plan generated yet"})
		return nil, false
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return nil, false
	}
	return p, true
}

// alignEntries maps submitted entries onto the plan's sessions in order.
// Sessions without a submitted entry count as not completed, so adherence is
// always computed over the full week.
func alignEntries(p *plan.WeeklyPlan, submitted []feedback.Entry) []feedback.Entry {
	byID := make(map[string]feedback.Entry, len(submitted))
	for _, e := range submitted {
		byID[e.SessionID] = e
	}

	entries := make([]feedback.Entry, 0, len(p.Sessions))
	for _, s := range p.Sessions {
		if e, ok := byID[s.ID]; ok {
			entries = append(entries, e)
			continue
		}
		entries = append(entries, feedback.Entry{SessionID: s.ID})
	}
	return entries
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
