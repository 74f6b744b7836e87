package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"trivia-score-service/internal/app"
	"trivia-score-service/internal/domain"
)

// Handler exposes the scoring service over JSON HTTP.
type Handler struct {
	service *app.ScoreService
}

func NewHandler(service *app.ScoreService) *Handler {
	return &Handler{service: service}
}

// Register mounts all routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/game/submit", h.Submit)
	mux.HandleFunc("GET /api/game/random", h.RandomQuestion)
	mux.HandleFunc("GET /api/game/my_tier/{user_id}", h.MyTier)
	mux.HandleFunc("GET /api/game/history/{user_id}", h.History)
	mux.HandleFunc("GET /api/leaderboard", h.Leaderboard)
	mux.HandleFunc("GET /debug/tiers", h.DebugTiers)
}

type submitRequest struct {
	UserID         int64 `json:"user_id"`
	QuestionID     int64 `json:"question_id"`
	SelectedID     int64 `json:"selected_id"`
	CorrectID      int64 `json:"correct_id"`
	ScoreEarned    int   `json:"score_earned"`
	ResponseTimeMS int   `json:"response_time_ms"`
}

type submitResponse struct {
	Message string `json:"message"`
	Earned  int    `json:"earned"`
	Correct bool   `json:"correct"`
	Tier    string `json:"tier"`
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid submit payload", http.StatusBadRequest)
		return
	}

	result, err := h.service.Submit(r.Context(), domain.Submission{
		UserID:         req.UserID,
		QuestionID:     req.QuestionID,
		SelectedID:     req.SelectedID,
		CorrectID:      req.CorrectID,
		ScoreEarned:    req.ScoreEarned,
		ResponseTimeMS: req.ResponseTimeMS,
	})
	if err != nil {
		log.Printf("submit failed: %v", err)
		http.Error(w, "submit failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, submitResponse{
		Message: "Answer submitted.",
		Earned:  result.Earned,
		Correct: result.Correct,
		Tier:    result.Tier,
	})
}

func (h *Handler) RandomQuestion(w http.ResponseWriter, r *http.Request) {
	question, err := h.service.RandomQuestion(r.Context())
	if errors.Is(err, domain.ErrNoQuestions) {
		// Kept as a 200-status error payload for compatibility with
		// existing clients of the original API.
		writeJSON(w, map[string]string{"Error": "No questions found"})
		return
	}
	if err != nil {
		log.Printf("random question failed: %v", err)
		http.Error(w, "question bank unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, question)
}

type tierResponse struct {
	Tier *string `json:"tier"`
}

func (h *Handler) MyTier(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	tier, found, err := h.service.UserTier(r.Context(), userID)
	if err != nil {
		log.Printf("tier lookup failed: %v", err)
		http.Error(w, "tier lookup failed", http.StatusInternalServerError)
		return
	}

	resp := tierResponse{}
	if found {
		resp.Tier = &tier
	}
	writeJSON(w, resp)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	records, err := h.service.History(r.Context(), userID)
	if err != nil {
		log.Printf("history read failed: %v", err)
		http.Error(w, "history read failed", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []domain.ResponseRecord{}
	}
	writeJSON(w, records)
}

func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	lb, err := h.service.Leaderboard(r.Context(), limit)
	if err != nil {
		log.Printf("leaderboard read failed: %v", err)
		http.Error(w, "leaderboard read failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, lb.Rows)
}

func (h *Handler) DebugTiers(w http.ResponseWriter, r *http.Request) {
	tiers, err := h.service.Tiers(r.Context())
	if err != nil {
		log.Printf("tier recompute failed: %v", err)
		http.Error(w, "tier recompute failed", http.StatusInternalServerError)
		return
	}

	// JSON object keys must be strings.
	out := make(map[string]string, len(tiers))
	for userID, tier := range tiers {
		out[strconv.FormatInt(userID, 10)] = tier
	}
	writeJSON(w, out)
}

func pathUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := strconv.ParseInt(r.PathValue("user_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return 0, false
	}
	return userID, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
