package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-practice/internal/domain"
	"github.com/heartmarshall/myenglish-practice/internal/service/practice"
	"github.com/heartmarshall/myenglish-practice/pkg/ctxutil"
)

// practiceService defines the minimal interface needed by PracticeHandler.
type practiceService interface {
	GenerateDialogue(ctx context.Context, input practice.GenerateDialogueInput) ([]domain.DialogueTurn, error)
	ParseDialogue(ctx context.Context, input practice.ParseInput) ([]domain.DialogueTurn, error)
	FillTranslations(ctx context.Context, turns []domain.DialogueTurn) ([]domain.DialogueTurn, error)
	GenerateReading(ctx context.Context, input practice.GenerateReadingInput) (practice.ReadingResult, error)
	ParsePassage(ctx context.Context, input practice.ParseInput) (practice.ReadingResult, error)
	StartSession(ctx context.Context, input practice.StartSessionInput) (*domain.PracticeSession, error)
	GetSession(ctx context.Context, sessionID uuid.UUID) (*domain.PracticeSession, error)
	SubmitAnswer(ctx context.Context, input practice.SubmitAnswerInput) (*domain.ExerciseResult, error)
	GetSummary(ctx context.Context, sessionID uuid.UUID) (domain.ScoreSummary, error)
	ListResults(ctx context.Context, sessionID uuid.UUID) ([]domain.ExerciseResult, error)
	CollectWord(ctx context.Context, input practice.CollectInput) (*domain.CollectedItem, error)
	CollectSentence(ctx context.Context, input practice.CollectInput) (*domain.CollectedItem, error)
	ListCollected(ctx context.Context, input practice.ListCollectedInput) ([]domain.CollectedItem, error)
	DeleteCollected(ctx context.Context, id uuid.UUID) error
}

// PracticeHandler serves the practice REST endpoints.
type PracticeHandler struct {
	svc practiceService
	log *slog.Logger
}

// NewPracticeHandler creates a PracticeHandler.
func NewPracticeHandler(svc practiceService, logger *slog.Logger) *PracticeHandler {
	return &PracticeHandler{svc: svc, log: logger.With("handler", "practice")}
}

// ---------------------------------------------------------------------------
// Request / response types
// ---------------------------------------------------------------------------

type rawRequest struct {
	Raw string `json:"raw"`
}

type generateRequest struct {
	Topic string `json:"topic"`
	Level string `json:"level"`
	Turns int    `json:"turns"`
}

type turnsBody struct {
	Turns []domain.DialogueTurn `json:"turns"`
}

type passageResponse struct {
	Passage  domain.ReadingPassage `json:"passage"`
	Fallback bool                  `json:"fallback"`
}

type startSessionRequest struct {
	Turns   []domain.DialogueTurn  `json:"turns"`
	Passage *domain.ReadingPassage `json:"passage,omitempty"`
	Count   int                    `json:"count"`
	Seed    uint64                 `json:"seed"`
}

// exerciseView is an exercise as shown to the learner, without its answer.
type exerciseView struct {
	ID        string              `json:"id"`
	Kind      domain.ExerciseKind `json:"kind"`
	Question  string              `json:"question"`
	Options   []string            `json:"options,omitempty"`
	AudioText string              `json:"audioText,omitempty"`
	Points    int                 `json:"points"`
}

type sessionResponse struct {
	ID        uuid.UUID               `json:"id"`
	Exercises []exerciseView          `json:"exercises"`
	Results   []domain.ExerciseResult `json:"results"`
	CreatedAt time.Time               `json:"createdAt"`
}

type answerRequest struct {
	ExerciseID  string `json:"exerciseId"`
	Answer      string `json:"answer"`
	TimeSpentMs int64  `json:"timeSpentMs"`
}

type answerResponse struct {
	domain.ExerciseResult
	Explanation string `json:"explanation,omitempty"`
}

type resultsResponse struct {
	Results []domain.ExerciseResult `json:"results"`
}

type collectRequest struct {
	Kind        domain.CollectedKind `json:"kind"`
	Text        string               `json:"text"`
	Translation string               `json:"translation"`
	Note        string               `json:"note"`
}

type collectionResponse struct {
	Items []domain.CollectedItem `json:"items"`
}

func toSessionResponse(s *domain.PracticeSession) sessionResponse {
	views := make([]exerciseView, len(s.Exercises))
	for i, ex := range s.Exercises {
		views[i] = exerciseView{
			ID:        ex.ID,
			Kind:      ex.Kind,
			Question:  ex.Question,
			Options:   ex.Options,
			AudioText: ex.AudioText,
			Points:    ex.Points,
		}
	}
	results := s.Results
	if results == nil {
		results = []domain.ExerciseResult{}
	}
	return sessionResponse{ID: s.ID, Exercises: views, Results: results, CreatedAt: s.CreatedAt}
}

// ---------------------------------------------------------------------------
// Dialogues and passages
// ---------------------------------------------------------------------------

// ParseDialogue handles POST /api/dialogues/parse.
func (h *PracticeHandler) ParseDialogue(w http.ResponseWriter, r *http.Request) {
	var req rawRequest
	if !decode(w, r, &req) {
		return
	}
	turns, err := h.svc.ParseDialogue(r.Context(), practice.ParseInput{Raw: req.Raw})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, turnsBody{Turns: turns})
}

// GenerateDialogue handles POST /api/dialogues/generate.
func (h *PracticeHandler) GenerateDialogue(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !decode(w, r, &req) {
		return
	}
	turns, err := h.svc.GenerateDialogue(r.Context(), practice.GenerateDialogueInput{
		Topic: req.Topic,
		Level: req.Level,
		Turns: req.Turns,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, turnsBody{Turns: turns})
}

// TranslateDialogue handles POST /api/dialogues/translate.
func (h *PracticeHandler) TranslateDialogue(w http.ResponseWriter, r *http.Request) {
	var req turnsBody
	if !decode(w, r, &req) {
		return
	}
	if len(req.Turns) == 0 {
		handleError(h.log, w, r, domain.NewValidationError("turns", "required"))
		return
	}
	turns, err := h.svc.FillTranslations(r.Context(), req.Turns)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, turnsBody{Turns: turns})
}

// ParsePassage handles POST /api/passages/parse.
func (h *PracticeHandler) ParsePassage(w http.ResponseWriter, r *http.Request) {
	var req rawRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.svc.ParsePassage(r.Context(), practice.ParseInput{Raw: req.Raw})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, passageResponse{Passage: res.Passage, Fallback: res.Fallback})
}

// GeneratePassage handles POST /api/passages/generate.
func (h *PracticeHandler) GeneratePassage(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.svc.GenerateReading(r.Context(), practice.GenerateReadingInput{Topic: req.Topic, Level: req.Level})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, passageResponse{Passage: res.Passage, Fallback: res.Fallback})
}

// ---------------------------------------------------------------------------
// Sessions
// ---------------------------------------------------------------------------

// StartSession handles POST /api/sessions.
func (h *PracticeHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if !decode(w, r, &req) {
		return
	}
	sess, err := h.svc.StartSession(r.Context(), practice.StartSessionInput{
		Turns:   req.Turns,
		Passage: req.Passage,
		Count:   req.Count,
		Seed:    req.Seed,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSessionResponse(sess))
}

// GetSession handles GET /api/sessions/{id}.
func (h *PracticeHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	sess, err := h.svc.GetSession(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(sess))
}

// SubmitAnswer handles POST /api/sessions/{id}/answers.
func (h *PracticeHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req answerRequest
	if !decode(w, r, &req) {
		return
	}

	ctx := ctxutil.WithSessionID(r.Context(), id)
	res, err := h.svc.SubmitAnswer(ctx, practice.SubmitAnswerInput{
		SessionID:   id,
		ExerciseID:  req.ExerciseID,
		Answer:      req.Answer,
		TimeSpentMs: req.TimeSpentMs,
	})
	if err != nil {
		handleError(h.log, w, r.WithContext(ctx), err)
		return
	}

	resp := answerResponse{ExerciseResult: *res}
	if sess, err := h.svc.GetSession(ctx, id); err == nil {
		if ex, found := sess.Exercise(res.ExerciseID); found {
			resp.Explanation = ex.Explanation
		}
	}
	writeJSON(w, http.StatusCreated, resp)
}

// GetSummary handles GET /api/sessions/{id}/summary.
func (h *PracticeHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	sum, err := h.svc.GetSummary(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// ListResults handles GET /api/sessions/{id}/results.
func (h *PracticeHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	results, err := h.svc.ListResults(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resultsResponse{Results: results})
}

// ---------------------------------------------------------------------------
// Collection
// ---------------------------------------------------------------------------

// Collect handles POST /api/collection.
func (h *PracticeHandler) Collect(w http.ResponseWriter, r *http.Request) {
	var req collectRequest
	if !decode(w, r, &req) {
		return
	}
	input := practice.CollectInput{Text: req.Text, Translation: req.Translation, Note: req.Note}

	var (
		item *domain.CollectedItem
		err  error
	)
	switch req.Kind {
	case domain.CollectedKindWord:
		item, err = h.svc.CollectWord(r.Context(), input)
	case domain.CollectedKindSentence:
		item, err = h.svc.CollectSentence(r.Context(), input)
	default:
		err = domain.NewValidationError("kind", "must be word or sentence")
	}
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// ListCollection handles GET /api/collection?kind=&limit=&offset=.
func (h *PracticeHandler) ListCollection(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, lerr := queryInt(q.Get("limit"))
	offset, oerr := queryInt(q.Get("offset"))
	if lerr != nil || oerr != nil {
		writeError(w, http.StatusBadRequest, "limit and offset must be integers")
		return
	}

	items, err := h.svc.ListCollected(r.Context(), practice.ListCollectedInput{
		Kind:   domain.CollectedKind(q.Get("kind")),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, collectionResponse{Items: items})
}

// DeleteCollected handles DELETE /api/collection/{id}.
func (h *PracticeHandler) DeleteCollected(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteCollected(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
