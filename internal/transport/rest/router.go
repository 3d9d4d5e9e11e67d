package rest

import (
	"net/http"
)

// NewRouter registers the practice API and health probes.
func NewRouter(practice *PracticeHandler, health *HealthHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	mux.HandleFunc("POST /api/dialogues/parse", practice.ParseDialogue)
	mux.HandleFunc("POST /api/dialogues/generate", practice.GenerateDialogue)
	mux.HandleFunc("POST /api/dialogues/translate", practice.TranslateDialogue)
	mux.HandleFunc("POST /api/passages/parse", practice.ParsePassage)
	mux.HandleFunc("POST /api/passages/generate", practice.GeneratePassage)

	mux.HandleFunc("POST /api/sessions", practice.StartSession)
	mux.HandleFunc("GET /api/sessions/{id}", practice.GetSession)
	mux.HandleFunc("POST /api/sessions/{id}/answers", practice.SubmitAnswer)
	mux.HandleFunc("GET /api/sessions/{id}/summary", practice.GetSummary)
	mux.HandleFunc("GET /api/sessions/{id}/results", practice.ListResults)

	mux.HandleFunc("POST /api/collection", practice.Collect)
	mux.HandleFunc("GET /api/collection", practice.ListCollection)
	mux.HandleFunc("DELETE /api/collection/{id}", practice.DeleteCollected)

	return mux
}
