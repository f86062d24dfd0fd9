package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/orastria/book-generator/internal/intake"
	"github.com/orastria/book-generator/internal/pipeline"
	"github.com/orastria/book-generator/internal/types"
)

// GenerateResponse represents the response for /generate
type GenerateResponse struct {
	Success     bool   `json:"success"`
	DownloadURL string `json:"download_url"`
	Filename    string `json:"filename"`
	Message     string `json:"message,omitempty"`
}

// handleGenerate generates a book from a structured payload with
// separate user_data and chart_data objects.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	in, err := intake.FromStructured(&req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.generate(w, r, in)
}

// handleGenerateSimple generates a book from a flat payload, the shape
// no-code form builders post.
func (s *Server) handleGenerateSimple(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	in, err := intake.FromFlat(payload)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.generate(w, r, in)
}

// generate runs the pipeline for a normalized intake and writes the
// outcome.
func (s *Server) generate(w http.ResponseWriter, r *http.Request, in *types.Intake) {
	log.Printf("Generating book for %s", in.Name)

	result, err := s.runner(r.Context(), pipeline.RunOptions{
		Intake: in,
		Config: s.cfg,
	})
	if err != nil {
		log.Printf("Book generation failed: %v", err)
		s.failureResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, GenerateResponse{
		Success:     true,
		DownloadURL: result.URL,
		Filename:    result.Filename,
		Message:     fmt.Sprintf("Book generated for %s", in.Name),
	})
}

// handleGenerateStream generates a book and streams progress via SSE.
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	in, err := intake.FromFlat(payload)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("Generating book for %s (streaming)", in.Name)

	result, err := s.runner(r.Context(), pipeline.RunOptions{
		Intake: in,
		Config: s.cfg,
		OnProgress: func(event pipeline.ProgressEvent) {
			if err := sse.WriteEvent("progress", event); err != nil {
				log.Printf("Error writing SSE event: %v", err)
			}
		},
	})
	if err != nil {
		log.Printf("Book generation failed: %v", err)
		sse.WriteError(err.Error())
		return
	}

	sse.WriteComplete(result.URL, result.Filename)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "orastria-ai-book-generator",
		"version": "2.0",
		"features": []string{
			"all_questionnaire_fields",
			"claude_ai_content",
			"numerology",
			"colored_compatibility_bars",
			"monthly_forecasts",
		},
	})
}

// handleFields lists the questionnaire fields the intake understands,
// for form builders wiring up against the API.
func (s *Server) handleFields(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"required_fields": []string{
			"first_name (or name)", "birth_date", "birth_place",
			"sun_sign", "moon_sign", "rising_sign",
		},
		"all_supported_fields": map[string][]string{
			"personal":      {"first_name", "last_name", "gender", "email"},
			"birth":         {"birth_date", "birth_time", "birth_time_period", "birth_place"},
			"knowledge":     {"astrology_familiarity"},
			"goals":         {"main_goals", "life_dreams", "motivations"},
			"relationships": {"relationship_status", "relationship_goals", "relationship_satisfaction", "unresolved_romantic_feelings"},
			"personality":   {"decision_worry", "need_to_be_liked", "insecurity_with_strangers", "outlook"},
			"love":          {"love_language", "logic_vs_emotions", "overthink_relationships", "desired_partner_traits"},
			"career":        {"career_question"},
			"life_events":   {"significant_life_event_soon"},
			"chart":         {"sun_sign", "moon_sign", "rising_sign", "mercury", "venus", "mars", "jupiter", "saturn", "midheaven", "north_node"},
		},
	})
}
