// Package textops provides HTTP handlers for the standalone text
// utility endpoints: translation and article extraction.
package textops

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"medverify/internal/domain/entity"
	"medverify/internal/handler/http/respond"
)

// Processor is the slice of the text processing facade the utility
// endpoints depend on.
type Processor interface {
	DetectLanguage(text string) string
	Translate(ctx context.Context, text, source, target string) (string, error)
	ExtractArticleText(ctx context.Context, url string) (string, error)
}

// Register registers the translate and extract endpoints with the given mux.
func Register(mux *http.ServeMux, svc Processor) {
	mux.Handle("POST /api/translate", TranslateHandler{Svc: svc})
	mux.Handle("POST /api/extract", ExtractHandler{Svc: svc})
}

// TranslateHandler handles standalone translation requests.
type TranslateHandler struct{ Svc Processor }

func (h TranslateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text           string `json:"text"`
		TargetLanguage string `json:"target_language"`
		SourceLanguage string `json:"source_language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if req.Text == "" {
		respond.SafeError(w, http.StatusBadRequest, errors.New("text is required"))
		return
	}

	target := req.TargetLanguage
	if target == "" {
		target = "en"
	}
	source := req.SourceLanguage
	if source == "" {
		source = "auto"
	}
	if !entity.ValidateLanguageCode(target) || !entity.ValidateLanguageCode(source) {
		respond.SafeError(w, http.StatusBadRequest, errors.New("unsupported language code"))
		return
	}

	if source == "auto" {
		source = h.Svc.DetectLanguage(req.Text)
	}

	// Translation is best effort: the caller gets the original text back
	// rather than an error when the provider fails.
	translated := req.Text
	if source != target {
		out, err := h.Svc.Translate(r.Context(), req.Text, source, target)
		if err != nil {
			slog.WarnContext(r.Context(), "translation failed, returning original text",
				slog.String("source", source),
				slog.String("target", target),
				slog.Any("error", err))
		} else {
			translated = out
		}
	}

	respond.JSON(w, http.StatusOK, map[string]string{
		"translated_text": translated,
		"source_language": source,
		"target_language": target,
	})
}

// ExtractHandler handles standalone article extraction requests.
type ExtractHandler struct{ Svc Processor }

func (h ExtractHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if req.URL == "" {
		respond.SafeError(w, http.StatusBadRequest, errors.New("url is required"))
		return
	}

	if err := entity.ValidateURL(req.URL); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("Invalid URL format"))
		return
	}

	text, err := h.Svc.ExtractArticleText(r.Context(), req.URL)
	if err != nil {
		respond.AppSafeError(w, http.StatusBadRequest,
			respond.NewAppError(http.StatusBadRequest, "could not extract article content from the provided URL", err))
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{
		"text":         text,
		"url":          req.URL,
		"extracted_at": time.Now().UTC().Format(time.RFC3339),
	})
}
