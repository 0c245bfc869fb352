package verify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"medverify/internal/domain/entity"
	"medverify/internal/handler/http/respond"
	"medverify/internal/utils/text"
)

// Verifier runs a claim through the verification pipeline.
type Verifier interface {
	Verify(ctx context.Context, input string) (entity.VerificationResult, error)
}

// Register registers the verification endpoint with the given mux.
func Register(mux *http.ServeMux, svc Verifier) {
	mux.Handle("POST /api/verify", Handler{Svc: svc})
}

// Handler handles claim verification requests.
type Handler struct{ Svc Verifier }

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Input    string `json:"input"`
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	if req.Language != "" && !entity.ValidateLanguageCode(req.Language) {
		respond.SafeError(w, http.StatusBadRequest, errors.New("unsupported language code"))
		return
	}

	slog.InfoContext(r.Context(), "verification requested",
		slog.String("input_preview", text.Truncate(req.Input, 100)),
		slog.Int("input_length", len(req.Input)))

	result, err := h.Svc.Verify(r.Context(), req.Input)
	if err != nil {
		var verr *entity.ValidationError
		if errors.As(err, &verr) {
			respond.SafeError(w, http.StatusBadRequest, errors.New(verr.Message))
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(result))
}
