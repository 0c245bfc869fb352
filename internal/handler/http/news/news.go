// Package news provides the HTTP handler for the health news endpoint.
package news

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"medverify/internal/domain/entity"
	"medverify/internal/handler/http/respond"
	newsUC "medverify/internal/usecase/news"
)

const (
	defaultLimit = 10
	maxLimit     = 50
)

// Provider serves aggregated health news articles.
type Provider interface {
	ValidSource(source string) bool
	Latest(ctx context.Context, source string, limit int) []entity.NewsArticle
}

// Register registers the news endpoint with the given mux.
func Register(mux *http.ServeMux, svc Provider) {
	mux.Handle("GET /api/news", Handler{Svc: svc})
}

// Handler handles news listing requests.
type Handler struct{ Svc Provider }

// ArticleDTO represents the JSON structure for a news article.
type ArticleDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Source      string `json:"source"`
}

// ListDTO represents the JSON response for the news endpoint.
type ListDTO struct {
	Articles  []ArticleDTO `json:"articles"`
	Total     int          `json:"total"`
	Timestamp string       `json:"timestamp"`
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	if source == "" {
		source = newsUC.SourceAll
	}
	if !h.Svc.ValidSource(source) {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid news source"))
		return
	}

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respond.SafeError(w, http.StatusBadRequest, errors.New("limit must be a positive integer"))
			return
		}
		limit = parsed
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	articles := h.Svc.Latest(r.Context(), source, limit)

	dtos := make([]ArticleDTO, 0, len(articles))
	for _, a := range articles {
		dtos = append(dtos, ArticleDTO{
			ID:          a.ID,
			Title:       a.Title,
			Summary:     a.Summary,
			URL:         a.URL,
			PublishedAt: a.PublishedAt.Format(time.RFC3339),
			Source:      a.Source,
		})
	}

	respond.JSON(w, http.StatusOK, ListDTO{
		Articles:  dtos,
		Total:     len(dtos),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
