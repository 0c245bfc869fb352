package news

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medverify/internal/domain/entity"
)

type stubProvider struct {
	articles   []entity.NewsArticle
	gotSource  string
	gotLimit   int
	validNames map[string]bool
}

func (s *stubProvider) ValidSource(source string) bool {
	return s.validNames[source]
}

func (s *stubProvider) Latest(_ context.Context, source string, limit int) []entity.NewsArticle {
	s.gotSource = source
	s.gotLimit = limit
	return s.articles
}

func newStub(articles ...entity.NewsArticle) *stubProvider {
	return &stubProvider{
		articles:   articles,
		validNames: map[string]bool{"all": true, "who": true, "cdc": true, "pubmed": true},
	}
}

func doNews(t *testing.T, svc Provider, target string) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	Register(mux, svc)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_DefaultsToAllWithLimit10(t *testing.T) {
	stub := newStub(entity.NewsArticle{
		ID:          "who_1",
		Title:       "New vaccination guidance",
		Summary:     "Updated guidance released.",
		URL:         "https://www.who.int/news/1",
		PublishedAt: time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC),
		Source:      "WHO",
	})

	rec := doNews(t, stub, "/api/news")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "all", stub.gotSource)
	assert.Equal(t, 10, stub.gotLimit)

	var body ListDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
	require.Len(t, body.Articles, 1)
	assert.Equal(t, "who_1", body.Articles[0].ID)
	assert.Equal(t, "2025-05-01T08:00:00Z", body.Articles[0].PublishedAt)
	assert.NotEmpty(t, body.Timestamp)
}

func TestHandler_SourceAndLimitParams(t *testing.T) {
	stub := newStub()

	rec := doNews(t, stub, "/api/news?source=cdc&limit=5")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cdc", stub.gotSource)
	assert.Equal(t, 5, stub.gotLimit)
}

func TestHandler_LimitCapped(t *testing.T) {
	stub := newStub()

	rec := doNews(t, stub, "/api/news?limit=500")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 50, stub.gotLimit)
}

func TestHandler_InvalidSource(t *testing.T) {
	rec := doNews(t, newStub(), "/api/news?source=tabloid")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid news source")
}

func TestHandler_InvalidLimit(t *testing.T) {
	tests := []string{"/api/news?limit=abc", "/api/news?limit=0", "/api/news?limit=-3"}

	for _, target := range tests {
		rec := doNews(t, newStub(), target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestHandler_EmptyListEncodesAsArray(t *testing.T) {
	rec := doNews(t, newStub(), "/api/news?source=pubmed")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"articles":[]`)
	assert.Contains(t, rec.Body.String(), `"total":0`)
}
