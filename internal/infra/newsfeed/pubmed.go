package newsfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"medverify/internal/domain/entity"
	"medverify/internal/observability/metrics"
	"medverify/internal/resilience/circuitbreaker"
	"medverify/internal/resilience/retry"
)

const (
	defaultEUtilsBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

	// pubmedSearchTerm selects recent articles with "health" in the title.
	pubmedSearchTerm = `health[Title] AND ("last 30 days"[PDat])`
)

// PubMed fetches recent health research articles via the NCBI
// E-utilities API: an esearch call for PMIDs followed by an esummary
// call for article metadata.
//
// Thread safety: PubMed is safe for concurrent use.
type PubMed struct {
	baseURL        string
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// PubMedOption configures a PubMed fetcher.
type PubMedOption func(*PubMed)

// WithBaseURL overrides the E-utilities base URL. Used in tests.
func WithBaseURL(baseURL string) PubMedOption {
	return func(p *PubMed) {
		p.baseURL = baseURL
	}
}

// NewPubMed creates a PubMed article fetcher.
func NewPubMed(opts ...PubMedOption) *PubMed {
	p := &PubMed{
		baseURL:        defaultEUtilsBaseURL,
		client:         &http.Client{Timeout: 10 * time.Second},
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		retryConfig:    retry.FeedFetchConfig(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type esearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

type esummaryAuthor struct {
	Name string `json:"name"`
}

type esummaryArticle struct {
	Title           string           `json:"title"`
	PubDate         string           `json:"pubdate"`
	FullJournalName string           `json:"fulljournalname"`
	Authors         []esummaryAuthor `json:"authors"`
}

// Fetch returns up to limit recent articles.
func (p *PubMed) Fetch(ctx context.Context, limit int) ([]entity.NewsArticle, error) {
	start := time.Now()
	var articles []entity.NewsArticle

	retryErr := retry.WithBackoff(ctx, p.retryConfig, func() error {
		cbResult, err := p.circuitBreaker.Execute(func() (interface{}, error) {
			return p.doFetch(ctx, limit)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("pubmed circuit breaker open, request rejected",
					slog.String("state", p.circuitBreaker.State().String()))
				return fmt.Errorf("pubmed unavailable: circuit breaker open")
			}
			return err
		}

		articles = cbResult.([]entity.NewsArticle)
		return nil
	})

	if retryErr != nil {
		metrics.RecordExternalCall("pubmed", "error", time.Since(start))
		return nil, fmt.Errorf("fetching pubmed articles failed after retries: %w", retryErr)
	}

	metrics.RecordExternalCall("pubmed", "success", time.Since(start))
	metrics.RecordNewsFetched("PubMed", len(articles))
	return articles, nil
}

// doFetch runs the esearch and esummary calls. Called through the
// circuit breaker inside the retry loop.
func (p *PubMed) doFetch(ctx context.Context, limit int) ([]entity.NewsArticle, error) {
	pmids, err := p.search(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(pmids) == 0 {
		return []entity.NewsArticle{}, nil
	}

	return p.summaries(ctx, pmids)
}

// search returns PMIDs of recent health articles.
func (p *PubMed) search(ctx context.Context, limit int) ([]string, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", pubmedSearchTerm)
	params.Set("retmax", strconv.Itoa(limit))
	params.Set("retmode", "json")
	params.Set("sort", "pub_date")

	var parsed esearchResponse
	if err := p.getJSON(ctx, p.baseURL+"/esearch.fcgi?"+params.Encode(), &parsed); err != nil {
		return nil, fmt.Errorf("pubmed esearch failed: %w", err)
	}

	ids := parsed.ESearchResult.IDList
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

// summaries fetches article metadata for the given PMIDs.
func (p *PubMed) summaries(ctx context.Context, pmids []string) ([]entity.NewsArticle, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", strings.Join(pmids, ","))
	params.Set("retmode", "json")

	// The esummary result maps each PMID to its article object, so the
	// per-article fields have to be decoded in a second pass.
	var parsed struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	if err := p.getJSON(ctx, p.baseURL+"/esummary.fcgi?"+params.Encode(), &parsed); err != nil {
		return nil, fmt.Errorf("pubmed esummary failed: %w", err)
	}

	articles := make([]entity.NewsArticle, 0, len(pmids))
	for _, pmid := range pmids {
		raw, ok := parsed.Result[pmid]
		if !ok {
			continue
		}

		var article esummaryArticle
		if err := json.Unmarshal(raw, &article); err != nil {
			slog.Debug("skipping unparseable pubmed summary",
				slog.String("pmid", pmid),
				slog.Any("error", err))
			continue
		}

		title := article.Title
		if title == "" {
			title = "No title available"
		}

		articles = append(articles, entity.NewsArticle{
			ID:          "pubmed_" + pmid,
			Title:       title,
			Summary:     pubmedSummary(article),
			URL:         fmt.Sprintf("https://pubmed.ncbi.nlm.nih.gov/%s/", pmid),
			PublishedAt: parsePubmedDate(article.PubDate),
			Source:      "PubMed",
		})
	}

	return articles, nil
}

// getJSON performs a GET request and decodes the JSON response into out.
func (p *PubMed) getJSON(ctx context.Context, requestURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("e-utilities returned %d: %s", resp.StatusCode, string(respBody)),
		}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// pubmedSummary builds a one-line summary from author and journal metadata.
func pubmedSummary(article esummaryArticle) string {
	names := make([]string, 0, 3)
	for i, author := range article.Authors {
		if i >= 3 {
			break
		}
		if author.Name != "" {
			names = append(names, author.Name)
		}
	}

	authorStr := strings.Join(names, ", ")
	if len(article.Authors) > 3 {
		authorStr += " et al."
	}

	journal := article.FullJournalName
	if journal == "" {
		journal = "Unknown Journal"
	}

	return fmt.Sprintf("Research article by %s published in %s.", authorStr, journal)
}

// pubmedDateLayouts covers the date formats esummary returns, such as
// "2024 Jan 15", "2024 Jan" or "2024/01/15".
var pubmedDateLayouts = []string{
	"2006 Jan 2",
	"2006 Jan",
	"2006/01/02",
	"2006",
}

func parsePubmedDate(dateStr string) time.Time {
	dateStr = strings.TrimSpace(dateStr)
	for _, layout := range pubmedDateLayouts {
		if parsed, err := time.Parse(layout, dateStr); err == nil {
			return parsed.UTC()
		}
	}
	return time.Now().UTC()
}
