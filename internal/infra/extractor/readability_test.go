package extractor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"medverify/internal/usecase/textproc"
)

// testConfig allows fetching from the httptest server, which listens on
// loopback and would otherwise be rejected by the SSRF check.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.DenyPrivateIPs = false
	return cfg
}

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Vitamin D and Immunity</title></head>
<body>
<article>
<h1>Vitamin D and Immunity</h1>
<p>Vitamin D plays an important role in immune function according to multiple clinical studies.</p>
<p>Researchers found that supplementation reduced the rate of acute respiratory infections in deficient individuals.</p>
<p>However, megadoses showed no additional benefit and carry risks of toxicity.</p>
</article>
</body>
</html>`

func TestReadabilityExtractor_Extract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	ex := NewReadabilityExtractor(testConfig())

	got, err := ex.Extract(context.Background(), srv.URL+"/article")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if !strings.Contains(got, "immune function") {
		t.Errorf("Extract() = %q, missing article body", got)
	}
	if strings.Contains(got, "<p>") {
		t.Errorf("Extract() returned HTML tags: %q", got)
	}
}

func TestReadabilityExtractor_ParagraphFallback(t *testing.T) {
	// A page with body paragraphs but no article structure worth
	// extracting still yields text through the goquery fallback.
	page := `<html><head><script>var x = 1;</script></head><body>
<nav>Home | About</nav>
<p>Green tea contains antioxidants.</p>
<p>Some claims about it curing disease are not supported.</p>
<footer>Copyright</footer>
</body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	ex := NewReadabilityExtractor(testConfig())

	got, err := ex.Extract(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if !strings.Contains(got, "antioxidants") {
		t.Errorf("Extract() = %q, missing paragraph text", got)
	}
	if strings.Contains(got, "var x") || strings.Contains(got, "Copyright") {
		t.Errorf("Extract() included non-content text: %q", got)
	}
}

func TestReadabilityExtractor_CleansExtractedText(t *testing.T) {
	page := `<html><body>
<p>Share this story at https://short.example.com/abc123 or email tips@example.com with questions.</p>
<p>The underlying study followed twelve thousand participants over five years.</p>
</body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	ex := NewReadabilityExtractor(testConfig())

	got, err := ex.Extract(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if strings.Contains(got, "short.example.com") || strings.Contains(got, "tips@example.com") {
		t.Errorf("Extract() = %q, URLs and email addresses should be stripped", got)
	}
	if !strings.Contains(got, "twelve thousand participants") {
		t.Errorf("Extract() = %q, article prose should survive cleaning", got)
	}
}

func TestReadabilityExtractor_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><div>nothing here</div></body></html>`))
	}))
	defer srv.Close()

	ex := NewReadabilityExtractor(testConfig())

	_, err := ex.Extract(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("Extract() expected error for page without paragraphs")
	}
}

func TestReadabilityExtractor_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	ex := NewReadabilityExtractor(testConfig())

	_, err := ex.Extract(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("Extract() expected error for 404 response")
	}
}

func TestReadabilityExtractor_BodyTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><p>" + strings.Repeat("a", 4096) + "</p></body></html>"))
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.MaxBodySize = 2048
	ex := NewReadabilityExtractor(cfg)

	_, err := ex.Extract(context.Background(), srv.URL)
	if !errors.Is(err, textproc.ErrBodyTooLarge) {
		t.Fatalf("Extract() error = %v, want ErrBodyTooLarge", err)
	}
}

func TestReadabilityExtractor_InvalidScheme(t *testing.T) {
	ex := NewReadabilityExtractor(testConfig())

	_, err := ex.Extract(context.Background(), "ftp://example.com/article")
	if !errors.Is(err, textproc.ErrInvalidURL) {
		t.Fatalf("Extract() error = %v, want ErrInvalidURL", err)
	}
}

func TestReadabilityExtractor_DeniesPrivateIP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	// The httptest server listens on loopback, so the default config
	// must refuse to fetch from it.
	ex := NewReadabilityExtractor(DefaultConfig())

	_, err := ex.Extract(context.Background(), srv.URL)
	if !errors.Is(err, textproc.ErrPrivateIP) {
		t.Fatalf("Extract() error = %v, want ErrPrivateIP", err)
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr error
	}{
		{
			name:    "valid https",
			url:     "https://www.who.int/news/item",
			wantErr: nil,
		},
		{
			name:    "ftp scheme rejected",
			url:     "ftp://example.com/file",
			wantErr: textproc.ErrInvalidURL,
		},
		{
			name:    "empty hostname rejected",
			url:     "https:///path-only",
			wantErr: textproc.ErrInvalidURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Skip the DNS lookup so tests stay offline.
			err := validateURL(tt.url, false)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("validateURL(%q) error = %v, want nil", tt.url, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateURL(%q) error = %v, want %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Timeout = 0 },
			wantErr: true,
		},
		{
			name:    "body size too small",
			mutate:  func(c *Config) { c.MaxBodySize = 100 },
			wantErr: true,
		},
		{
			name:    "too many redirects",
			mutate:  func(c *Config) { c.MaxRedirects = 50 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
