package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title> Acme Robotics — warehouse automation </title>
  <meta name="description" content="Robots that pick and pack.">
</head>
<body>
  <h1>Acme Robotics</h1>
  <h2>Why   warehouses love us</h2>
  <h2></h2>
  <h1>Careers</h1>
</body>
</html>`

func TestSummarizeHTML(t *testing.T) {
	summary, err := SummarizeHTML(samplePage)
	require.NoError(t, err)

	assert.Equal(t, "Acme Robotics — warehouse automation", summary.Title)
	assert.Equal(t, "Robots that pick and pack.", summary.Description)
	// Empty headings are skipped, internal whitespace is collapsed
	assert.Equal(t, []string{"Acme Robotics", "Why warehouses love us", "Careers"}, summary.Headings)
}

func TestSummarizeHTML_OGDescriptionFallback(t *testing.T) {
	page := `<html><head>
	  <meta property="og:description" content="From the OG tag.">
	</head><body></body></html>`

	summary, err := SummarizeHTML(page)
	require.NoError(t, err)
	assert.Equal(t, "From the OG tag.", summary.Description)
}

func TestSummarizeHTML_CapsHeadings(t *testing.T) {
	page := "<html><body>"
	for i := 0; i < 12; i++ {
		page += "<h2>Heading</h2>"
	}
	page += "</body></html>"

	summary, err := SummarizeHTML(page)
	require.NoError(t, err)
	assert.Len(t, summary.Headings, 8)
}

func TestFetcher_Summarize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	summary, err := NewFetcher().Summarize(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, srv.URL, summary.URL)
	assert.Equal(t, "Acme Robotics — warehouse automation", summary.Title)
}

func TestFetcher_Summarize_Errors(t *testing.T) {
	t.Run("rejects non-http scheme", func(t *testing.T) {
		_, err := NewFetcher().Summarize(context.Background(), "ftp://acme.dev")
		assert.Error(t, err)
	})

	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := NewFetcher().Summarize(context.Background(), srv.URL)
		assert.Error(t, err)
	})
}
