package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const postingHTML = `<html>
<head><title>Job</title></head>
<body>
  <nav>Home | Jobs</nav>
  <div class="cookie-banner">We use cookies</div>
  <div class="job-description">
    <h1>Senior Backend Engineer</h1>
    <p>Own the billing pipeline end to end.</p>
    <p>5+ years with Go or a similar language.</p>
  </div>
  <footer>Copyright</footer>
</body>
</html>`

func TestExtractDescription_UsesJobSelectorsAndDropsNoise(t *testing.T) {
	text, err := extractDescription(postingHTML)
	require.NoError(t, err)

	assert.Contains(t, text, "Senior Backend Engineer")
	assert.Contains(t, text, "billing pipeline")
	assert.NotContains(t, text, "cookies")
	assert.NotContains(t, text, "Copyright")
	assert.NotContains(t, text, "Home | Jobs")
}

func TestExtractDescription_FallsBackToBody(t *testing.T) {
	text, err := extractDescription(`<html><body><p>Bare description.</p></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "Bare description.", text)
}

func TestImporter_Description(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "Hireboard")
		w.Write([]byte(postingHTML))
	}))
	defer srv.Close()

	imp := NewImporter(false, zap.NewNop())
	text, err := imp.Description(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "Own the billing pipeline")
}

func TestImporter_BadStatusSurfacesURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	imp := NewImporter(false, zap.NewNop())
	_, err := imp.Description(context.Background(), srv.URL)
	require.Error(t, err)

	var ingestErr *Error
	require.ErrorAs(t, err, &ingestErr)
	assert.Equal(t, srv.URL, ingestErr.URL)
	assert.Contains(t, ingestErr.Message, "404")
}

func TestImporter_InvalidURL(t *testing.T) {
	imp := NewImporter(false, zap.NewNop())
	_, err := imp.Description(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestNeedsBrowser(t *testing.T) {
	assert.True(t, needsBrowser("short"))
	assert.True(t, needsBrowser("   "))
	assert.False(t, needsBrowser(strings.Repeat("long enough content ", 50)))
}
