package browser

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logger "newsnex-api/infrastructure/logger/standard"
)

func requireBrowser(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	for _, name := range []string{"headless-shell", "chromium", "chromium-browser", "google-chrome", "google-chrome-stable"} {
		if _, err := exec.LookPath(name); err == nil {
			return
		}
	}
	t.Skip("no Chrome or Chromium binary on PATH")
}

const scriptedPage = `<!DOCTYPE html>
<html><head><title>Scripted</title></head>
<body><div id="story"></div>
<script>
document.getElementById("story").innerText = "Sarah Johnson, CEO of TechCorp, spoke on Monday.";
</script>
</body></html>`

func TestRender_ExecutesScripts(t *testing.T) {
	requireBrowser(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, scriptedPage)
	}))
	defer srv.Close()

	r := New(Options{Timeout: 20 * time.Second}, logger.NewWithWriter(io.Discard, "debug"))
	defer r.Close()

	html, err := r.Render(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, html, "Sarah Johnson, CEO of TechCorp")
}

func TestRender_CanceledContext(t *testing.T) {
	r := New(DefaultOptions(), nil)
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Render(ctx, "https://news.example.com")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_Defaults(t *testing.T) {
	r := New(Options{}, nil)
	defer r.Close()

	assert.Equal(t, DefaultOptions().Timeout, r.opts.Timeout)
	assert.NoError(t, r.Close())
}
