package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const icon = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path d="M2 2h20v20H2z"/></svg>`

func TestDownloadSVG(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/icon.svg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Write([]byte(icon))
	})
	mux.HandleFunc("/plain", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write([]byte(`<?xml version="1.0"?>` + "\n" + icon))
	})
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>not an icon</body></html>"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	ctx := context.Background()
	data, err := DownloadSVG(ctx, srv.URL+"/icon.svg")
	require.NoError(t, err)
	assert.Equal(t, icon, string(data))

	data, err = DownloadSVG(ctx, srv.URL+"/plain")
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")

	_, err = DownloadSVG(ctx, srv.URL+"/page")
	assert.ErrorContains(t, err, "not a valid SVG")

	_, err = DownloadSVG(ctx, srv.URL+"/missing")
	assert.ErrorContains(t, err, "404")

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = DownloadSVG(cancelled, srv.URL+"/icon.svg")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsSVG(t *testing.T) {
	assert.True(t, IsSVG("image/svg+xml; charset=utf-8", nil))
	assert.True(t, IsSVG("", []byte(icon)))
	assert.False(t, IsSVG("", []byte("\x89PNG\r\n\x1a\n")))
	assert.False(t, IsSVG("", []byte(`<?xml version="1.0"?><rss/>`)))
}

func TestIsValidUrl(t *testing.T) {
	assert.True(t, IsValidUrl("https://fonts.gstatic.com/s/i/materialicons/home/v1/24px.svg"))
	assert.False(t, IsValidUrl("icon.svg"))
	assert.False(t, IsValidUrl("/tmp/icon.svg"))
	assert.False(t, IsValidUrl("-"))
}

func TestFailure(t *testing.T) {
	assert.Equal(t, errorColor+"boom"+resetColor, Failure("boom"))
}

func TestWrote(t *testing.T) {
	got := Wrote("icons.zip", 12345, 1500*time.Millisecond)
	assert.True(t, strings.HasPrefix(got, nameColor+"iconic"+resetColor+" wrote icons.zip ("))
	assert.Contains(t, got, valueColor+"12 kB"+resetColor)
	assert.True(t, strings.HasSuffix(got, valueColor+"1.5s"+resetColor))
	assert.Contains(t, Wrote("x", -1, 0), "(")
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "1.5s", FormatTime(1500*time.Millisecond))
	assert.Equal(t, "123ms", FormatTime(123456*time.Microsecond))
	assert.Equal(t, "2m5.01s", FormatTime(2*time.Minute+5*time.Second+12*time.Millisecond))
}
