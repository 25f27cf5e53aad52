package main

import (
	"archive/zip"
	"bytes"
	"context"
	"flag"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jphsd/iconic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIcon = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
  <path d="M0 0h24v24H0z" fill="none"/>
  <path d="M12 2l10 20H2z"/>
</svg>`

func parse(t *testing.T, args ...string) (Config, error) {
	t.Helper()
	fs := flag.NewFlagSet("iconic", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return ParseConfig(fs, args)
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parse(t)
	require.NoError(t, err)
	assert.Equal(t, "-", cfg.In)
	assert.Equal(t, "icons.zip", cfg.Out)
	assert.Equal(t, "#512DA8", cfg.BaseColor)
	assert.Equal(t, "#ffffff", cfg.IconColor)
	assert.Equal(t, iconic.SizeSlider.Default, cfg.Size)
	assert.Equal(t, 16.0, cfg.ShadowLength)
	assert.Equal(t, 30.0, cfg.ShadowIntensity)
	assert.Equal(t, 50.0, cfg.ShadowFading)
	assert.True(t, cfg.Center)
	assert.Equal(t, 192, cfg.PNGSize)
	assert.Equal(t, 4, cfg.Supersample)
	assert.Equal(t, "g2d", cfg.Renderer)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.False(t, cfg.Verbose)
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Setenv("ICONIC_SIZE", "7.5")
	t.Setenv("ICONIC_RENDERER", "gg")
	t.Setenv("ICONIC_SHADOW_LENGTH", "24")
	t.Setenv("ICONIC_DENSITIES", "true")

	cfg, err := parse(t, "-in", "glyph.svg", "-shadow-length", "8", "-center=false", "-dx", "2", "-v")
	require.NoError(t, err)
	assert.Equal(t, "glyph.svg", cfg.In)
	assert.Equal(t, 7.5, cfg.Size)
	assert.Equal(t, "gg", cfg.Renderer)
	assert.Equal(t, 8.0, cfg.ShadowLength)
	assert.True(t, cfg.Densities)
	assert.False(t, cfg.Center)
	assert.Equal(t, 2.0, cfg.Dx)
	assert.True(t, cfg.Verbose)
}

func TestParseConfigErrors(t *testing.T) {
	t.Setenv("ICONIC_PNG_SIZE", "big")
	_, err := parse(t)
	assert.ErrorContains(t, err, "parse env:")
	os.Unsetenv("ICONIC_PNG_SIZE")

	for _, args := range [][]string{
		{"-png-size", "0"},
		{"-supersample", "-1"},
		{"-dx", "3"},
		{"stray"},
		{"-nope"},
	} {
		_, err := parse(t, args...)
		assert.Error(t, err, args)
	}
}

func testConfig(t *testing.T, args ...string) Config {
	t.Helper()
	cfg, err := parse(t, append([]string{"-supersample", "1", "-png-size", "48"}, args...)...)
	require.NoError(t, err)
	return cfg
}

func TestRunWritesArchive(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "glyph.svg")
	require.NoError(t, os.WriteFile(in, []byte(testIcon), 0o644))
	out := filepath.Join(dir, "out.zip")

	var stderr bytes.Buffer
	cfg := testConfig(t, "-in", in, "-out", out, "-densities", "-center=false", "-dx", "1")
	require.NoError(t, run(context.Background(), cfg, nil, io.Discard, &stderr))
	assert.Contains(t, stderr.String(), "wrote "+out)

	zr, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer zr.Close()
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "icons/icon.png")
	assert.Contains(t, names, "icons/icon.svg")
	assert.Contains(t, names, "icons/mipmap-xxxhdpi/icon.png")
}

func TestRunStdinToStdout(t *testing.T) {
	var stdout bytes.Buffer
	cfg := testConfig(t, "-out", "-", "-renderer", "oksvg")
	require.NoError(t, run(context.Background(), cfg, strings.NewReader(testIcon), &stdout, io.Discard))

	zr, err := zip.NewReader(bytes.NewReader(stdout.Bytes()), int64(stdout.Len()))
	require.NoError(t, err)
	assert.Len(t, zr.File, 2)
}

func TestRunDataURIFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml")
		io.WriteString(w, testIcon)
	}))
	defer srv.Close()

	var stdout bytes.Buffer
	cfg := testConfig(t, "-in", srv.URL+"/glyph.svg", "-datauri")
	require.NoError(t, run(context.Background(), cfg, nil, &stdout, io.Discard))
	assert.True(t, strings.HasPrefix(stdout.String(), "data:application/zip;base64,"))
}

func TestRunErrors(t *testing.T) {
	ctx := context.Background()

	cfg := testConfig(t)
	err := run(ctx, cfg, strings.NewReader(`<svg xmlns="http://www.w3.org/2000/svg"/>`), io.Discard, io.Discard)
	assert.ErrorIs(t, err, iconic.ErrNoPath)
	assert.EqualError(t, err, "no path found in SVG file")

	cfg = testConfig(t, "-renderer", "cairo")
	assert.Error(t, run(ctx, cfg, strings.NewReader(testIcon), io.Discard, io.Discard))

	cfg = testConfig(t, "-base-color", "none")
	assert.ErrorContains(t, run(ctx, cfg, strings.NewReader(testIcon), io.Discard, io.Discard), "-base-color")

	cfg = testConfig(t, "-in", filepath.Join(t.TempDir(), "missing.svg"))
	assert.Error(t, run(ctx, cfg, nil, io.Discard, io.Discard))
}
