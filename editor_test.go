package iconic

import (
	"bytes"
	"context"
	"image/color"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/jphsd/iconic/geom"
	"github.com/jphsd/iconic/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testIcon is a Material style icon: an invisible frame and a square with a square hole.
const testIcon = `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24">
  <path d="M0 0h24v24H0z" fill="none"/>
  <path d="M2 2h20v20H2z M8 8v8h8V8z"/>
</svg>`

func newTestEditor(t *testing.T, opts ...Option) *Editor {
	t.Helper()
	e := NewEditor(append([]Option{WithSupersample(1)}, opts...)...)
	require.NoError(t, e.ImportBytes([]byte(testIcon)))
	return e
}

func TestEditorRequiresIcon(t *testing.T) {
	e := NewEditor()
	assert.Nil(t, e.Base())
	assert.Nil(t, e.Icon())

	assert.ErrorIs(t, e.SetBaseColor(color.Black), ErrNoIcon)
	assert.ErrorIs(t, e.SetIconColor(color.Black), ErrNoIcon)
	assert.ErrorIs(t, e.SetSize(5), ErrNoIcon)
	assert.ErrorIs(t, e.SetShadowLength(5), ErrNoIcon)
	assert.ErrorIs(t, e.SetShadowIntensity(5), ErrNoIcon)
	assert.ErrorIs(t, e.SetShadowFading(5), ErrNoIcon)
	assert.ErrorIs(t, e.SetCentered(true), ErrNoIcon)
	assert.ErrorIs(t, e.Move(1, 1), ErrNoIcon)

	_, err := e.Render(48)
	assert.ErrorIs(t, err, ErrNoIcon)
	assert.ErrorIs(t, e.SVG(&bytes.Buffer{}), ErrNoIcon)
	assert.ErrorIs(t, e.Export(&bytes.Buffer{}, ExportOptions{}), ErrNoIcon)
	_, err = e.DataURI(ExportOptions{})
	assert.ErrorIs(t, err, ErrNoIcon)
}

func TestEditorImport(t *testing.T) {
	e := newTestEditor(t)

	b := e.Base()
	require.NotNil(t, b)
	assert.Equal(t, geom.Pt(24, 24), b.Center)
	assert.InDelta(t, 21.6, b.Radius, 1e-12)
	assert.Equal(t, DefaultBaseColor, b.Color)

	ic := e.Icon()
	require.NotNil(t, ic)
	assert.Equal(t, DefaultIconColor, ic.Color)
	assert.True(t, ic.Centered())
	assert.Equal(t, 1.0, ic.Scale())
	assert.Equal(t, DefaultShadow(), ic.Shadow)

	r := ic.Bounds()
	assert.InDelta(t, 21.6*2*0.6, math.Max(r.W(), r.H()), 1e-9)
	assert.InDelta(t, 24, r.Center().X, 1e-9)
	assert.InDelta(t, 24, r.Center().Y, 1e-9)
}

func TestEditorImportFailure(t *testing.T) {
	e := newTestEditor(t)

	err := e.ImportBytes([]byte(`<svg xmlns="http://www.w3.org/2000/svg"><g><title>empty</title></g></svg>`))
	assert.ErrorIs(t, err, ErrNoPath)
	assert.Nil(t, e.Icon())
	assert.Nil(t, e.Base())

	err = e.Import(strings.NewReader(`<html/>`))
	assert.Error(t, err)
	assert.Nil(t, e.Icon())
}

func TestEditorReimportResetsBase(t *testing.T) {
	red := color.NRGBA{R: 0xff, A: 0xff}
	e := newTestEditor(t, WithBaseColor(red), WithIconColor(color.Black))
	assert.Equal(t, red, e.Base().Color)
	assert.Equal(t, color.Black, e.Icon().Color)

	require.NoError(t, e.SetBaseColor(color.White))
	require.NoError(t, e.SetShadowLength(40))
	require.NoError(t, e.ImportBytes([]byte(testIcon)))
	assert.Equal(t, red, e.Base().Color)
	assert.Equal(t, 16.0, e.Icon().Shadow.Length)

	assert.Error(t, e.SetBaseColor(nil))
}

func TestEditorMoveAndCenter(t *testing.T) {
	e := newTestEditor(t)
	before := e.Icon().Bounds()

	require.NoError(t, e.Move(3, -2))
	assert.False(t, e.Icon().Centered())
	after := e.Icon().Bounds()
	assert.InDelta(t, before.Min.X+3, after.Min.X, 1e-9)
	assert.InDelta(t, before.Min.Y-2, after.Min.Y, 1e-9)

	require.NoError(t, e.SetCentered(false))
	assert.False(t, e.Icon().Centered())
	assert.InDelta(t, after.Min.X, e.Icon().Bounds().Min.X, 1e-9)

	require.NoError(t, e.SetCentered(true))
	assert.True(t, e.Icon().Centered())
	assert.InDelta(t, before.Min.X, e.Icon().Bounds().Min.X, 1e-9)

	// Moving by nothing keeps the icon centered.
	require.NoError(t, e.Move(0, 0))
	assert.True(t, e.Icon().Centered())
}

func TestEditorSize(t *testing.T) {
	e := newTestEditor(t)
	fitted := e.Icon().Bounds().W()

	require.NoError(t, e.SetSize(10))
	assert.InDelta(t, SizeToScale(10), e.Icon().Scale(), 1e-12)
	assert.InDelta(t, fitted*SizeToScale(10), e.Icon().Bounds().W(), 1e-9)
	c := e.Icon().Bounds().Center()
	assert.InDelta(t, 24, c.X, 1e-9)
	assert.InDelta(t, 24, c.Y, 1e-9)

	require.NoError(t, e.SetSize(25))
	assert.InDelta(t, SizeToScale(10), e.Icon().Scale(), 1e-12)

	require.NoError(t, e.SetSize(SizeSlider.Default))
	assert.InDelta(t, fitted, e.Icon().Bounds().W(), 1e-9)
}

func TestEditorShadowSliders(t *testing.T) {
	e := newTestEditor(t)

	require.NoError(t, e.SetShadowLength(60))
	require.NoError(t, e.SetShadowIntensity(-5))
	require.NoError(t, e.SetShadowFading(75))
	assert.Equal(t, Shadow{Length: 48, Intensity: 0, Fading: 0.75}, e.Icon().Shadow)
	assert.False(t, e.Icon().Shadow.Visible())

	require.NoError(t, e.SetShadowIntensity(math.NaN()))
	assert.InDelta(t, 0.3, e.Icon().Shadow.Intensity, 1e-12)
}

func TestEditorRenderer(t *testing.T) {
	r, err := render.New("gg")
	require.NoError(t, err)
	e := NewEditor(WithRenderer(r), WithRenderer(nil))
	assert.Equal(t, "gg", e.Renderer().Name())
	assert.Equal(t, "g2d", NewEditor().Renderer().Name())
}

func TestEditorLogger(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e := newTestEditor(t, WithLogger(l))
	assert.Contains(t, buf.String(), "selected icon path")

	_, err := e.Render(16)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "renderer=g2d")
}

func TestPackageLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))

	l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	SetLogger(l)
	assert.Same(t, l, Logger())
	assert.Same(t, l, NewEditor().log)

	SetLogger(nil)
	assert.NotNil(t, Logger())
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}
