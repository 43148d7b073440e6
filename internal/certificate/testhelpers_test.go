package certificate

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/mind-engage/mindengage-seminar/internal/logger"
	"github.com/mind-engage/mindengage-seminar/internal/storage"
)

const (
	testW = 600
	testH = 400
)

// writeTemplate writes a plain off-white PNG with a thin border.
func writeTemplate(t *testing.T, dir, name string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, testW, testH))
	for y := 0; y < testH; y++ {
		for x := 0; x < testW; x++ {
			c := color.NRGBA{R: 250, G: 248, B: 240, A: 255}
			if x < 4 || y < 4 || x >= testW-4 || y >= testH-4 {
				c = color.NRGBA{R: 30, G: 60, B: 120, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func writeGoFont(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), goregular.TTF, 0o644))
}

func testConfig() RenderConfig {
	cfg := DefaultRenderConfig()
	cfg.TemplatePath = "template.png"
	cfg.FontPath = "Go-Regular.ttf"
	cfg.SystemFonts = nil
	cfg.FontDirs = nil
	cfg.NameFontSize = 40
	cfg.TextFontSize = 20
	cfg.NameY = 150
	cfg.TextY = 250
	return cfg
}

type fixture struct {
	dir    string
	assets *storage.FSStore
	logs   *observer.ObservedLogs
	log    logger.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	writeTemplate(t, dir, "template.png")
	writeGoFont(t, dir, "Go-Regular.ttf")
	assets, err := storage.NewFSStore(dir)
	require.NoError(t, err)
	core, logs := observer.New(zapcore.DebugLevel)
	return &fixture{dir: dir, assets: assets, logs: logs, log: logger.NewZapAdapter(zap.New(core))}
}

func (f *fixture) renderer(t *testing.T, cfg RenderConfig) *Renderer {
	t.Helper()
	r, err := NewRenderer(cfg, f.assets, f.log)
	require.NoError(t, err)
	return r
}

func (f *fixture) warnings() []observer.LoggedEntry {
	return f.logs.FilterLevelExact(zapcore.WarnLevel).All()
}

// inkColumns returns the leftmost and rightmost columns in rows [y0,y1)
// whose luminance is below threshold. A margin around the border is skipped
// so JPEG ringing from the frame is not counted.
func inkColumns(img image.Image, y0, y1 int, threshold uint32) (minX, maxX int, found bool) {
	const margin = 12
	minX, maxX = 1<<30, -1
	b := img.Bounds()
	if y0 < margin {
		y0 = margin
	}
	for y := y0; y < y1 && y < b.Max.Y-margin; y++ {
		for x := b.Min.X + margin; x < b.Max.X-margin; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			lum := (299*r + 587*g + 114*bl) / 1000 >> 8
			if lum < threshold {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				found = true
			}
		}
	}
	return minX, maxX, found
}
