package certificate

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"

	"github.com/mind-engage/mindengage-seminar/internal/logger"
	"github.com/mind-engage/mindengage-seminar/internal/metrics"
	"github.com/mind-engage/mindengage-seminar/internal/storage"
)

// Font hands out faces at a pixel size.
type Font interface {
	Name() string
	Face(size float64) (font.Face, error)
}

// FontSource is one step of the font fallback chain.
type FontSource interface {
	Source() string
	Load() (Font, error)
}

// errNotConfigured marks a source that was skipped rather than failed.
var errNotConfigured = errors.New("not configured")

// FontChain returns the sources tried in order: custom, system, built-in.
func FontChain(cfg RenderConfig, assets storage.AssetStore) []FontSource {
	return []FontSource{
		customFont{assets: assets, path: cfg.FontPath},
		systemFont{names: cfg.SystemFonts, dirs: cfg.FontDirs},
		builtinFont{},
	}
}

// ResolveFont walks sources in order and returns the first that loads.
// Failures are warnings; the built-in bitmap face is the floor.
func ResolveFont(sources []FontSource, log logger.Logger) Font {
	for _, src := range sources {
		f, err := src.Load()
		if err == nil {
			return f
		}
		if errors.Is(err, errNotConfigured) {
			continue
		}
		metrics.FontFallbacks.WithLabelValues(src.Source()).Inc()
		log.Warn("font source unavailable, falling back", map[string]interface{}{
			"source": src.Source(),
			"error":  err.Error(),
		})
	}
	log.Warn("no font source succeeded, using built-in bitmap font", nil)
	return bitmapFont{}
}

type customFont struct {
	assets storage.AssetStore
	path   string
}

func (customFont) Source() string { return "custom" }

func (c customFont) Load() (Font, error) {
	if c.path == "" {
		return nil, errNotConfigured
	}
	rc, err := c.assets.Open(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fontLoadFailure("custom", c.path, fmt.Errorf("font file not found: %w", err))
		}
		return nil, fontLoadFailure("custom", c.path, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fontLoadFailure("custom", c.path, err)
	}
	f, err := parseFont(data)
	if err != nil {
		return nil, fontLoadFailure("custom", c.path, err)
	}
	return &sfntFont{name: filepath.Base(c.path), f: f}, nil
}

type systemFont struct {
	names []string
	dirs  []string
}

func (systemFont) Source() string { return "system" }

func (s systemFont) Load() (Font, error) {
	if len(s.names) == 0 {
		return nil, errNotConfigured
	}
	var lastErr error
	for _, path := range s.candidates() {
		data, err := os.ReadFile(path)
		if err != nil {
			lastErr = err
			continue
		}
		f, err := parseFont(data)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", path, err)
			continue
		}
		return &sfntFont{name: filepath.Base(path), f: f}, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("none of %v found in %v", s.names, s.dirs)
	}
	return nil, fontLoadFailure("system", "", lastErr)
}

// candidates lists matching files: names as given first, then directory
// trees searched in order.
func (s systemFont) candidates() []string {
	var out []string
	for _, n := range s.names {
		if fi, err := os.Stat(n); err == nil && !fi.IsDir() {
			out = append(out, n)
		}
	}
	want := make(map[string]int, len(s.names))
	for i, n := range s.names {
		want[n] = i
	}
	for _, dir := range s.dirs {
		found := make([]string, len(s.names))
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if i, ok := want[d.Name()]; ok && found[i] == "" {
				found[i] = path
			}
			return nil
		})
		for _, p := range found {
			if p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

type builtinFont struct{}

func (builtinFont) Source() string { return "builtin" }

func (builtinFont) Load() (Font, error) { return bitmapFont{}, nil }

// parseFont accepts single fonts and collections (.ttc), taking the first
// face of a collection.
func parseFont(data []byte) (*opentype.Font, error) {
	f, err := opentype.Parse(data)
	if err == nil {
		return f, nil
	}
	coll, cerr := opentype.ParseCollection(data)
	if cerr != nil {
		return nil, err
	}
	if coll.NumFonts() == 0 {
		return nil, errors.New("empty font collection")
	}
	return coll.Font(0)
}

type sfntFont struct {
	name string
	f    *opentype.Font
}

func (s *sfntFont) Name() string { return s.name }

func (s *sfntFont) Face(size float64) (font.Face, error) {
	return opentype.NewFace(s.f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// bitmapFont ignores the requested size; it only has 7x13.
type bitmapFont struct{}

func (bitmapFont) Name() string { return "basicfont.Face7x13" }

func (bitmapFont) Face(float64) (font.Face, error) { return basicfont.Face7x13, nil }
