package certificate

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io/fs"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/mind-engage/mindengage-seminar/internal/logger"
	"github.com/mind-engage/mindengage-seminar/internal/metrics"
	"github.com/mind-engage/mindengage-seminar/internal/storage"
)

// ContentType of every rendered certificate.
const ContentType = "image/jpeg"

type Renderer struct {
	cfg    RenderConfig
	assets storage.AssetStore
	log    logger.Logger
	fonts  []FontSource
}

func NewRenderer(cfg RenderConfig, assets storage.AssetStore, log logger.Logger) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("render config: %w", err)
	}
	if assets == nil {
		return nil, errors.New("render config: asset store is required")
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	cfg = cfg.clone()
	return &Renderer{
		cfg:    cfg,
		assets: assets,
		log:    log.With(map[string]interface{}{"component": "certificate"}),
		fonts:  FontChain(cfg, assets),
	}, nil
}

// Config returns a copy of the bound configuration.
func (r *Renderer) Config() RenderConfig { return r.cfg.clone() }

// TemplateAvailable reports whether the template can be opened.
func (r *Renderer) TemplateAvailable() error {
	if _, err := r.assets.Stat(r.cfg.TemplatePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return templateNotFound(r.cfg.TemplatePath, err)
		}
		return renderFailure("stat template", err)
	}
	return nil
}

// Render overlays name (and the optional seminar/topic lines) on the template
// and returns the JPEG bytes. Output is a pure function of name and config.
func (r *Renderer) Render(name string) (out []byte, err error) {
	if strings.TrimSpace(name) == "" {
		return nil, &Error{Code: CodeValidationFailure, Message: "name is required"}
	}
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			out, err = nil, renderFailure("image processing panicked", fmt.Errorf("%v", p))
		}
		if err == nil {
			metrics.RenderDuration.Observe(time.Since(start).Seconds())
		}
	}()

	img, err := r.loadTemplate()
	if err != nil {
		return nil, err
	}
	width := img.Bounds().Dx()

	f := ResolveFont(r.fonts, r.log)
	nameFace, err := f.Face(r.cfg.NameFontSize)
	if err != nil {
		return nil, renderFailure("name face", err)
	}
	defer nameFace.Close()

	ext := measure(nameFace, name)
	drawText(img, nameFace, r.cfg.NameColor, name, centerX(width, ext), r.cfg.NameY)

	if r.cfg.SeminarText != "" || r.cfg.TopicText != "" {
		textFace, err := f.Face(r.cfg.TextFontSize)
		if err != nil {
			return nil, renderFailure("text face", err)
		}
		defer textFace.Close()

		y := r.cfg.TextY
		if r.cfg.SeminarText != "" {
			se := measure(textFace, r.cfg.SeminarText)
			drawText(img, textFace, r.cfg.TextColor, r.cfg.SeminarText, centerX(width, se), y)
			y += se.height.Ceil() + r.cfg.LineGap
		}
		if r.cfg.TopicText != "" {
			te := measure(textFace, r.cfg.TopicText)
			drawText(img, textFace, r.cfg.TextColor, r.cfg.TopicText, centerX(width, te), y)
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: r.cfg.JPEGQuality}); err != nil {
		return nil, renderFailure("encode jpeg", err)
	}
	r.log.Debug("certificate rendered", map[string]interface{}{
		"font":  f.Name(),
		"bytes": buf.Len(),
	})
	return buf.Bytes(), nil
}

// loadTemplate decodes the template and flattens it onto an opaque white
// RGBA canvas anchored at the origin.
func (r *Renderer) loadTemplate() (*image.RGBA, error) {
	rc, err := r.assets.Open(r.cfg.TemplatePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, templateNotFound(r.cfg.TemplatePath, err)
		}
		return nil, renderFailure("open template", err)
	}
	defer rc.Close()

	src, _, err := image.Decode(rc)
	if err != nil {
		return nil, renderFailure("decode template", err)
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	return dst, nil
}

// drawText draws s with its ascender line at y.
func drawText(dst draw.Image, face font.Face, c RGB, s string, x fixed.Int26_6, y int) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c.RGBA()),
		Face: face,
		Dot:  fixed.Point26_6{X: x, Y: fixed.I(y) + face.Metrics().Ascent},
	}
	d.DrawString(s)
}
