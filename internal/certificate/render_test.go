package certificate

import (
	"bytes"
	"errors"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderProducesTemplateSizedJPEG(t *testing.T) {
	f := newFixture(t)
	r := f.renderer(t, testConfig())

	out, err := r.Render("Jane Doe")
	require.NoError(t, err)
	require.NotEmpty(t, out)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, testW, img.Bounds().Dx())
	assert.Equal(t, testH, img.Bounds().Dy())
	assert.Empty(t, f.warnings(), "custom font should load without warnings")
}

func TestRenderCentersName(t *testing.T) {
	f := newFixture(t)
	cfg := testConfig()
	r := f.renderer(t, cfg)

	out, err := r.Render("Jane Doe")
	require.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	minX, maxX, found := inkColumns(img, cfg.NameY, cfg.NameY+int(cfg.NameFontSize)+10, 100)
	require.True(t, found, "no name ink near NameY")
	mid := (minX + maxX) / 2
	assert.InDelta(t, testW/2, mid, 3, "ink spans [%d,%d]", minX, maxX)

	// nothing drawn well above the configured line
	_, _, above := inkColumns(img, 10, cfg.NameY-5, 100)
	assert.False(t, above)
}

func TestRenderIsDeterministic(t *testing.T) {
	f := newFixture(t)
	cfg := testConfig()
	cfg.SeminarText = "LinkedIn Seminar"
	cfg.TopicText = "Building Your Professional Brand"
	r := f.renderer(t, cfg)

	a, err := r.Render("Jane Doe")
	require.NoError(t, err)
	b, err := r.Render("Jane Doe")
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a, b), "two renders of the same name differ")
}

func TestRenderMissingTemplate(t *testing.T) {
	f := newFixture(t)
	cfg := testConfig()
	cfg.TemplatePath = "missing.png"
	r := f.renderer(t, cfg)

	out, err := r.Render("Jane Doe")
	assert.Nil(t, out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTemplateNotFound))
	assert.Equal(t, CodeTemplateNotFound, CodeOf(err))
	assert.Contains(t, err.Error(), "missing.png")

	assert.True(t, errors.Is(r.TemplateAvailable(), ErrTemplateNotFound))
}

func TestRenderCorruptTemplate(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "broken.png"), []byte("not an image"), 0o644))
	cfg := testConfig()
	cfg.TemplatePath = "broken.png"
	r := f.renderer(t, cfg)

	out, err := r.Render("Jane Doe")
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, ErrRenderFailure))
	assert.NotNil(t, errors.Unwrap(err), "cause should be surfaced")
}

func TestRenderRejectsBlankName(t *testing.T) {
	f := newFixture(t)
	r := f.renderer(t, testConfig())
	for _, name := range []string{"", "   ", "\t\n"} {
		out, err := r.Render(name)
		assert.Nil(t, out)
		assert.True(t, errors.Is(err, ErrValidationFailure), "name %q", name)
	}
}

func TestRenderSecondaryLines(t *testing.T) {
	f := newFixture(t)
	cfg := testConfig()
	plain, err := f.renderer(t, cfg).Render("Jane Doe")
	require.NoError(t, err)

	cfg.SeminarText = "LinkedIn Seminar"
	cfg.TopicText = "Networking"
	withText, err := f.renderer(t, cfg).Render("Jane Doe")
	require.NoError(t, err)
	assert.False(t, bytes.Equal(plain, withText))

	img, err := jpeg.Decode(bytes.NewReader(withText))
	require.NoError(t, err)
	seminarBand := cfg.TextY + int(cfg.TextFontSize)
	_, _, found := inkColumns(img, cfg.TextY, seminarBand, 140)
	assert.True(t, found, "seminar line missing")
	_, _, found = inkColumns(img, seminarBand+cfg.LineGap-2, seminarBand+cfg.LineGap+int(cfg.TextFontSize)+4, 140)
	assert.True(t, found, "topic line missing")
}

func TestRenderOnlyTopicUsesTextY(t *testing.T) {
	f := newFixture(t)
	cfg := testConfig()
	cfg.TopicText = "Networking"
	out, err := f.renderer(t, cfg).Render("Jane Doe")
	require.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	_, _, found := inkColumns(img, cfg.TextY, cfg.TextY+int(cfg.TextFontSize)+4, 140)
	assert.True(t, found)
}

func TestNewRendererValidatesConfig(t *testing.T) {
	f := newFixture(t)
	cfg := testConfig()
	cfg.JPEGQuality = 0
	cfg.NameFontSize = -1
	_, err := NewRenderer(cfg, f.assets, f.log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jpeg quality")
	assert.Contains(t, err.Error(), "name font size")

	_, err = NewRenderer(testConfig(), nil, f.log)
	assert.Error(t, err)
}

func TestRendererConfigIsACopy(t *testing.T) {
	f := newFixture(t)
	cfg := testConfig()
	cfg.SystemFonts = []string{"a.ttf"}
	r := f.renderer(t, cfg)
	cfg.SystemFonts[0] = "changed.ttf"

	got := r.Config()
	assert.Equal(t, "a.ttf", got.SystemFonts[0])
	got.SystemFonts[0] = "mutated.ttf"
	assert.Equal(t, "a.ttf", r.Config().SystemFonts[0])
}
