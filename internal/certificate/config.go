package certificate

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// RGB is an opaque text color.
type RGB struct{ R, G, B uint8 }

func (c RGB) RGBA() color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff} }

func (c RGB) String() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// ParseRGB accepts "#rrggbb", "rrggbb" or "r,g,b".
func ParseRGB(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		if len(parts) != 3 {
			return RGB{}, fmt.Errorf("color %q: want r,g,b", s)
		}
		var v [3]uint8
		for i, p := range parts {
			n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
			if err != nil {
				return RGB{}, fmt.Errorf("color %q: %w", s, err)
			}
			v[i] = uint8(n)
		}
		return RGB{v[0], v[1], v[2]}, nil
	}
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("color %q: want #rrggbb", s)
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("color %q: %w", s, err)
	}
	return RGB{uint8(n >> 16), uint8(n >> 8), uint8(n)}, nil
}

// RenderConfig controls certificate layout. Every position and size is tuned
// by hand for one template; only horizontal centering is computed.
type RenderConfig struct {
	TemplatePath string
	FontPath     string

	// Conventional file names and directories searched for a system
	// sans-serif font when FontPath is unset or unusable.
	SystemFonts []string
	FontDirs    []string

	NameFontSize float64
	TextFontSize float64
	NameY        int
	TextY        int
	NameColor    RGB
	TextColor    RGB

	SeminarText string
	TopicText   string
	LineGap     int

	JPEGQuality int
}

// DefaultRenderConfig is tuned for a 2000x1414 template.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TemplatePath: "certificate_template.png",
		SystemFonts:  DefaultSystemFonts(),
		FontDirs:     DefaultFontDirs(),
		NameFontSize: 80,
		TextFontSize: 40,
		NameY:        650,
		TextY:        800,
		NameColor:    RGB{0, 0, 0},
		TextColor:    RGB{50, 50, 50},
		LineGap:      10,
		JPEGQuality:  95,
	}
}

func DefaultSystemFonts() []string {
	return []string{
		"arial.ttf",
		"Arial.ttf",
		"DejaVuSans.ttf",
		"LiberationSans-Regular.ttf",
		"FreeSans.ttf",
		"Helvetica.ttc",
	}
}

// DefaultFontDirs lists the conventional font directories for the host OS.
func DefaultFontDirs() []string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		windir := os.Getenv("WINDIR")
		if windir == "" {
			windir = `C:\Windows`
		}
		return []string{filepath.Join(windir, "Fonts")}
	case "darwin":
		dirs := []string{"/Library/Fonts", "/System/Library/Fonts", "/System/Library/Fonts/Supplemental"}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
		return dirs
	default:
		var dirs []string
		if home != "" {
			dirs = append(dirs, filepath.Join(home, ".local", "share", "fonts"), filepath.Join(home, ".fonts"))
		}
		return append(dirs, "/usr/local/share/fonts", "/usr/share/fonts")
	}
}

func (c RenderConfig) Validate() error {
	var errs []error
	if strings.TrimSpace(c.TemplatePath) == "" {
		errs = append(errs, errors.New("template path is required"))
	}
	if c.NameFontSize <= 0 {
		errs = append(errs, fmt.Errorf("name font size must be positive, got %v", c.NameFontSize))
	}
	if c.TextFontSize <= 0 {
		errs = append(errs, fmt.Errorf("text font size must be positive, got %v", c.TextFontSize))
	}
	if c.LineGap < 0 {
		errs = append(errs, fmt.Errorf("line gap must not be negative, got %d", c.LineGap))
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("jpeg quality must be in [1,100], got %d", c.JPEGQuality))
	}
	return errors.Join(errs...)
}

func (c RenderConfig) clone() RenderConfig {
	c.SystemFonts = append([]string(nil), c.SystemFonts...)
	c.FontDirs = append([]string(nil), c.FontDirs...)
	return c
}
