package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mind-engage/mindengage-seminar/internal/certificate"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const devSessionSecret = "supersecret-dev-key"

type Config struct {
	Mode      Mode
	HTTPAddr  string
	PublicURL string

	CORSOrigins []string

	// AssetsDir roots relative template and font paths.
	AssetsDir string

	SessionSecret string
	SessionTTL    time.Duration
	CookieSecure  bool

	LogLevel  string
	LogFormat string // console|json

	Render certificate.RenderConfig
}

// Load reads configuration from, in increasing priority: built-in defaults,
// the YAML file at path (or $SEMINAR_CONFIG), a .env file, and the process
// environment.
func Load(path string) (Config, error) {
	loadEnvFile()

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv("SEMINAR_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return fromViper(v)
}

// .env never overrides variables already set in the environment.
func loadEnvFile() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}

func setDefaults(v *viper.Viper) {
	def := certificate.DefaultRenderConfig()

	v.SetDefault("mode", string(ModeOffline))
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("public_url", "")
	v.SetDefault("cors_origins", "http://localhost:3000")
	v.SetDefault("assets_dir", ".")
	v.SetDefault("session_secret", devSessionSecret)
	v.SetDefault("session_ttl", "8h")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	v.SetDefault("cert.template_path", def.TemplatePath)
	v.SetDefault("cert.font_path", "")
	v.SetDefault("cert.system_fonts", strings.Join(def.SystemFonts, ","))
	v.SetDefault("cert.font_dirs", strings.Join(def.FontDirs, ","))
	v.SetDefault("cert.name_font_size", def.NameFontSize)
	v.SetDefault("cert.text_font_size", def.TextFontSize)
	v.SetDefault("cert.name_y", def.NameY)
	v.SetDefault("cert.text_y", def.TextY)
	v.SetDefault("cert.name_color", def.NameColor.String())
	v.SetDefault("cert.text_color", def.TextColor.String())
	v.SetDefault("cert.seminar_text", "")
	v.SetDefault("cert.topic_text", "")
	v.SetDefault("cert.line_gap", def.LineGap)
	v.SetDefault("cert.jpeg_quality", def.JPEGQuality)
}

func fromViper(v *viper.Viper) (Config, error) {
	mode := Mode(strings.ToLower(v.GetString("mode")))
	if mode != ModeOffline && mode != ModeOnline {
		return Config{}, fmt.Errorf("unknown mode %q", mode)
	}
	ttl, err := time.ParseDuration(v.GetString("session_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("session_ttl: %w", err)
	}

	cfg := Config{
		Mode:          mode,
		HTTPAddr:      v.GetString("http_addr"),
		PublicURL:     v.GetString("public_url"),
		CORSOrigins:   stringList(v, "cors_origins"),
		AssetsDir:     v.GetString("assets_dir"),
		SessionSecret: v.GetString("session_secret"),
		SessionTTL:    ttl,
		CookieSecure:  mode == ModeOnline,
		LogLevel:      strings.ToLower(v.GetString("log_level")),
		LogFormat:     strings.ToLower(v.GetString("log_format")),
	}
	if v.IsSet("cookie_secure") {
		cfg.CookieSecure = v.GetBool("cookie_secure")
	}

	nameColor, err := certificate.ParseRGB(v.GetString("cert.name_color"))
	if err != nil {
		return Config{}, fmt.Errorf("cert.name_color: %w", err)
	}
	textColor, err := certificate.ParseRGB(v.GetString("cert.text_color"))
	if err != nil {
		return Config{}, fmt.Errorf("cert.text_color: %w", err)
	}
	cfg.Render = certificate.RenderConfig{
		TemplatePath: v.GetString("cert.template_path"),
		FontPath:     v.GetString("cert.font_path"),
		SystemFonts:  stringList(v, "cert.system_fonts"),
		FontDirs:     stringList(v, "cert.font_dirs"),
		NameFontSize: v.GetFloat64("cert.name_font_size"),
		TextFontSize: v.GetFloat64("cert.text_font_size"),
		NameY:        v.GetInt("cert.name_y"),
		TextY:        v.GetInt("cert.text_y"),
		NameColor:    nameColor,
		TextColor:    textColor,
		SeminarText:  v.GetString("cert.seminar_text"),
		TopicText:    v.GetString("cert.topic_text"),
		LineGap:      v.GetInt("cert.line_gap"),
		JPEGQuality:  v.GetInt("cert.jpeg_quality"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("http_addr is required"))
	}
	if c.SessionSecret == "" {
		errs = append(errs, errors.New("session_secret is required"))
	}
	if c.Mode == ModeOnline && c.SessionSecret == devSessionSecret {
		errs = append(errs, errors.New("session_secret must be changed in online mode"))
	}
	if err := c.Render.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// stringList accepts either a YAML list or a comma separated string.
func stringList(v *viper.Viper, key string) []string {
	var parts []string
	switch raw := v.Get(key).(type) {
	case []interface{}:
		for _, p := range raw {
			parts = append(parts, fmt.Sprint(p))
		}
	case []string:
		parts = raw
	default:
		parts = strings.Split(v.GetString(key), ",")
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
