// Package config loads the runtime settings shared by the CLI, the HTTP
// facade and the engine: the default level, the girth method, the undo
// depth, the pair palette, logging and where boards are stored.
//
// Settings come from a YAML file layered over Default and are validated
// with go-playground/validator before use.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tworow/board"
	"github.com/katalvlaran/tworow/levels"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the full set of settings.
type Config struct {
	// Level is the level the engine starts at and Connect validates against.
	Level string `yaml:"level" json:"level" validate:"required,level"`

	// GirthMethod selects the cycle search: "exhaustive" or "bfs".
	GirthMethod string `yaml:"girth_method" json:"girthMethod" validate:"oneof=exhaustive bfs"`

	// MinCycle is the shortest directed cycle the orientation check permits.
	// Zero keeps the engine default.
	MinCycle int `yaml:"min_cycle" json:"minCycle" validate:"gte=0"`

	// HistoryLimit bounds the undo stack; zero means unbounded.
	HistoryLimit int `yaml:"history_limit" json:"historyLimit" validate:"gte=0"`

	// Palette overrides the fixed pair colors.
	Palette []string `yaml:"palette,omitempty" json:"palette,omitempty" validate:"dive,hexcolor"`

	LogLevel  string `yaml:"log_level" json:"logLevel" validate:"oneof=debug info warn error"`
	LogFormat string `yaml:"log_format" json:"logFormat" validate:"oneof=text json"`

	// DBPath is the badger directory for saved boards. Empty keeps boards
	// in memory.
	DBPath string `yaml:"db_path,omitempty" json:"dbPath,omitempty"`

	ListenAddr string `yaml:"listen_addr" json:"listenAddr" validate:"required,hostname_port"`
}

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("level", validateLevel)
}

// validateLevel accepts IDs present in the embedded level catalogue.
func validateLevel(fl validator.FieldLevel) bool {
	_, err := levels.Default().Level(fl.Field().String())

	return err == nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Level:        "Level 2",
		GirthMethod:  "exhaustive",
		HistoryLimit: 256,
		LogLevel:     "info",
		LogFormat:    "text",
		ListenAddr:   "localhost:8080",
	}
}

// Validate checks every field.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s fails %q (got %v)", fe.Field(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return nil
}

// Parse decodes YAML over Default and validates the result.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Load reads and parses the file at path. An empty path yields Default.
func Load(path string) (Config, error) {
	if path == "" {
		c := Default()
		return c, c.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: load: %w", err)
	}

	return Parse(data)
}

// Colors returns the palette as board colors.
func (c Config) Colors() []board.Color {
	out := make([]board.Color, 0, len(c.Palette))
	for _, p := range c.Palette {
		out = append(out, board.Color(strings.ToLower(p)))
	}

	return out
}

// SlogLevel maps LogLevel to a slog.Level; unknown values read as info.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds a text or JSON logger writing to w at the configured level.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}
