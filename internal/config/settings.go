package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/gorewood/pclubgit/internal/sequencer"
)

// DefaultMarker is the substring every commit message must contain.
const DefaultMarker = "GO PCLUB!"

// Size bounds for user-supplied text.
const (
	DefaultMaxMessageBytes  = 512
	DefaultMaxFilenameBytes = 512
)

// Alphabet names accepted in place of explicit symbols.
const (
	AlphabetDefault = "default"
	AlphabetLegacy  = "legacy"
)

// Environment variables that override file settings.
const (
	EnvMarker   = "PCLUBGIT_MARKER"
	EnvLogLevel = "PCLUBGIT_LOG_LEVEL"
)

// Settings holds tunable behaviour. Zero fields mean "not set" so that
// layers can be merged.
type Settings struct {
	Marker           string `yaml:"marker,omitempty"`
	Alphabet         string `yaml:"alphabet,omitempty"`
	IDWidth          int    `yaml:"id_width,omitempty"`
	MaxMessageBytes  int    `yaml:"max_message_bytes,omitempty"`
	MaxFilenameBytes int    `yaml:"max_filename_bytes,omitempty"`
	LogLevel         string `yaml:"log_level,omitempty"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Marker:           DefaultMarker,
		Alphabet:         AlphabetDefault,
		IDWidth:          sequencer.DefaultWidth,
		MaxMessageBytes:  DefaultMaxMessageBytes,
		MaxFilenameBytes: DefaultMaxFilenameBytes,
		LogLevel:         "info",
	}
}

// Merge returns s with every non-zero field of over applied on top.
func (s Settings) Merge(over Settings) Settings {
	if over.Marker != "" {
		s.Marker = over.Marker
	}
	if over.Alphabet != "" {
		s.Alphabet = over.Alphabet
	}
	if over.IDWidth != 0 {
		s.IDWidth = over.IDWidth
	}
	if over.MaxMessageBytes != 0 {
		s.MaxMessageBytes = over.MaxMessageBytes
	}
	if over.MaxFilenameBytes != 0 {
		s.MaxFilenameBytes = over.MaxFilenameBytes
	}
	if over.LogLevel != "" {
		s.LogLevel = over.LogLevel
	}
	return s
}

// Frozen returns the settings that are fixed for a repository's lifetime.
// Changing them after the first commit would change the id sequence.
func (s Settings) Frozen() Settings {
	return Settings{Alphabet: s.Alphabet, IDWidth: s.IDWidth}
}

// Validate checks that the settings describe a usable configuration.
func (s Settings) Validate() error {
	var errs []error
	if strings.TrimSpace(s.Marker) == "" {
		errs = append(errs, errors.New("marker must not be empty"))
	}
	if s.MaxMessageBytes < len(s.Marker) {
		errs = append(errs, fmt.Errorf("max_message_bytes %d cannot hold marker %q", s.MaxMessageBytes, s.Marker))
	}
	if s.MaxFilenameBytes <= 0 {
		errs = append(errs, fmt.Errorf("max_filename_bytes %d must be positive", s.MaxFilenameBytes))
	}
	if _, err := s.Sequencer(); err != nil {
		errs = append(errs, err)
	}
	if _, err := s.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// AlphabetSymbols resolves named alphabets to their symbols.
func (s Settings) AlphabetSymbols() string {
	switch s.Alphabet {
	case "", AlphabetDefault:
		return sequencer.DefaultAlphabet
	case AlphabetLegacy:
		return sequencer.LegacyAlphabet
	default:
		return s.Alphabet
	}
}

// Sequencer builds the commit-id sequencer described by the settings.
func (s Settings) Sequencer() (*sequencer.Sequencer, error) {
	width := s.IDWidth
	if width == 0 {
		width = sequencer.DefaultWidth
	}
	seq, err := sequencer.New(s.AlphabetSymbols(), width)
	if err != nil {
		return nil, fmt.Errorf("commit ids: %w", err)
	}
	return seq, nil
}

// SlogLevel parses LogLevel.
func (s Settings) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if s.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level %q: %w", s.LogLevel, err)
	}
	return level, nil
}

// Parse decodes YAML settings. Unknown keys are rejected.
func Parse(data []byte) (Settings, error) {
	var s Settings
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	return s, nil
}

// Marshal encodes settings as YAML.
func Marshal(s Settings) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	return data, nil
}

// LoadFile reads settings from path on fs.
// A missing file yields zero settings and no error.
func LoadFile(fs afero.Fs, path string) (Settings, error) {
	if path == "" {
		return Settings{}, nil
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("read settings %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// FromEnv returns the settings overridden through environment variables.
func FromEnv() Settings {
	return Settings{
		Marker:   os.Getenv(EnvMarker),
		LogLevel: os.Getenv(EnvLogLevel),
	}
}

// Resolve layers defaults, the global file, the repository file, and the
// environment, in increasing precedence.
func Resolve(global, repo Settings) (Settings, error) {
	s := Defaults().Merge(global).Merge(repo).Merge(FromEnv())
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}
