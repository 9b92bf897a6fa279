package preference

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

var ErrUnknownTheme = errors.New("unknown theme")

func ParseTheme(value string) (Theme, error) {
	switch theme := Theme(strings.ToLower(strings.TrimSpace(value))); theme {
	case Dark, Light:
		return theme, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, value)
	}
}

// Store keeps the theme choice as a single string in a local file.
type Store struct {
	logger *slog.Logger
	path   string
	getenv func(string) string
}

func NewStore(logger *slog.Logger, path string) (*Store, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate config dir: %w", err)
		}
		path = filepath.Join(dir, "tictactoe-rooms", "theme")
	}

	return &Store{
		logger: logger.With("component", "preference"),
		path:   path,
		getenv: os.Getenv,
	}, nil
}

// Stored - the explicit choice, if one was saved.
func (that *Store) Stored() (Theme, bool, error) {
	data, err := os.ReadFile(that.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read theme: %w", err)
	}

	theme, err := ParseTheme(string(data))
	if err != nil {
		that.logger.Warn("ignoring stored theme", "error", err)
		return "", false, nil
	}

	return theme, true, nil
}

func (that *Store) Save(theme Theme) error {
	if err := os.MkdirAll(filepath.Dir(that.path), 0o700); err != nil {
		return fmt.Errorf("failed to create theme dir: %w", err)
	}

	if err := os.WriteFile(that.path, []byte(theme), 0o600); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}

	return nil
}

// Theme - the stored choice wins; without one the terminal background decides.
func (that *Store) Theme() Theme {
	stored, ok, err := that.Stored()
	if err != nil {
		that.logger.Warn("failed to load theme", "error", err)
	}

	if ok {
		return stored
	}

	if SystemPrefersDark(that.getenv) {
		return Dark
	}

	return Light
}

// SystemPrefersDark - reads the background colour from COLORFGBG ("fg;bg"). Dark
// backgrounds are the ANSI colours 0 to 6 and 8.
func SystemPrefersDark(getenv func(string) string) bool {
	value := getenv("COLORFGBG")
	if value == "" {
		return false
	}

	parts := strings.Split(value, ";")

	background, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return false
	}

	return background <= 6 || background == 8
}
