package seed

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/angelmondragon/shoppingcart/pkg/config"
	pkgerrors "github.com/angelmondragon/shoppingcart/pkg/errors"
)

// ResolvePath returns the absolute seed file location. Relative paths are anchored at
// cfg.BaseDir, or at the directory of the running executable when BaseDir is empty.
func ResolvePath(cfg config.SeedConfig) (string, error) {
	file := strings.TrimSpace(cfg.File)
	if file == "" {
		return "", pkgerrors.New(pkgerrors.CodeConfig, fmt.Sprintf("%s is not set", config.EnvSeedFile))
	}
	if filepath.IsAbs(file) {
		return filepath.Clean(file), nil
	}

	base := strings.TrimSpace(cfg.BaseDir)
	if base == "" {
		exe, err := os.Executable()
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeConfig, err, "locate executable directory")
		}
		base = filepath.Dir(exe)
	}
	abs, err := filepath.Abs(filepath.Join(base, file))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeConfig, err, "resolve seed path")
	}
	return abs, nil
}

// ReadFile loads and decodes the seed document at path.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeConfig, err, fmt.Sprintf("read seed file %s", path))
	}
	return Decode(data)
}

// WriteFile encodes doc and writes it to path, creating parent directories as needed.
func WriteFile(path string, doc *Document) error {
	data, err := Encode(doc)
	if err != nil {
		return fmt.Errorf("encode seed document: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create seed directory: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write seed file: %w", err)
	}
	return nil
}
