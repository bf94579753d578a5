package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mrlokans/zipshelf/internal/archive"
)

type (
	Config struct {
		Archive
		Display
		Logging
	}

	Archive struct {
		ZipPath      string
		ExtractDir   string
		MaxEntrySize int64 // Upper bound for one decompressed entry, in bytes
	}
	Display struct {
		TextWidth int // Column at which the console rendering wraps
	}
	Logging struct {
		Level string // debug, info, warn or error
	}
)

// defaultExtractDir resolves <cwd>/Data/extracted, falling back to a relative path
// when the working directory cannot be determined
func defaultExtractDir() string {
	cwd, err := os.Getwd()
	if err != nil {
		return filepath.FromSlash(DefaultExtractSubdir)
	}
	return filepath.Join(cwd, filepath.FromSlash(DefaultExtractSubdir))
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("zip_path", DefaultZipPath)
	v.SetDefault("extract_dir", "")
	v.SetDefault("max_entry_size", archive.DefaultMaxEntrySize)
	v.SetDefault("text_width", DefaultTextWidth)
	v.SetDefault("log_level", "info")

	extractDir := v.GetString("EXTRACT_DIR")
	if extractDir == "" {
		extractDir = defaultExtractDir()
	}

	return &Config{
		Archive: Archive{
			ZipPath:      v.GetString("ZIP_PATH"),
			ExtractDir:   extractDir,
			MaxEntrySize: v.GetInt64("MAX_ENTRY_SIZE"),
		},
		Display: Display{
			TextWidth: v.GetInt("TEXT_WIDTH"),
		},
		Logging: Logging{
			Level: strings.ToLower(v.GetString("LOG_LEVEL")),
		},
	}
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Archive.ZipPath) == "" {
		return fmt.Errorf("zip path cannot be empty")
	}
	if strings.TrimSpace(c.Archive.ExtractDir) == "" {
		return fmt.Errorf("extract dir cannot be empty")
	}
	if err := archive.CheckDestination(c.Archive.ZipPath, c.Archive.ExtractDir); err != nil {
		return err
	}
	if c.Archive.MaxEntrySize <= 0 {
		return fmt.Errorf("max entry size must be positive")
	}
	if c.Display.TextWidth < MinTextWidth {
		return fmt.Errorf("text width must be at least %d", MinTextWidth)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be debug, info, warn, or error")
	}
	return nil
}
