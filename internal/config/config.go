package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"nifgraph/internal/nif"
)

// Config holds the data locations and loader settings.
type Config struct {
	// Paths
	DataDir   string `json:"data_dir"`
	OutputDir string `json:"output_dir"`

	// Loader settings
	Strict          bool  `json:"strict"`
	LoadUnsupported bool  `json:"load_unsupported"`
	MaxFileSize     int64 `json:"max_file_size"`
	MaxRecords      int   `json:"max_records"`
	MaxStrings      int   `json:"max_strings"`

	// Charset names the code page of text inside files, e.g. "windows-1252".
	// Empty keeps text as stored.
	Charset string `json:"charset"`

	// Batch settings
	CacheSize int `json:"cache_size"`
	Workers   int `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when set.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.DataDir != "" {
		c.DataDir = flags.DataDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Strict {
		c.Strict = true
	}
	if flags.LoadUnsupported {
		c.LoadUnsupported = true
	}
	if flags.Charset != "" {
		c.Charset = flags.Charset
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.DataDir == "" {
		c.DataDir = detectDataDir()
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.DataDir, "nif-export")
	} else if !filepath.IsAbs(c.OutputDir) && c.DataDir != "" {
		c.OutputDir = filepath.Join(c.DataDir, c.OutputDir)
	}

	// Defaults for loader ceilings
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = 256 << 20
	}
	if c.MaxRecords <= 0 {
		c.MaxRecords = 1 << 20
	}
	if c.MaxStrings <= 0 {
		c.MaxStrings = 1 << 20
	}
	if c.CacheSize <= 0 {
		c.CacheSize = 128
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// LoaderOptions returns the nif load options for these settings.
func (c *Config) LoaderOptions(logger *slog.Logger) (nif.Options, error) {
	cm, err := Charmap(c.Charset)
	if err != nil {
		return nif.Options{}, err
	}
	return nif.Options{
		Logger:          logger,
		Strict:          c.Strict,
		LoadUnsupported: c.LoadUnsupported,
		Limits: nif.Limits{
			MaxFileSize: c.MaxFileSize,
			MaxRecords:  c.MaxRecords,
			MaxStrings:  c.MaxStrings,
		},
		Charset: cm,
	}, nil
}

// Charmap looks up a single-byte code page by name. Case, spaces and dashes
// are ignored, so "Windows-1252" and "windows1252" match. An empty name
// returns nil.
func Charmap(name string) (*charmap.Charmap, error) {
	if name == "" {
		return nil, nil
	}
	key := charsetKey(name)
	for _, enc := range charmap.All {
		cm, ok := enc.(*charmap.Charmap)
		if ok && charsetKey(cm.String()) == key {
			return cm, nil
		}
	}
	return nil, fmt.Errorf("config: unknown charset %q", name)
}

func charsetKey(name string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' || r == '_' {
			return -1
		}
		return r
	}, strings.ToLower(name))
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	DataDir         string
	OutputDir       string
	Strict          bool
	LoadUnsupported bool
	Charset         string
	Workers         int
}

func detectDataDir() string {
	// Try the current directory and its parent for a game Data Files folder
	cwd, _ := os.Getwd()
	for _, base := range []string{cwd, filepath.Dir(cwd)} {
		for _, name := range []string{"Data Files", "Data"} {
			dir := filepath.Join(base, name)
			if st, err := os.Stat(dir); err == nil && st.IsDir() {
				return dir
			}
		}
	}
	return cwd
}
