package util

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	RcFileName       = "rushrc.toml"
	HomeRcFileName   = ".rushrc.toml"
	HistoryFileName  = "history.db"
	DefaultPrompt    = ">> "
	DefaultLogLevel  = "none"
	DefaultHistorySz = 500
)

type Configuration struct {
	Version   string `toml:"-"`
	BuildDate string `toml:"-"`
	Commit    string `toml:"-"`
	RushHome  string `toml:"-"`

	Prompt       string `toml:"prompt"`
	Capture      string `toml:"capture"`
	HistoryDSN   string `toml:"history_dsn"`
	HistorySize  int    `toml:"history_size"`
	LogLevel     string `toml:"log_level"`
	LogFile      string `toml:"log_file"`
	DebugAST     string `toml:"debug_ast"`
	ErrorContext bool   `toml:"error_context"`
}

func DefaultConfiguration(rushHome string) Configuration {
	c := Configuration{
		RushHome:    rushHome,
		Prompt:      DefaultPrompt,
		Capture:     "combined",
		HistorySize: DefaultHistorySz,
		LogLevel:    DefaultLogLevel,
	}
	if rushHome != "" {
		c.HistoryDSN = filepath.Join(rushHome, HistoryFileName)
	}
	return c
}

// RcPath returns the rc file consulted when none is given on the command line:
// $RUSH_HOME/rushrc.toml when RUSH_HOME is set, else ~/.rushrc.toml.
func RcPath(rushHome, userHome string) string {
	if rushHome != "" {
		return filepath.Join(rushHome, RcFileName)
	}
	if userHome != "" {
		return filepath.Join(userHome, HomeRcFileName)
	}
	return ""
}

// LoadFile overlays the keys present in the TOML file at path onto c. When
// required is false a missing file is not an error.
func (c *Configuration) LoadFile(path string, required bool) error {
	if path == "" {
		return nil
	}

	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

func (c *Configuration) Validate() error {
	switch c.DebugAST {
	case "", "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid debug_ast format %q", c.DebugAST)
	}
	if c.HistorySize < 0 {
		return fmt.Errorf("invalid history_size %d", c.HistorySize)
	}
	return nil
}

// RushHomeFromEnv returns $RUSH_HOME, or "" when unset.
func RushHomeFromEnv() string {
	return os.Getenv("RUSH_HOME")
}
