package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to keep the
// TOML readable ("10s" rather than nanosecond counts).
type FileConfig struct {
	Port       string `toml:"port"`
	Baud       int    `toml:"baud"`
	DataBits   int    `toml:"data_bits"`
	Parity     string `toml:"parity"`
	StopBits   int    `toml:"stop_bits"`
	Timeout    string `toml:"timeout"`
	Wait       *bool  `toml:"wait"`
	WaitSettle string `toml:"wait_settle"`
	Verbose    *bool  `toml:"verbose"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.txmodem/config.toml when the home
// directory is accessible, empty otherwise.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".txmodem", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies file values to cfg, skipping any field whose
// flag was set explicitly.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("port", fc.Port, &cfg.Port)
	s.setString("parity", fc.Parity, &cfg.Parity)

	s.setInt("baud", fc.Baud, &cfg.Baud)
	s.setInt("data-bits", fc.DataBits, &cfg.DataBits)
	s.setInt("stop-bits", fc.StopBits, &cfg.StopBits)

	if err := s.setDuration("timeout", fc.Timeout, &cfg.Timeout); err != nil {
		return err
	}
	if err := s.setDuration("wait-settle", fc.WaitSettle, &cfg.WaitSettle); err != nil {
		return err
	}

	s.setBool("wait", fc.Wait, &cfg.Wait)
	s.setBool("verbose", fc.Verbose, &cfg.Verbose)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
