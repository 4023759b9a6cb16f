// Package cliconfig holds the txmodem CLI configuration: defaults,
// validation, and the file/env/flag precedence rules. Flags win over
// environment variables, which win over the config file, which wins over
// defaults.
package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/modemtools/txmodem/pkg/xmodem"
)

// Config holds CLI configuration for txmodem.
type Config struct {
	// Port is the serial device to transmit on.
	Port string

	Baud     int
	DataBits int
	Parity   string
	StopBits int

	// Timeout bounds each single-byte read during the transfer.
	Timeout time.Duration

	// File is the file to transfer.
	File string

	// Wait blocks until File exists and has stopped growing before the
	// transfer starts.
	Wait bool

	// WaitSettle is the quiet window Wait requires before proceeding.
	WaitSettle time.Duration

	// Verbose enables debug-level logging.
	Verbose bool
}

// DefaultConfig returns a Config with the conventional line defaults.
func DefaultConfig() Config {
	return Config{
		Baud:       xmodem.DefaultBaudRate,
		DataBits:   xmodem.DefaultDataBits,
		Parity:     xmodem.DefaultParity,
		StopBits:   xmodem.DefaultStopBits,
		Timeout:    xmodem.DefaultReadTimeout,
		WaitSettle: 2 * time.Second,
	}
}

// Validate checks the configuration for a transfer run.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.File == "" {
		return fmt.Errorf("file is required")
	}
	if c.Baud <= 0 {
		return fmt.Errorf("baud rate must be positive")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.Wait && c.WaitSettle <= 0 {
		return fmt.Errorf("wait settle window must be positive")
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag
// precedence. A value is applied only when the corresponding flag was not
// set explicitly.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration from string if valid and flag
// not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setIntFromString parses a string to int and sets the destination if
// valid. Used for environment variables.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
