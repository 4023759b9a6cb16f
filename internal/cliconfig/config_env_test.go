package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	t.Setenv("TXMODEM_PORT", "/dev/ttyUSB2")
	t.Setenv("TXMODEM_BAUD", "19200")
	t.Setenv("TXMODEM_DATA_BITS", "7")
	t.Setenv("TXMODEM_PARITY", "odd")
	t.Setenv("TXMODEM_STOP_BITS", "2")
	t.Setenv("TXMODEM_TIMEOUT", "25s")
	t.Setenv("TXMODEM_WAIT", "true")
	t.Setenv("TXMODEM_WAIT_SETTLE", "4s")
	t.Setenv("TXMODEM_VERBOSE", "1")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, nil); err != nil {
		t.Fatalf("ApplyEnvConfig: %v", err)
	}

	if cfg.Port != "/dev/ttyUSB2" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.Baud != 19200 {
		t.Errorf("Baud = %d", cfg.Baud)
	}
	if cfg.DataBits != 7 {
		t.Errorf("DataBits = %d", cfg.DataBits)
	}
	if cfg.Parity != "odd" {
		t.Errorf("Parity = %q", cfg.Parity)
	}
	if cfg.StopBits != 2 {
		t.Errorf("StopBits = %d", cfg.StopBits)
	}
	if cfg.Timeout != 25*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if !cfg.Wait {
		t.Error("Wait not applied")
	}
	if cfg.WaitSettle != 4*time.Second {
		t.Errorf("WaitSettle = %v", cfg.WaitSettle)
	}
	if !cfg.Verbose {
		t.Error("Verbose not applied")
	}
}

func TestApplyEnvConfigFlagPrecedence(t *testing.T) {
	t.Setenv("TXMODEM_PORT", "/dev/env-port")
	t.Setenv("TXMODEM_BAUD", "9600")

	cfg := DefaultConfig()
	cfg.Port = "/dev/flag-port"
	cfg.Baud = 230400
	changed := map[string]bool{"port": true, "baud": true}

	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("ApplyEnvConfig: %v", err)
	}

	if cfg.Port != "/dev/flag-port" {
		t.Errorf("flag port overridden: %q", cfg.Port)
	}
	if cfg.Baud != 230400 {
		t.Errorf("flag baud overridden: %d", cfg.Baud)
	}
}

func TestApplyEnvConfigInvalidValues(t *testing.T) {
	t.Setenv("TXMODEM_BAUD", "fast")
	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, nil); err == nil {
		t.Fatal("expected parse error for TXMODEM_BAUD")
	}

	t.Setenv("TXMODEM_BAUD", "")
	t.Setenv("TXMODEM_TIMEOUT", "whenever")
	cfg = DefaultConfig()
	if err := ApplyEnvConfig(&cfg, nil); err == nil {
		t.Fatal("expected parse error for TXMODEM_TIMEOUT")
	}
}

func TestApplyEnvConfigUnsetLeavesDefaults(t *testing.T) {
	for _, k := range []string{
		"TXMODEM_PORT", "TXMODEM_PARITY", "TXMODEM_BAUD", "TXMODEM_DATA_BITS",
		"TXMODEM_STOP_BITS", "TXMODEM_TIMEOUT", "TXMODEM_WAIT",
		"TXMODEM_WAIT_SETTLE", "TXMODEM_VERBOSE",
	} {
		t.Setenv(k, "")
	}

	cfg := DefaultConfig()
	want := cfg
	if err := ApplyEnvConfig(&cfg, nil); err != nil {
		t.Fatalf("ApplyEnvConfig: %v", err)
	}
	if cfg != want {
		t.Errorf("config changed with no env set: %+v", cfg)
	}
}
