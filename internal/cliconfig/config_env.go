package cliconfig

import "os"

// ApplyEnvConfig applies configuration from TXMODEM_* environment
// variables, skipping any field whose flag was set explicitly. Returns an
// error when a variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("port", os.Getenv("TXMODEM_PORT"), &cfg.Port)
	s.setString("parity", os.Getenv("TXMODEM_PARITY"), &cfg.Parity)

	if err := s.setIntFromString("baud", os.Getenv("TXMODEM_BAUD"), &cfg.Baud); err != nil {
		return err
	}
	if err := s.setIntFromString("data-bits", os.Getenv("TXMODEM_DATA_BITS"), &cfg.DataBits); err != nil {
		return err
	}
	if err := s.setIntFromString("stop-bits", os.Getenv("TXMODEM_STOP_BITS"), &cfg.StopBits); err != nil {
		return err
	}

	if err := s.setDuration("timeout", os.Getenv("TXMODEM_TIMEOUT"), &cfg.Timeout); err != nil {
		return err
	}
	if err := s.setDuration("wait-settle", os.Getenv("TXMODEM_WAIT_SETTLE"), &cfg.WaitSettle); err != nil {
		return err
	}

	s.setBoolFromString("wait", os.Getenv("TXMODEM_WAIT"), &cfg.Wait)
	s.setBoolFromString("verbose", os.Getenv("TXMODEM_VERBOSE"), &cfg.Verbose)

	return nil
}
