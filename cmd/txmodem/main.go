package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/modemtools/txmodem/internal/adapters/fs"
	serialAdapter "github.com/modemtools/txmodem/internal/adapters/serial"
	"github.com/modemtools/txmodem/internal/cliconfig"
	"github.com/modemtools/txmodem/pkg/log"
	"github.com/modemtools/txmodem/pkg/xmodem"
)

const helpDescription = `
Send a single file to an XMODEM or XMODEM-CRC receiver over a serial link.

The receiver picks the integrity mode during the handshake: a NAK selects
the classic 8-bit checksum, a 'C' selects CRC-16. Blocks are retried on
NAK or timeout; an explicit CAN from the receiver aborts the transfer.

Configuration is read from flags, TXMODEM_* environment variables, and an
optional TOML file (default $HOME/.txmodem/config.toml), in that order of
precedence.
`

var exampleUsage = strings.TrimSpace(`
  txmodem --port /dev/ttyUSB0 --file firmware.bin
  txmodem --port COM3 --baud 9600 --timeout 30s --file image.hex
  txmodem --list
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string
	var listPorts bool

	root := &cobra.Command{
		Use:     "txmodem",
		Short:   "Send a file over a serial link using XMODEM or XMODEM-CRC",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			if listPorts {
				return runList(cmd)
			}

			// Build set of changed flags so file/env values never override
			// what was given explicitly.
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}
			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			return runSend(cmd.Context(), cfg)
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.txmodem/config.toml)")
	root.Flags().BoolVarP(&listPorts, "list", "l", false, "list the available serial port devices and exit")

	root.Flags().StringVarP(&cfg.Port, "port", "p", cfg.Port, "serial port device to transmit on")
	root.Flags().IntVarP(&cfg.Baud, "baud", "b", cfg.Baud, "baud rate for the serial port device")
	root.Flags().IntVar(&cfg.DataBits, "data-bits", cfg.DataBits, "data bits per word (5-8)")
	root.Flags().StringVar(&cfg.Parity, "parity", cfg.Parity, "parity: none, even, odd, mark, space")
	root.Flags().IntVar(&cfg.StopBits, "stop-bits", cfg.StopBits, "stop bits (1 or 2)")
	root.Flags().DurationVarP(&cfg.Timeout, "timeout", "t", cfg.Timeout, "per-read communication timeout")

	root.Flags().StringVarP(&cfg.File, "file", "f", cfg.File, "file to transfer")
	root.Flags().BoolVar(&cfg.Wait, "wait", cfg.Wait, "wait for the file to exist and stop growing before sending")
	root.Flags().DurationVar(&cfg.WaitSettle, "wait-settle", cfg.WaitSettle, "quiet window --wait requires before sending")
	root.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "enable debug logging")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		logger := cliconfig.Logger(false)
		logger.Error().Err(err).Msg("txmodem")
		os.Exit(1)
	}
}

// runList enumerates the serial devices on this host.
func runList(cmd *cobra.Command) error {
	names, err := serialAdapter.ListPorts()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no serial ports found")
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}

// runSend performs the transfer described by cfg.
func runSend(ctx context.Context, cfg cliconfig.Config) error {
	logger := cliconfig.Logger(cfg.Verbose)

	if cfg.Wait {
		logger.Info().Str("file", cfg.File).Msg("waiting for file to settle")
		if err := fs.WaitForFile(ctx, cfg.File, cfg.WaitSettle); err != nil {
			return fmt.Errorf("wait for %s: %w", cfg.File, err)
		}
	}

	sender, err := xmodem.New(xmodem.Config{
		Device:      cfg.Port,
		BaudRate:    cfg.Baud,
		DataBits:    cfg.DataBits,
		Parity:      cfg.Parity,
		StopBits:    cfg.StopBits,
		ReadTimeout: cfg.Timeout,
	},
		xmodem.WithLogger(log.NewZerologAdapterWithLogger(logger)),
		xmodem.WithEventHandler(&progressReporter{logger: logger}),
	)
	if err != nil {
		return err
	}

	logger.Info().
		Str("port", cfg.Port).
		Int("baud", cfg.Baud).
		Str("file", cfg.File).
		Msg("starting transfer")

	return sender.SendFile(ctx, cfg.File)
}

// progressReporter logs transfer progress through zerolog.
type progressReporter struct {
	logger zerolog.Logger
}

func (r *progressReporter) OnInitialization(e xmodem.InitializationEvent) {
	r.logger.Info().
		Str("mode", e.Mode.String()).
		Int64("bytes", e.BytesTotal).
		Msg("receiver ready")
}

func (r *progressReporter) OnBlockSent(e xmodem.BlockSentEvent) {
	evt := r.logger.Debug()
	if e.BytesSent == e.BytesTotal {
		evt = r.logger.Info()
	}
	percent := 100.0
	if e.BytesTotal > 0 {
		percent = float64(e.BytesSent) / float64(e.BytesTotal) * 100
	}
	evt.
		Int("block", int(e.BlockNumber)).
		Int64("sent", e.BytesSent).
		Int64("total", e.BytesTotal).
		Str("progress", fmt.Sprintf("%.1f%%", percent)).
		Msg("block acknowledged")
}

func (r *progressReporter) OnTermination(e xmodem.TerminationEvent) {
	if !e.Success {
		r.logger.Error().
			Int("blocks", e.BlocksSent).
			Int64("bytes", e.BytesSent).
			Msg("transfer failed")
		return
	}
	r.logger.Info().
		Int("blocks", e.BlocksSent).
		Int64("bytes", e.BytesSent).
		Dur("elapsed", e.Elapsed).
		Msg("transfer complete")
}
