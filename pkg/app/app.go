// Package app holds the glue shared by the smbios commands
package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// TerminateSignals cancel the context returned by WithSignal
var TerminateSignals = []os.Signal{
	syscall.SIGTERM, syscall.SIGHUP, syscall.SIGINT,
	syscall.SIGQUIT,
}

// Initialize sets up the global logger. Logs go to stderr so they never
// mix with the decode output.
func Initialize(debug bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// WithSignal returns a context that is cancelled on the first
// terminate signal
func WithSignal(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	ch := make(chan os.Signal, 1)

	signal.Notify(ch, TerminateSignals...)

	go func() {
		defer signal.Stop(ch)
		select {
		case sig := <-ch:
			log.Info().Str("signal", sig.String()).Msg("terminating")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
