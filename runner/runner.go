package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultShutdownTimeout = 30 * time.Second

var (
	ErrServicePanic    = errors.New("runner: service panicked")
	ErrServiceFailed   = errors.New("runner: service failed to start")
	ErrServiceStop     = errors.New("runner: service failed to stop")
	ErrShutdownTimeout = errors.New("runner: shutdown timeout exceeded")
)

// Service is a long-running component. Start must return once the service is
// ready and keep serving in the background until Stop is called.
type Service interface {
	Start(ctx context.Context) error
	Stop() error
	Name() string
}

type Runner struct {
	services        []Service
	shutdownTimeout time.Duration
	signals         []os.Signal
	logger          zerolog.Logger
}

type Option func(*Runner)

func New(opts ...Option) *Runner {
	runner := &Runner{
		services:        make([]Service, 0),
		shutdownTimeout: defaultShutdownTimeout,
		signals:         []os.Signal{os.Interrupt, syscall.SIGTERM},
		logger:          log.Logger,
	}

	for _, opt := range opts {
		opt(runner)
	}

	return runner
}

// WithService registers svc. Services start in registration order and stop
// in reverse.
func WithService(svc Service) Option {
	return func(r *Runner) {
		r.services = append(r.services, svc)
	}
}

func WithShutdownTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.shutdownTimeout = d
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithSignals replaces the signals that trigger shutdown. No signals means
// only ctx cancellation does.
func WithSignals(signals ...os.Signal) Option {
	return func(r *Runner) {
		r.signals = signals
	}
}

// Run starts every service, blocks until ctx is done or a shutdown signal
// arrives, then stops them. A start failure stops the services already
// running and is returned.
func (r *Runner) Run(ctx context.Context) error {
	if len(r.signals) > 0 {
		var stop context.CancelFunc

		ctx, stop = signal.NotifyContext(ctx, r.signals...)
		defer stop()
	}

	started := make([]Service, 0, len(r.services))

	for _, svc := range r.services {
		r.logger.Info().Str("service_name", svc.Name()).Msg("Starting service")

		if err := startService(ctx, svc); err != nil {
			r.logger.Error().Err(err).Str("service_name", svc.Name()).Msg("Service failed to start")

			return errors.Join(err, r.shutdown(started))
		}

		started = append(started, svc)
	}

	r.logger.Info().
		Int("pid", os.Getpid()).
		Int("services", len(started)).
		Msg("All services started, waiting for shutdown signal")

	<-ctx.Done()
	r.logger.Warn().Msg("Shutdown signal received")

	if err := r.shutdown(started); err != nil {
		return err
	}

	r.logger.Info().Msg("Graceful shutdown completed")

	return nil
}

func startService(ctx context.Context, svc Service) (err error) { //nolint:nonamedreturns
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %s: %v", ErrServicePanic, svc.Name(), rec)
		}
	}()

	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrServiceFailed, svc.Name(), err)
	}

	return nil
}

func (r *Runner) shutdown(services []Service) error {
	if len(services) == 0 {
		return nil
	}

	done := make(chan error, 1)

	go func() {
		var errs []error

		for _, svc := range slices.Backward(services) {
			r.logger.Info().Str("service_name", svc.Name()).Msg("Stopping service")

			if err := svc.Stop(); err != nil {
				r.logger.Error().Err(err).Str("service_name", svc.Name()).Msg("Service failed to stop")
				errs = append(errs, fmt.Errorf("%w: %s: %w", ErrServiceStop, svc.Name(), err))

				continue
			}

			r.logger.Info().Str("service_name", svc.Name()).Msg("Service stopped")
		}

		done <- errors.Join(errs...)
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(r.shutdownTimeout):
		r.logger.Error().
			Dur("timeout", r.shutdownTimeout).
			Msg("Shutdown timeout exceeded, some services may not have stopped cleanly")

		return ErrShutdownTimeout
	}
}
