package server

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	drepo "SentiPulse/internal/domain/repository"
	"SentiPulse/internal/usecase"
	"SentiPulse/pkg/config"
	xhttp "SentiPulse/pkg/http"
	pkgkafka "SentiPulse/pkg/kafka"
	applogger "SentiPulse/pkg/logger"
	pkgqueue "SentiPulse/pkg/queue"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	refresh     *usecase.RefreshLoop
	consumer    *pkgkafka.Consumer
	kh          pkgkafka.MessageHandler
	publisher   drepo.SignalPublisher
	queue       *pkgqueue.RedisQueue
	httpServer  *xhttp.Server
	httpHandler xhttp.Handler
}

// New creates a new App instance with all dependencies. consumer, kh and
// publisher may be nil when Kafka is disabled.
func New(
	cfg *config.Config,
	refresh *usecase.RefreshLoop,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	publisher drepo.SignalPublisher,
) *App {
	return &App{
		cfg:       cfg,
		refresh:   refresh,
		consumer:  consumer,
		kh:        kh,
		publisher: publisher,
	}
}

// SetHTTPHandler allows DI to inject an HTTP handler.
func (a *App) SetHTTPHandler(h xhttp.Handler) { a.httpHandler = h }

// SetRefreshQueue allows DI to inject the Redis refresh queue. May be nil.
func (a *App) SetRefreshQueue(q *pkgqueue.RedisQueue) { a.queue = q }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// init app logger (console info by default)
	l, _ := applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})

	a.httpServer = xhttp.NewServer(a.httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	// Start refresh loop
	if a.refresh != nil {
		a.refresh.SetLogger(l)
		a.refresh.Start(ctx)
		l.Info("refresh loop started", applogger.Strings("symbols", a.cfg.Pipeline.Symbols))
	}

	// Start consumer if configured
	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		go func() {
			if err := a.consumer.Start(); err != nil {
				l.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		l.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	// Start refresh queue if configured
	if a.queue != nil {
		if err := a.queue.Start(); err != nil {
			l.Error("refresh queue start error", applogger.Error(err))
		} else {
			a.queue.StartRetryProcessor()
			l.Info("refresh queue started")
		}
	}

	// Start HTTP server
	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	l, err := applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})
	if err != nil {
		log.Printf("failed to create logger: %v", err)
		return err
	}
	l.Info("shutting down...")

	// Stop refresh loop before the transports it depends on
	if a.refresh != nil {
		a.refresh.Stop()
	}

	// Shutdown HTTP server
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if a.httpServer != nil {
		if err := a.httpServer.Stop(shutdownCtx); err != nil {
			l.Error("http shutdown error", applogger.Error(err))
		}
	}

	// Stop refresh queue
	if a.queue != nil {
		if err := a.queue.Stop(ctx); err != nil {
			l.Warn("refresh queue stop error", applogger.Error(err))
		}
	}

	// Stop consumer
	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			l.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	// Close publisher last so in-flight reports still go out
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			l.Warn("publisher close error", applogger.Error(err))
		}
	}

	l.Info("shutdown complete")
	return nil
}
