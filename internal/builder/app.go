package builder

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/futig/realtor-bot/internal/telegram"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

// App represents the application with all its components. Either the HTTP
// server or the bot is set, depending on the binary.
type App struct {
	server  *http.Server
	bot     telegram.Bot
	storage *storage
	logger  *zap.Logger
}

// Run starts the application and blocks until a shutdown signal or a fatal
// error.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)

	if a.server != nil {
		go func() {
			a.logger.Info("Starting HTTP server", zap.String("addr", a.server.Addr))
			if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()
	}

	if a.bot != nil {
		a.logger.Info("Starting telegram bot")
		if err := a.bot.Start(ctx); err != nil {
			a.storage.close()
			return err
		}
	}

	select {
	case err := <-errChan:
		a.logger.Error("Server error", zap.Error(err))
		a.storage.close()
		return err
	case <-ctx.Done():
		a.logger.Info("Received shutdown signal")
	}

	return a.shutdown()
}

// shutdown gracefully shuts down the application
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error

	if a.bot != nil {
		a.logger.Info("Stopping telegram bot")
		if err := a.bot.Stop(); err != nil {
			a.logger.Error("Bot shutdown error", zap.Error(err))
			errs = append(errs, err)
		}
	}

	if a.server != nil {
		a.logger.Info("Shutting down server gracefully")
		if err := a.server.Shutdown(ctx); err != nil {
			a.logger.Error("Server shutdown error", zap.Error(err))
			errs = append(errs, err)
		}
	}

	a.logger.Info("Closing storage")
	a.storage.close()

	a.logger.Info("Application stopped gracefully")
	_ = a.logger.Sync()
	return errors.Join(errs...)
}
