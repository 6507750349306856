package main

import (
	"context"
	"fmt"
	goflags "github.com/jessevdk/go-flags"
	"github.com/lippserd/mgnrega-api/internal/command"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	ExitSuccess = 0
	ExitFailure = 1
)

// checkTimeout bounds the diagnostic connection on startup.
const checkTimeout = 10 * time.Second

// exitOnPanic reports a panic on stderr together with the stack trace of its error and exits with 1.
func exitOnPanic() {
	r := recover()
	if r == nil {
		return
	}

	err, ok := r.(error)
	if !ok {
		err = errors.Errorf("%v", r)
	}
	if _, traced := err.(interface{ StackTrace() errors.StackTrace }); !traced {
		err = errors.WithStack(err)
	}

	_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)

	os.Exit(ExitFailure)
}

func main() {
	os.Exit(run())
}

func run() int {
	defer exitOnPanic()

	cmd, err := command.New()
	if err != nil {
		if goflags.WroteHelp(err) {
			return ExitSuccess
		}
		panic(err)
	}

	logger := cmd.Logger
	defer logger.Sync()

	logger.Info("Starting MGNREGA stats API")

	db, err := cmd.Database()
	if err != nil {
		panic(err)
	}
	defer db.Close()
	{
		logger.Info("Connecting to database")
		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		// Requests report their own database errors, so serve regardless.
		if err := db.Check(ctx); err != nil {
			logger.Errorw("Database connection failed", zap.Error(err))
		} else {
			logger.Info("Connected to database")
		}
		cancel()
	}

	srv := cmd.Server(db)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		logger.Infow("Listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "can't serve HTTP")
		}

		return nil
	})

	g.Go(func() error {
		select {
		case <-ctx.Done():
			return nil
		case s := <-sig:
			logger.Infow("Exiting due to signal", zap.String("signal", s.String()))
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cmd.Config.HTTP.ShutdownTimeout)
		defer cancel()

		return errors.Wrap(srv.Shutdown(shutdownCtx), "can't shut down HTTP server")
	})

	if err := g.Wait(); err != nil {
		panic(err)
	}

	logger.Info("Stopped")

	return ExitSuccess
}
