// Command miniapp talks to the course platform API with the identity a Mini App
// session would use. Results are printed to stdout as JSON.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"course-miniapp/internal/common/config"
	apperrors "course-miniapp/internal/common/errors"
	"course-miniapp/internal/common/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load: %v\n", err)
		os.Exit(2)
	}
	logger.Init("course-miniapp", cfg.Debug)

	if err := run(ctx, cfg, os.Args[1:], os.Stdout); err != nil {
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var usage *usageError
	if errors.As(err, &usage) {
		fmt.Fprintln(os.Stderr, usage.Error())
		fmt.Fprint(os.Stderr, usageText())
		return 2
	}

	ev := logger.Error().Err(err)
	if appErr, ok := apperrors.AsAppError(err); ok {
		ev = ev.Str("code", string(appErr.Code)).Int("status", appErr.Status)
		if appErr.RequestID != "" {
			ev = ev.Str("request_id", appErr.RequestID)
		}
	}
	ev.Msg("Command failed")
	return 1
}
