package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ardnew/javpy/cli"
	"github.com/ardnew/javpy/lang"
	"github.com/ardnew/javpy/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		// Diagnostics about the user's program are printed as-is, with the
		// offending source line; everything else is logged.
		var diag *lang.Error
		if errors.As(err, &diag) {
			fmt.Fprintln(os.Stderr, diag)
			log.Debug("run failed", slog.Any("error", diag))
		} else {
			log.Error("run failed", slog.Any("error", err))
		}

		os.Exit(1)
	}
}
