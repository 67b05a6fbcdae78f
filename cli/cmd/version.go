package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/javpy/lang"
	"github.com/ardnew/javpy/pkg"
)

// Version prints the program and language versions.
type Version struct{}

// Run executes the version command.
func (Version) Run(ctx context.Context) error {
	_, err := fmt.Fprintf(stdout(ctx), "%s %s (core %s)\n",
		pkg.Name, pkg.Version, lang.LanguageVersion)
	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
