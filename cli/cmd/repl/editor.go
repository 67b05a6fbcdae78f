package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/javpy/lang"
	"github.com/ardnew/javpy/log"
	"github.com/ardnew/javpy/pkg"
)

const defaultEditor = "vi"

// ErrEditDeclined is returned when the user declines to fix a program that
// failed to compile.
var ErrEditDeclined = errors.New("decline edit")

// editTemplate seeds the editor buffer.
const editTemplate = "<$> Statements below run in the current session when the editor exits. <$!>\n"

// editCommand implements [tea.ExecCommand] for composing a multi-line
// program in the user's $EDITOR. The buffer is compiled when the editor
// exits; on a compile error the user is asked whether to edit again. The
// compiled program is left in prog for the session to run.
type editCommand struct {
	ctxFunc func() context.Context
	logger  log.Logger
	opts    []lang.Option
	content string
	prog    *lang.Program
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-compile-retry loop. It returns [ErrEditDeclined] if
// the user declines to re-edit after a compile error. An empty buffer leaves
// prog nil.
func (c *editCommand) Run() error {
	ctx := c.ctxFunc()

	f, err := os.CreateTemp(os.TempDir(), pkg.Name+"-repl-*"+pkg.Extension)
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	f.Close()

	content := c.content
	if content == "" {
		content = editTemplate
	}

	for {
		err := os.WriteFile(tmpPath, []byte(content), 0o600)
		if err != nil {
			return err
		}

		err = runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(tmpPath)
		if err != nil {
			return err
		}

		content = string(data)

		prog, err := lang.Compile(ctx, content, c.opts...)
		c.logger.TraceContext(ctx, "editor compile attempt",
			slog.Int("content_length", len(content)),
			slog.Bool("success", err == nil),
		)

		if err == nil {
			if !prog.Empty() {
				c.prog = prog
			}

			return nil
		}

		fmt.Fprintf(c.stderr, "\n%s\n", err)
		fmt.Fprint(c.stdout, "Re-edit? [Y/n] ")

		if !confirm(c.stdin) {
			return ErrEditDeclined
		}
	}
}

// confirm reads a yes/no answer, defaulting to yes.
func confirm(r io.Reader) bool {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "n", "no":
		return false
	default:
		return true
	}
}

// runEditor launches the user's editor on the file at path.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
