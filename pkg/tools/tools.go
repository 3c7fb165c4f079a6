// Package tools runs the external viewing tools lv shells out to. Every
// non-interactive invocation is bounded by a timeout so a wedged tool can
// never hang the process.
package tools

import (
	"bytes"
	"context"
	stderrors "errors"
	"os/exec"
	"time"

	"github.com/arthur-debert/lv/pkg/errors"
	"github.com/arthur-debert/lv/pkg/logging"
)

// Timeout classes for external tools, by how much work they do.
const (
	// TimeoutQuick bounds fast format/validate utilities: jq, xmllint, yq.
	TimeoutQuick = 30 * time.Second
	// TimeoutProcessing bounds tools that analyze file content: ffprobe,
	// unzip/tar listing.
	TimeoutProcessing = 60 * time.Second
	// TimeoutRendering bounds tools that render or transform content:
	// timg, chafa, pdftotext, hexdump.
	TimeoutRendering = 45 * time.Second
	// TimeoutClassify bounds tools run during predicate evaluation ("file").
	// Predicates must stay cheap, so this is deliberately short.
	TimeoutClassify = 1 * time.Second
)

// Available reports whether the named tool can be found on PATH.
func Available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// Output runs a tool with the given timeout and returns its stdout.
// The error, if any, carries one of the tool error codes.
func Output(timeout time.Duration, name string, args ...string) ([]byte, error) {
	logger := logging.GetLogger("tools")

	if !Available(name) {
		return nil, errors.Newf(errors.ErrToolUnavailable, "'%s' command not found", name)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logging.LogCommand(name, args)
	cmd := exec.CommandContext(ctx, name, args...)
	// The context kill only reaches the direct child. A forked grandchild
	// can keep the stdout/stderr pipes open past the deadline; WaitDelay
	// makes Run abandon pipe reads instead of waiting out its lifetime.
	cmd.WaitDelay = time.Second
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		logger.Warn().Str("tool", name).Dur("timeout", timeout).Msg("tool timed out")
		return nil, errors.Newf(errors.ErrToolTimeout, "'%s' timed out after %s", name, timeout)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			return stdout.Bytes(), errors.Wrapf(err, errors.ErrToolFailed,
				"'%s' exited with code %d: %s", name, exitErr.ExitCode(), stderr.String())
		}
		return nil, errors.Wrapf(err, errors.ErrToolUnavailable, "failed to start '%s'", name)
	}

	return stdout.Bytes(), nil
}

// Run runs a tool with the given timeout, discarding its output. Used for
// pure validation calls like `jq empty` or `xmllint --noout`.
func Run(timeout time.Duration, name string, args ...string) error {
	_, err := Output(timeout, name, args...)
	return err
}
