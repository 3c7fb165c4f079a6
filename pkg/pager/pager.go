// Package pager decides whether content is written straight to stdout or
// piped through an interactive pager, based on line count versus terminal
// height. The delivered bytes are identical either way.
package pager

import (
	"bufio"
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/arthur-debert/lv/pkg/errors"
	"github.com/arthur-debert/lv/pkg/logging"
	"github.com/arthur-debert/lv/pkg/ui"
)

// DefaultPagerArgs are passed to less: raw control characters through,
// quit if the content fits one screen, keep content on the terminal on exit.
var DefaultPagerArgs = []string{"-R", "-F", "-X"}

// Engine is the shared paging decision engine. The zero value is not usable;
// construct one with New.
type Engine struct {
	// Out receives all rendered output, direct or paged; a spawned pager
	// writes here too. Defaults to os.Stdout.
	Out io.Writer
	// IsTTY reports whether output is attached to an interactive terminal.
	// When false the pager is never spawned.
	IsTTY func() bool
	// Height returns the terminal height in rows.
	Height func() int
	// PagerName and PagerArgs form the pager command line.
	PagerName string
	PagerArgs []string
}

// New returns an Engine wired to the real terminal, honoring $PAGER.
func New() *Engine {
	name := os.Getenv("PAGER")
	args := []string{}
	if name == "" {
		name = "less"
	}
	if filepath.Base(name) == "less" {
		args = DefaultPagerArgs
	}
	return &Engine{
		Out:       os.Stdout,
		IsTTY:     func() bool { return ui.IsTTY(os.Stdout) },
		Height:    terminalHeight,
		PagerName: name,
		PagerArgs: args,
	}
}

func terminalHeight() int {
	_, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || height <= 0 {
		return 24
	}
	return height
}

// CountLines counts newline-delimited records in a file, streaming so large
// files are never loaded into memory. A final unterminated line counts.
// Unreadable files count as zero lines; that is a diagnostic, never fatal.
func CountLines(path string) int {
	logger := logging.GetLogger("pager")

	f, err := os.Open(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("error counting lines")
		return 0
	}
	defer func() { _ = f.Close() }()

	count := 0
	lastByte := byte('\n')
	buf := make([]byte, 64*1024)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			count += bytes.Count(buf[:n], []byte{'\n'})
			lastByte = buf[n-1]
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("error counting lines")
			return 0
		}
	}
	if lastByte != '\n' {
		count++
	}
	return count
}

// File renders a static file: straight copy when output is redirected or the
// content fits the terminal, otherwise through the pager with the file as its
// argument. A missing pager falls back to a straight copy.
func (e *Engine) File(path string) error {
	logger := logging.GetLogger("pager")

	if !e.IsTTY() {
		return e.copyFile(path)
	}

	if CountLines(path) <= e.Height() {
		return e.copyFile(path)
	}

	pagerPath, err := exec.LookPath(e.PagerName)
	if err != nil {
		logger.Warn().Str("pager", e.PagerName).Msg("pager not found, writing directly")
		return e.copyFile(path)
	}

	args := append(append([]string{}, e.PagerArgs...), path)
	logging.LogCommand(e.PagerName, args)
	cmd := exec.Command(pagerPath, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = e.Out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		// A pager that starts and then reports a non-zero exit is a
		// pager-side issue, not a rendering failure.
		logger.Warn().Err(err).Str("pager", e.PagerName).Msg("pager exited abnormally")
	}
	return nil
}

func (e *Engine) copyFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}
	defer func() { _ = f.Close() }()
	if _, err := io.Copy(e.Out, f); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot write %s", path)
	}
	return nil
}

// Reader renders a live byte stream whose total length is unknown. A fixed
// look-ahead of terminal-height lines is buffered to decide once between
// direct output and the pager; buffered bytes are replayed first so the
// delivered content is byte-for-byte identical either way.
func (e *Engine) Reader(r io.Reader) error {
	_, err := e.stream(r)
	return err
}

// stream is Reader plus the number of bytes delivered, which Command uses to
// distinguish "tool failed before producing anything" from partial output.
func (e *Engine) stream(r io.Reader) (int64, error) {
	logger := logging.GetLogger("pager")

	if !e.IsTTY() {
		return io.Copy(e.Out, r)
	}

	height := e.Height()
	br := bufio.NewReader(r)
	var lookahead bytes.Buffer
	lines := 0
	eof := false

	for lines <= height {
		chunk, err := br.ReadBytes('\n')
		lookahead.Write(chunk)
		if len(chunk) > 0 && chunk[len(chunk)-1] == '\n' {
			lines++
		} else if err == io.EOF && len(chunk) > 0 {
			lines++
		}
		if err == io.EOF {
			eof = true
			break
		}
		if err != nil {
			return int64(lookahead.Len()), errors.Wrap(err, errors.ErrFileAccess, "error reading stream")
		}
	}

	if eof && lines <= height {
		n, err := lookahead.WriteTo(e.Out)
		return n, err
	}

	pagerPath, err := exec.LookPath(e.PagerName)
	if err != nil {
		logger.Warn().Str("pager", e.PagerName).Msg("pager not found, writing directly")
		n, err := lookahead.WriteTo(e.Out)
		if err != nil {
			return n, err
		}
		rest, err := io.Copy(e.Out, br)
		return n + rest, err
	}

	logging.LogCommand(e.PagerName, e.PagerArgs)
	cmd := exec.Command(pagerPath, e.PagerArgs...)
	cmd.Stdout = e.Out
	cmd.Stderr = os.Stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrInternal, "cannot create pager pipe")
	}
	if err := cmd.Start(); err != nil {
		logger.Warn().Err(err).Str("pager", e.PagerName).Msg("pager failed to start, writing directly")
		n, werr := lookahead.WriteTo(e.Out)
		if werr != nil {
			return n, werr
		}
		rest, werr := io.Copy(e.Out, br)
		return n + rest, werr
	}

	// Feed the pager the buffered look-ahead, then the rest of the stream.
	// If the user quits the pager early its stdin closes under us; that is
	// a normal cancellation, not an error.
	delivered, werr := lookahead.WriteTo(stdin)
	if werr == nil {
		var rest int64
		rest, werr = io.Copy(stdin, br)
		delivered += rest
	}
	_ = stdin.Close()
	if werr != nil && !isBrokenPipe(werr) {
		_ = cmd.Wait()
		return delivered, errors.Wrap(werr, errors.ErrInternal, "error writing to pager")
	}

	if err := cmd.Wait(); err != nil {
		logger.Warn().Err(err).Str("pager", e.PagerName).Msg("pager exited abnormally")
	}
	return delivered, nil
}

// Command starts a producer process and pages its stdout. The producer is
// always reaped. A non-zero producer exit with no output delivered is the
// producer's own failure; a broken pipe caused by quitting the pager early
// is not.
func (e *Engine) Command(cmd *exec.Cmd) error {
	name := filepath.Base(cmd.Path)
	if len(cmd.Args) > 0 {
		name = filepath.Base(cmd.Args[0])
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "cannot create pipe for '%s'", name)
	}
	var producerStderr bytes.Buffer
	cmd.Stderr = &producerStderr

	logging.LogCommand(name, cmd.Args)
	if err := cmd.Start(); err != nil {
		if stderrors.Is(err, exec.ErrNotFound) {
			return errors.Newf(errors.ErrToolUnavailable, "'%s' command not found", name)
		}
		return errors.Wrapf(err, errors.ErrToolUnavailable, "failed to start '%s'", name)
	}

	delivered, streamErr := e.stream(stdout)

	// Closing our read end unblocks a producer still writing after the
	// pager was quit; it sees EPIPE and exits.
	_ = stdout.Close()
	waitErr := cmd.Wait()

	if streamErr != nil {
		return streamErr
	}
	if waitErr != nil {
		if killedByPipe(waitErr) {
			return nil
		}
		if delivered == 0 {
			return errors.Wrapf(waitErr, errors.ErrToolFailed,
				"'%s' failed: %s", name, strings.TrimSpace(producerStderr.String()))
		}
		logger := logging.GetLogger("pager")
		logger.Warn().Err(waitErr).Str("tool", name).Msg("tool exited abnormally after producing output")
	}
	return nil
}

func isBrokenPipe(err error) bool {
	return stderrors.Is(err, syscall.EPIPE) || stderrors.Is(err, io.ErrClosedPipe)
}

func killedByPipe(err error) bool {
	var exitErr *exec.ExitError
	if !stderrors.As(err, &exitErr) {
		return false
	}
	status, ok := exitErr.Sys().(syscall.WaitStatus)
	return ok && status.Signaled() && status.Signal() == syscall.SIGPIPE
}
