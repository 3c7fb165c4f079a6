package handlers

import (
	"io/fs"
	"os"
	"os/exec"

	"github.com/arthur-debert/lv/pkg/logging"
	"github.com/arthur-debert/lv/pkg/pager"
	"github.com/arthur-debert/lv/pkg/ui"
)

// DirectoryHandler lists directories with ls, paged when the listing is
// taller than the terminal.
type DirectoryHandler struct {
	pager   *pager.Engine
	options map[string]interface{}
}

// NewDirectoryHandler creates a directory handler.
func NewDirectoryHandler(options map[string]interface{}, env *Env) *DirectoryHandler {
	return &DirectoryHandler{pager: env.Pager, options: options}
}

// Name returns the handler's configuration key.
func (h *DirectoryHandler) Name() string { return "directory" }

// CanHandle reports whether the path is a directory.
func (h *DirectoryHandler) CanHandle(path string, info fs.FileInfo) bool {
	return info.IsDir()
}

// Handle lists the directory with ls -la, falling back to a plain in-process
// listing when ls is unavailable.
func (h *DirectoryHandler) Handle(path string) error {
	logger := logging.GetLogger("handlers.directory")

	args := []string{"-la"}
	if ui.DetectFormat(os.Stdout) == ui.FormatTerminal {
		args = append(args, "--color=always")
	}
	args = append(args, path)

	cmd := exec.Command("ls", args...)
	if err := h.pager.Command(cmd); err != nil {
		logger.Warn().Err(err).Msg("ls failed, using built-in listing")
		return h.listFallback(path)
	}
	return nil
}

func (h *DirectoryHandler) listFallback(path string) error {
	return listEntries(h.pager.Out, path)
}

// Priority returns the highest default priority; directories always win.
func (h *DirectoryHandler) Priority() int { return 100 }
