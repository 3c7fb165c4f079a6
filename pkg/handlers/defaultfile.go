package handlers

import (
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/arthur-debert/lv/pkg/pager"
)

// DefaultHandler is the fallback of last resort: it streams or pages the raw
// bytes of any path. Every other handler delegates here when its own tool
// chain cannot serve.
type DefaultHandler struct {
	pager *pager.Engine
}

// NewDefaultHandler creates the fallback handler.
func NewDefaultHandler(p *pager.Engine) *DefaultHandler {
	return &DefaultHandler{pager: p}
}

// Name returns the handler's configuration key.
func (h *DefaultHandler) Name() string { return "default" }

// CanHandle always reports true: any existing path can be shown raw.
func (h *DefaultHandler) CanHandle(path string, info fs.FileInfo) bool {
	return true
}

// Handle pages or streams the raw content of the path. Directories only end
// up here when the directory handler is disabled; they get a plain listing.
func (h *DefaultHandler) Handle(path string) error {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return h.listDirectory(path)
	}
	return h.pager.File(path)
}

func (h *DefaultHandler) listDirectory(path string) error {
	return listEntries(h.pager.Out, path)
}

// listEntries is the plain in-process directory listing shared by the
// directory and default handlers when ls cannot serve. Directories get a
// trailing slash.
func listEntries(out io.Writer, path string) error {
	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		if _, err := fmt.Fprintln(out, name); err != nil {
			return err
		}
	}
	return nil
}

// Priority returns the lowest priority so the fallback always runs last.
func (h *DefaultHandler) Priority() int { return 0 }
