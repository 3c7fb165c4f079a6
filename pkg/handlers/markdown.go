package handlers

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/arthur-debert/lv/pkg/logging"
	"github.com/arthur-debert/lv/pkg/pager"
	"github.com/arthur-debert/lv/pkg/ui"
)

// MaxMarkdownSizeBytes caps the file size handed to the renderer.
const MaxMarkdownSizeBytes = 10 * 1024 * 1024

var markdownExtensions = []string{".md", ".markdown", ".mdown", ".mkd", ".mdx"}

// MarkdownHandler renders markdown to styled terminal output with glamour.
// Redirected output gets the raw source so pipes see real markdown.
type MarkdownHandler struct {
	pager    *pager.Engine
	fallback *DefaultHandler
	options  map[string]interface{}
}

// NewMarkdownHandler creates a markdown handler.
func NewMarkdownHandler(options map[string]interface{}, env *Env) *MarkdownHandler {
	return &MarkdownHandler{pager: env.Pager, fallback: env.Fallback, options: options}
}

// Name returns the handler's configuration key.
func (h *MarkdownHandler) Name() string { return "markdown" }

// CanHandle matches by markdown extensions only; markdown has no reliable
// content signature.
func (h *MarkdownHandler) CanHandle(path string, info fs.FileInfo) bool {
	return info.Mode().IsRegular() && hasExt(path, markdownExtensions...)
}

// Handle renders the document through the pager, falling back to the raw
// source when rendering fails or output is not a terminal.
func (h *MarkdownHandler) Handle(path string) error {
	logger := logging.GetLogger("handlers.markdown")

	info, err := os.Stat(path)
	if err != nil {
		logger.Warn().Err(err).Msg("cannot stat file, showing raw content")
		return h.fallback.Handle(path)
	}
	if info.Size() == 0 {
		fmt.Fprintln(h.pager.Out, ui.EmptyMarker("Markdown"))
		return nil
	}
	if info.Size() > MaxMarkdownSizeBytes {
		logger.Warn().Int64("size", info.Size()).Msg("file exceeds Markdown size limit, showing raw content")
		return h.fallback.Handle(path)
	}

	if ui.DetectFormat(os.Stdout) != ui.FormatTerminal {
		return h.fallback.Handle(path)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		logger.Warn().Err(err).Msg("cannot read file, showing raw content")
		return h.fallback.Handle(path)
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		logger.Warn().Err(err).Msg("markdown renderer unavailable, showing raw content")
		return h.fallback.Handle(path)
	}
	rendered, err := renderer.Render(string(source))
	if err != nil {
		logger.Warn().Err(err).Msg("markdown rendering failed, showing raw content")
		return h.fallback.Handle(path)
	}

	return h.pager.Reader(strings.NewReader(rendered))
}

// Priority returns the default priority for markdown.
func (h *MarkdownHandler) Priority() int { return 35 }
