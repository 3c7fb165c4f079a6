package handlers

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"os/exec"

	"github.com/arthur-debert/lv/pkg/logging"
	"github.com/arthur-debert/lv/pkg/pager"
	"github.com/arthur-debert/lv/pkg/tools"
	"github.com/arthur-debert/lv/pkg/ui"
)

// MaxJSONSizeBytes caps the file size handed to jq.
const MaxJSONSizeBytes = 10 * 1024 * 1024

// JSONHandler pretty-prints JSON through jq.
type JSONHandler struct {
	pager    *pager.Engine
	fallback *DefaultHandler
	options  map[string]interface{}
}

// NewJSONHandler creates a JSON handler.
func NewJSONHandler(options map[string]interface{}, env *Env) *JSONHandler {
	return &JSONHandler{pager: env.Pager, fallback: env.Fallback, options: options}
}

// Name returns the handler's configuration key.
func (h *JSONHandler) Name() string { return "json" }

// CanHandle matches by .json extension, or by a content prefix whose first
// non-space byte is '{' or '['. A zero-byte .json file is a positive match
// so Handle can short-circuit to the empty marker; zero-byte files without
// the extension never match.
func (h *JSONHandler) CanHandle(path string, info fs.FileInfo) bool {
	if !info.Mode().IsRegular() {
		return false
	}
	if hasExt(path, ".json") {
		return true
	}
	if isEmptyFile(info) {
		return false
	}

	prefix := bytes.TrimSpace(readPrefix(path, sniffBudget))
	if len(prefix) == 0 {
		return false
	}
	return prefix[0] == '{' || prefix[0] == '['
}

// Handle validates with jq and pretty-prints through it, delegating to the
// raw fallback when jq is missing, the content is invalid, or the file is
// too large.
func (h *JSONHandler) Handle(path string) error {
	logger := logging.GetLogger("handlers.json")

	info, err := os.Stat(path)
	if err != nil {
		logger.Warn().Err(err).Msg("cannot stat file, showing raw content")
		return h.fallback.Handle(path)
	}
	if info.Size() == 0 {
		fmt.Fprintln(h.pager.Out, ui.EmptyMarker("JSON"))
		return nil
	}
	if info.Size() > MaxJSONSizeBytes {
		logger.Warn().Int64("size", info.Size()).Msg("file exceeds JSON size limit, showing raw content")
		return h.fallback.Handle(path)
	}

	if err := tools.Run(tools.TimeoutQuick, "jq", "empty", path); err != nil {
		logger.Warn().Err(err).Msg("jq validation failed, showing raw content")
		return h.fallback.Handle(path)
	}

	args := []string{"."}
	if ui.DetectFormat(os.Stdout) == ui.FormatTerminal {
		args = []string{"-C", "."}
	}
	cmd := exec.Command("jq", append(args, path)...)
	if err := h.pager.Command(cmd); err != nil {
		logger.Warn().Err(err).Msg("jq failed, showing raw content")
		return h.fallback.Handle(path)
	}
	return nil
}

// Priority returns the default priority for JSON.
func (h *JSONHandler) Priority() int { return 50 }
