package handlers

import (
	"bytes"
	"io/fs"
	"os/exec"
	"strings"

	"github.com/arthur-debert/lv/pkg/logging"
	"github.com/arthur-debert/lv/pkg/pager"
	"github.com/arthur-debert/lv/pkg/tools"
)

// MaxBinarySizeBytes caps the file size handed to hexdump. Larger files are
// left to the default handler.
const MaxBinarySizeBytes = 10 * 1024 * 1024

// binarySampleBytes is how much content the null-byte fallback sniff reads.
const binarySampleBytes = 8192

// BinaryHandler shows binary files as a hex dump. Classification prefers the
// file(1) command with a short timeout, with a null-byte content sniff as
// fallback.
type BinaryHandler struct {
	pager    *pager.Engine
	fallback *DefaultHandler
	options  map[string]interface{}
}

// NewBinaryHandler creates a binary handler.
func NewBinaryHandler(options map[string]interface{}, env *Env) *BinaryHandler {
	return &BinaryHandler{pager: env.Pager, fallback: env.Fallback, options: options}
}

// Name returns the handler's configuration key.
func (h *BinaryHandler) Name() string { return "binary" }

// CanHandle reports whether the file looks binary. Empty files are text,
// and files over the size ceiling are not claimed so the default handler
// keeps them cheap.
func (h *BinaryHandler) CanHandle(path string, info fs.FileInfo) bool {
	if !info.Mode().IsRegular() {
		return false
	}
	if info.Size() == 0 || info.Size() > MaxBinarySizeBytes {
		return false
	}

	logger := logging.GetLogger("handlers.binary")

	out, err := tools.Output(tools.TimeoutClassify, "file", "--mime-encoding", "-b", path)
	if err != nil {
		logger.Debug().Err(err).Msg("file command check failed, falling back to content sniff")
		return h.isBinaryContent(path)
	}

	encoding := strings.TrimSpace(string(out))
	switch {
	case encoding == "binary" || strings.HasPrefix(encoding, "unknown-"):
		return true
	case encoding == "us-ascii" || encoding == "utf-8" || encoding == "iso-8859-1":
		// file(1) sometimes calls short binary blobs text; a secondary
		// null-byte check catches those.
		return h.isBinaryContent(path)
	default:
		logger.Debug().Str("encoding", encoding).Msg("treating reported encoding as text")
		return false
	}
}

func (h *BinaryHandler) isBinaryContent(path string) bool {
	sample := readPrefix(path, binarySampleBytes)
	if len(sample) == 0 {
		return false
	}
	return bytes.IndexByte(sample, 0) >= 0
}

// Handle renders the file as a hex dump through the pager. A missing hexdump
// falls back to the raw view.
func (h *BinaryHandler) Handle(path string) error {
	logger := logging.GetLogger("handlers.binary")

	cmd := exec.Command("hexdump", "-C", path)
	if err := h.pager.Command(cmd); err != nil {
		logger.Warn().Err(err).Msg("hexdump unavailable or failed, showing raw content")
		return h.fallback.Handle(path)
	}
	return nil
}

// Priority returns the default priority for binary files.
func (h *BinaryHandler) Priority() int { return 60 }
