package handlers

import (
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/lv/pkg/logging"
	"github.com/arthur-debert/lv/pkg/pager"
	"github.com/arthur-debert/lv/pkg/ui"
)

// MaxArchiveSizeBytes caps the archive size whose table of contents is listed.
const MaxArchiveSizeBytes = 100 * 1024 * 1024

// zipExtensions are listed with unzip; everything else here is tar family.
var zipExtensions = []string{".zip", ".jar", ".war", ".ear", ".apk"}

var tarExtensions = []string{".tar", ".tgz", ".tbz2", ".txz"}

// tarCompoundSuffixes cover the dotted forms filepath.Ext cannot see.
var tarCompoundSuffixes = []string{".tar.gz", ".tar.bz2", ".tar.xz", ".tar.zst"}

// ArchiveHandler lists archive contents without extracting them.
type ArchiveHandler struct {
	pager    *pager.Engine
	fallback *DefaultHandler
	options  map[string]interface{}
}

// NewArchiveHandler creates an archive handler.
func NewArchiveHandler(options map[string]interface{}, env *Env) *ArchiveHandler {
	return &ArchiveHandler{pager: env.Pager, fallback: env.Fallback, options: options}
}

// Name returns the handler's configuration key.
func (h *ArchiveHandler) Name() string { return "archive" }

// CanHandle matches by archive extension, including compound tar suffixes
// like .tar.zst.
func (h *ArchiveHandler) CanHandle(path string, info fs.FileInfo) bool {
	if info.IsDir() {
		return false
	}
	if hasExt(path, append(append([]string{}, zipExtensions...), tarExtensions...)...) {
		return true
	}
	lower := strings.ToLower(path)
	for _, suffix := range tarCompoundSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// Handle lists the archive's table of contents through the pager, falling
// back to the raw view when the listing tool is unavailable.
func (h *ArchiveHandler) Handle(path string) error {
	logger := logging.GetLogger("handlers.archive")

	info, err := os.Stat(path)
	if err != nil {
		logger.Warn().Err(err).Msg("cannot stat file, showing raw content")
		return h.fallback.Handle(path)
	}
	if info.Size() == 0 {
		fmt.Fprintln(h.pager.Out, ui.EmptyMarker("archive"))
		return nil
	}
	if info.Size() > MaxArchiveSizeBytes {
		logger.Warn().Int64("size", info.Size()).Msg("archive exceeds size limit, showing raw content")
		return h.fallback.Handle(path)
	}

	cmd := h.listCommand(path)
	if err := h.pager.Command(cmd); err != nil {
		logger.Warn().Err(err).Msg("archive listing failed, showing raw content")
		return h.fallback.Handle(path)
	}
	return nil
}

func (h *ArchiveHandler) listCommand(path string) *exec.Cmd {
	if hasExt(path, zipExtensions...) {
		return exec.Command("unzip", "-l", path)
	}
	if strings.HasSuffix(strings.ToLower(path), ".tar.zst") {
		return exec.Command("tar", "--use-compress-program=unzstd", "-tvf", path)
	}
	return exec.Command("tar", "-tvf", path)
}

// Priority returns the default priority for archives.
func (h *ArchiveHandler) Priority() int { return 80 }
