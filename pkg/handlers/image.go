package handlers

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/lv/pkg/logging"
	"github.com/arthur-debert/lv/pkg/pager"
	"github.com/arthur-debert/lv/pkg/tools"
	"github.com/arthur-debert/lv/pkg/ui"
)

// MaxImageSizeBytes caps the image size handed to a terminal renderer.
const MaxImageSizeBytes = 100 * 1024 * 1024

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp", ".tiff", ".tif"}

// imageMagics are the byte signatures accepted for extension-less matches.
var imageMagics = [][]byte{
	{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'},
	{0xff, 0xd8, 0xff},
	[]byte("GIF87a"),
	[]byte("GIF89a"),
}

// ImageHandler shows image metadata and, when a terminal image renderer is
// installed, the image itself. It never fails the invocation: an image with
// no renderer still gets a useful summary.
type ImageHandler struct {
	pager    *pager.Engine
	fallback *DefaultHandler
	options  map[string]interface{}
}

// NewImageHandler creates an image handler.
func NewImageHandler(options map[string]interface{}, env *Env) *ImageHandler {
	return &ImageHandler{pager: env.Pager, fallback: env.Fallback, options: options}
}

// Name returns the handler's configuration key.
func (h *ImageHandler) Name() string { return "image" }

// CanHandle matches by image extension, or by PNG/JPEG/GIF magic bytes.
func (h *ImageHandler) CanHandle(path string, info fs.FileInfo) bool {
	if !info.Mode().IsRegular() {
		return false
	}
	if hasExt(path, imageExtensions...) {
		return true
	}
	if isEmptyFile(info) {
		return false
	}

	prefix := readPrefix(path, len(imageMagics[0]))
	for _, magic := range imageMagics {
		if bytes.HasPrefix(prefix, magic) {
			return true
		}
	}
	return false
}

// Handle prints an information header and renders the image inline with timg
// or chafa when one is installed and output is a terminal.
func (h *ImageHandler) Handle(path string) error {
	logger := logging.GetLogger("handlers.image")

	info, err := os.Stat(path)
	if err != nil {
		logger.Warn().Err(err).Msg("cannot stat file, showing raw content")
		return h.fallback.Handle(path)
	}
	if info.Size() == 0 {
		fmt.Fprintln(h.pager.Out, ui.EmptyMarker("image"))
		return nil
	}

	fmt.Fprintln(h.pager.Out, ui.Header("Image File: "+info.Name()))
	if desc, err := tools.Output(tools.TimeoutClassify, "file", "-b", path); err == nil {
		fmt.Fprintf(h.pager.Out, "Type: %s\n", strings.TrimSpace(string(desc)))
	}
	fmt.Fprintf(h.pager.Out, "Size: %d bytes\n", info.Size())

	if info.Size() > MaxImageSizeBytes {
		logger.Warn().Int64("size", info.Size()).Msg("image exceeds size limit, skipping inline rendering")
		return nil
	}
	if ui.DetectFormat(os.Stdout) != ui.FormatTerminal {
		return nil
	}

	for _, renderer := range []string{"timg", "chafa"} {
		if !tools.Available(renderer) {
			continue
		}
		cmd := exec.Command(renderer, path)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			logger.Warn().Err(err).Str("renderer", renderer).Msg("inline image rendering failed")
		}
		return nil
	}

	fmt.Fprintln(h.pager.Out, ui.Hint("Install 'timg' or 'chafa' to preview images in the terminal"))
	return nil
}

// Priority returns the default priority for images.
func (h *ImageHandler) Priority() int { return 65 }
