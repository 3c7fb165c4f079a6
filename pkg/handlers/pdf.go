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

// MaxPDFSizeBytes caps the document size handed to the text extractor.
const MaxPDFSizeBytes = 100 * 1024 * 1024

var pdfMagic = []byte("%PDF")

// PDFHandler extracts and pages the text content of PDF documents.
type PDFHandler struct {
	pager    *pager.Engine
	fallback *DefaultHandler
	options  map[string]interface{}
}

// NewPDFHandler creates a PDF handler.
func NewPDFHandler(options map[string]interface{}, env *Env) *PDFHandler {
	return &PDFHandler{pager: env.Pager, fallback: env.Fallback, options: options}
}

// Name returns the handler's configuration key.
func (h *PDFHandler) Name() string { return "pdf" }

// CanHandle matches by .pdf extension, or by the %PDF magic prefix.
func (h *PDFHandler) CanHandle(path string, info fs.FileInfo) bool {
	if !info.Mode().IsRegular() {
		return false
	}
	if hasExt(path, ".pdf") {
		return true
	}
	if isEmptyFile(info) {
		return false
	}
	return bytes.HasPrefix(readPrefix(path, len(pdfMagic)), pdfMagic)
}

// Handle extracts text with pdftotext and pages it. Without pdftotext the
// user gets a summary and an install hint rather than raw PDF bytes.
func (h *PDFHandler) Handle(path string) error {
	logger := logging.GetLogger("handlers.pdf")

	info, err := os.Stat(path)
	if err != nil {
		logger.Warn().Err(err).Msg("cannot stat file, showing raw content")
		return h.fallback.Handle(path)
	}
	if info.Size() == 0 {
		fmt.Fprintln(h.pager.Out, ui.EmptyMarker("PDF"))
		return nil
	}
	if info.Size() > MaxPDFSizeBytes {
		logger.Warn().Int64("size", info.Size()).Msg("document exceeds PDF size limit")
		h.printSummary(info)
		return nil
	}

	if !tools.Available("pdftotext") {
		h.printSummary(info)
		fmt.Fprintln(h.pager.Out, ui.Hint("Install 'poppler-utils' (pdftotext) to view PDF text content"))
		return nil
	}

	cmd := exec.Command("pdftotext", path, "-")
	if err := h.pager.Command(cmd); err != nil {
		logger.Warn().Err(err).Msg("pdftotext failed")
		h.printSummary(info)
		return nil
	}
	return nil
}

func (h *PDFHandler) printSummary(info os.FileInfo) {
	fmt.Fprintln(h.pager.Out, ui.Header("PDF File: "+info.Name()))
	fmt.Fprintf(h.pager.Out, "Size: %d bytes\n", info.Size())
}

// Priority returns the default priority for PDF documents.
func (h *PDFHandler) Priority() int { return 60 }
