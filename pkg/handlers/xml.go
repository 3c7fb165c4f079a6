package handlers

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"os/exec"

	"github.com/beevik/etree"

	"github.com/arthur-debert/lv/pkg/logging"
	"github.com/arthur-debert/lv/pkg/pager"
	"github.com/arthur-debert/lv/pkg/tools"
	"github.com/arthur-debert/lv/pkg/ui"
)

// MaxXMLSizeBytes caps the file size handed to xmllint.
const MaxXMLSizeBytes = 10 * 1024 * 1024

var xmlExtensions = []string{".xml", ".html", ".htm", ".xhtml", ".svg", ".xsl", ".xslt"}

// htmlExtensions get xmllint's forgiving HTML parser.
var htmlExtensions = []string{".html", ".htm", ".xhtml"}

// XMLHandler formats XML and HTML through xmllint, with an in-process etree
// pretty-printer when xmllint is absent.
type XMLHandler struct {
	pager    *pager.Engine
	fallback *DefaultHandler
	options  map[string]interface{}
}

// NewXMLHandler creates an XML handler.
func NewXMLHandler(options map[string]interface{}, env *Env) *XMLHandler {
	return &XMLHandler{pager: env.Pager, fallback: env.Fallback, options: options}
}

// Name returns the handler's configuration key.
func (h *XMLHandler) Name() string { return "xml" }

// CanHandle matches by extension, or by a prefix starting with an XML
// declaration, an HTML doctype, or an <html> tag.
func (h *XMLHandler) CanHandle(path string, info fs.FileInfo) bool {
	if !info.Mode().IsRegular() {
		return false
	}
	if hasExt(path, xmlExtensions...) {
		return true
	}
	if isEmptyFile(info) {
		return false
	}

	prefix := bytes.ToLower(bytes.TrimSpace(readPrefix(path, sniffBudget)))
	for _, marker := range [][]byte{[]byte("<?xml"), []byte("<!doctype html"), []byte("<html")} {
		if bytes.HasPrefix(prefix, marker) {
			return true
		}
	}
	return false
}

// Handle pretty-prints through xmllint --format. When formatting fails the
// document is validated to tell the user why, then shown raw. When xmllint
// is missing entirely, etree formats in-process before giving up.
func (h *XMLHandler) Handle(path string) error {
	logger := logging.GetLogger("handlers.xml")

	info, err := os.Stat(path)
	if err != nil {
		logger.Warn().Err(err).Msg("cannot stat file, showing raw content")
		return h.fallback.Handle(path)
	}
	if info.Size() == 0 {
		fmt.Fprintln(h.pager.Out, ui.EmptyMarker("XML"))
		return nil
	}
	if info.Size() > MaxXMLSizeBytes {
		logger.Warn().Int64("size", info.Size()).Msg("file exceeds XML size limit, showing raw content")
		return h.fallback.Handle(path)
	}

	if !tools.Available("xmllint") {
		logger.Debug().Msg("xmllint not found, formatting with built-in printer")
		if err := h.formatWithEtree(path); err != nil {
			logger.Warn().Err(err).Msg("built-in XML formatting failed, showing raw content")
			return h.fallback.Handle(path)
		}
		return nil
	}

	args := []string{"--format"}
	if hasExt(path, htmlExtensions...) {
		args = append(args, "--html")
	}
	cmd := exec.Command("xmllint", append(args, path)...)
	if err := h.pager.Command(cmd); err != nil {
		// Formatting failed; run a validation pass so the diagnostic names
		// the actual problem, then show the raw document.
		if verr := tools.Run(tools.TimeoutQuick, "xmllint", "--noout", path); verr != nil {
			logger.Warn().Err(verr).Msg("document is not well-formed, showing raw content")
		} else {
			logger.Warn().Err(err).Msg("xmllint formatting failed, showing raw content")
		}
		return h.fallback.Handle(path)
	}
	return nil
}

func (h *XMLHandler) formatWithEtree(path string) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return err
	}
	doc.Indent(2)
	formatted, err := doc.WriteToString()
	if err != nil {
		return err
	}
	return h.pager.Reader(bytes.NewReader([]byte(formatted)))
}

// Priority returns the default priority for XML.
func (h *XMLHandler) Priority() int { return 45 }
