package handlers

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/lv/pkg/logging"
	"github.com/arthur-debert/lv/pkg/pager"
	"github.com/arthur-debert/lv/pkg/ui"
)

// MaxYAMLSizeBytes caps the file size handed to yq.
const MaxYAMLSizeBytes = 10 * 1024 * 1024

// yamlKeyValue matches a "key: value" line shape at the start of a document.
var yamlKeyValue = regexp.MustCompile(`^[\w.-]+:(\s|$)`)

// YAMLHandler renders YAML through yq, validating in-process first so broken
// documents get a useful diagnostic instead of tool noise.
type YAMLHandler struct {
	pager    *pager.Engine
	fallback *DefaultHandler
	options  map[string]interface{}
}

// NewYAMLHandler creates a YAML handler.
func NewYAMLHandler(options map[string]interface{}, env *Env) *YAMLHandler {
	return &YAMLHandler{pager: env.Pager, fallback: env.Fallback, options: options}
}

// Name returns the handler's configuration key.
func (h *YAMLHandler) Name() string { return "yaml" }

// CanHandle matches by .yaml/.yml extension, or by a prefix carrying a
// document separator, a %YAML directive, or a key: value line.
func (h *YAMLHandler) CanHandle(path string, info fs.FileInfo) bool {
	if !info.Mode().IsRegular() {
		return false
	}
	if hasExt(path, ".yaml", ".yml") {
		return true
	}
	if isEmptyFile(info) {
		return false
	}

	prefix := bytes.TrimSpace(readPrefix(path, sniffBudget))
	if len(prefix) == 0 {
		return false
	}
	if bytes.HasPrefix(prefix, []byte("---")) || bytes.HasPrefix(prefix, []byte("%YAML")) {
		return true
	}
	firstLine, _, _ := bytes.Cut(prefix, []byte("\n"))
	return yamlKeyValue.Match(firstLine)
}

// Handle validates the document and renders it through yq, showing raw
// content when validation fails or yq is unavailable.
func (h *YAMLHandler) Handle(path string) error {
	logger := logging.GetLogger("handlers.yaml")

	info, err := os.Stat(path)
	if err != nil {
		logger.Warn().Err(err).Msg("cannot stat file, showing raw content")
		return h.fallback.Handle(path)
	}
	if info.Size() == 0 {
		fmt.Fprintln(h.pager.Out, ui.EmptyMarker("YAML"))
		return nil
	}
	if info.Size() > MaxYAMLSizeBytes {
		logger.Warn().Int64("size", info.Size()).Msg("file exceeds YAML size limit, showing raw content")
		return h.fallback.Handle(path)
	}

	if err := h.validate(path); err != nil {
		logger.Warn().Err(err).Msg("YAML validation failed, showing raw content")
		return h.fallback.Handle(path)
	}

	args := []string{"."}
	if ui.DetectFormat(os.Stdout) == ui.FormatTerminal {
		args = append(args, "--colors")
	}
	cmd := exec.Command("yq", append(args, path)...)
	if err := h.pager.Command(cmd); err != nil {
		logger.Warn().Err(err).Msg("yq failed, showing raw content")
		return h.fallback.Handle(path)
	}
	return nil
}

func (h *YAMLHandler) validate(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var doc interface{}
	return yaml.Unmarshal(raw, &doc)
}

// Priority returns the default priority for YAML.
func (h *YAMLHandler) Priority() int { return 30 }
