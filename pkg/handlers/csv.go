package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"text/tabwriter"

	"github.com/arthur-debert/lv/pkg/logging"
	"github.com/arthur-debert/lv/pkg/pager"
	"github.com/arthur-debert/lv/pkg/tools"
	"github.com/arthur-debert/lv/pkg/ui"
)

// MaxCSVSizeBytes caps the file size handed to column.
const MaxCSVSizeBytes = 10 * 1024 * 1024

// CSVHandler renders delimiter-separated files as aligned tables.
type CSVHandler struct {
	pager    *pager.Engine
	fallback *DefaultHandler
	options  map[string]interface{}
}

// NewCSVHandler creates a CSV handler.
func NewCSVHandler(options map[string]interface{}, env *Env) *CSVHandler {
	return &CSVHandler{pager: env.Pager, fallback: env.Fallback, options: options}
}

// Name returns the handler's configuration key.
func (h *CSVHandler) Name() string { return "csv" }

// CanHandle matches by .csv/.tsv extension, or by content whose first lines
// consistently contain the same delimiter.
func (h *CSVHandler) CanHandle(path string, info fs.FileInfo) bool {
	if !info.Mode().IsRegular() {
		return false
	}
	if hasExt(path, ".csv", ".tsv") {
		return true
	}
	if isEmptyFile(info) {
		return false
	}

	prefix := readPrefix(path, sniffBudget)
	lines := bytes.Split(prefix, []byte("\n"))
	// Only complete lines tell us anything; the last one may be truncated
	// by the sniff budget. A lone line with commas is prose, not a table.
	lines = lines[:len(lines)-1]
	if len(lines) < 2 {
		return false
	}

	for _, sep := range []byte{',', '\t'} {
		if delimited(lines, sep) {
			return true
		}
	}
	return false
}

// delimited reports whether every line contains the separator the same
// number of times, at least once.
func delimited(lines [][]byte, sep byte) bool {
	want := -1
	for _, line := range lines {
		n := bytes.Count(line, []byte{sep})
		if n == 0 {
			return false
		}
		if want == -1 {
			want = n
		} else if n != want {
			return false
		}
	}
	return want > 0
}

func (h *CSVHandler) separator(path string) rune {
	if hasExt(path, ".tsv") {
		return '\t'
	}
	if prefix := readPrefix(path, sniffBudget); prefix != nil {
		firstLine, _, _ := bytes.Cut(prefix, []byte("\n"))
		if bytes.IndexByte(firstLine, '\t') >= 0 && bytes.IndexByte(firstLine, ',') < 0 {
			return '\t'
		}
	}
	return ','
}

// Handle aligns the table with column -t, or an in-process tabwriter when
// column is unavailable.
func (h *CSVHandler) Handle(path string) error {
	logger := logging.GetLogger("handlers.csv")

	info, err := os.Stat(path)
	if err != nil {
		logger.Warn().Err(err).Msg("cannot stat file, showing raw content")
		return h.fallback.Handle(path)
	}
	if info.Size() == 0 {
		fmt.Fprintln(h.pager.Out, ui.EmptyMarker("CSV"))
		return nil
	}
	if info.Size() > MaxCSVSizeBytes {
		logger.Warn().Int64("size", info.Size()).Msg("file exceeds CSV size limit, showing raw content")
		return h.fallback.Handle(path)
	}

	sep := h.separator(path)

	if tools.Available("column") {
		cmd := exec.Command("column", "-t", "-s", string(sep), path)
		if err := h.pager.Command(cmd); err == nil {
			return nil
		}
		logger.Debug().Msg("column failed, using built-in table formatting")
	}

	if err := h.formatWithTabwriter(path, sep); err != nil {
		logger.Warn().Err(err).Msg("table formatting failed, showing raw content")
		return h.fallback.Handle(path)
	}
	return nil
}

func (h *CSVHandler) formatWithTabwriter(path string, sep rune) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.Comma = sep
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	for _, record := range records {
		for i, field := range record {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, field)
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return h.pager.Reader(&buf)
}

// Priority returns the default priority for CSV.
func (h *CSVHandler) Priority() int { return 40 }
