package handlers

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/arthur-debert/lv/pkg/logging"
	"github.com/arthur-debert/lv/pkg/pager"
	"github.com/arthur-debert/lv/pkg/tools"
	"github.com/arthur-debert/lv/pkg/ui"
)

// MaxMediaSizeBytes caps the media size handed to ffprobe. The tool only
// reads headers, so this is generous.
const MaxMediaSizeBytes = 1024 * 1024 * 1024

var audioExtensions = []string{".mp3", ".flac", ".wav", ".aac", ".ogg", ".m4a", ".wma"}

var videoExtensions = []string{".mp4", ".mkv", ".avi", ".mov", ".wmv", ".flv", ".webm", ".m4v", ".3gp"}

// ffprobeReport mirrors the parts of `ffprobe -print_format json` we show.
type ffprobeReport struct {
	Format struct {
		FormatLongName string `json:"format_long_name"`
		Duration       string `json:"duration"`
		BitRate        string `json:"bit_rate"`
	} `json:"format"`
	Streams []struct {
		CodecType     string `json:"codec_type"`
		CodecLongName string `json:"codec_long_name"`
		Width         int    `json:"width"`
		Height        int    `json:"height"`
		FrameRate     string `json:"r_frame_rate"`
		SampleRate    string `json:"sample_rate"`
		Channels      int    `json:"channels"`
	} `json:"streams"`
}

// MediaHandler summarizes audio and video files with ffprobe metadata.
// It never pours raw media bytes onto the terminal.
type MediaHandler struct {
	pager    *pager.Engine
	fallback *DefaultHandler
	options  map[string]interface{}
}

// NewMediaHandler creates a media handler.
func NewMediaHandler(options map[string]interface{}, env *Env) *MediaHandler {
	return &MediaHandler{pager: env.Pager, fallback: env.Fallback, options: options}
}

// Name returns the handler's configuration key.
func (h *MediaHandler) Name() string { return "media" }

// CanHandle matches by audio or video extension.
func (h *MediaHandler) CanHandle(path string, info fs.FileInfo) bool {
	if !info.Mode().IsRegular() {
		return false
	}
	return hasExt(path, append(append([]string{}, audioExtensions...), videoExtensions...)...)
}

// Handle prints a metadata summary from ffprobe. Any ffprobe problem
// degrades to basic file information plus an install hint.
func (h *MediaHandler) Handle(path string) error {
	logger := logging.GetLogger("handlers.media")

	info, err := os.Stat(path)
	if err != nil {
		logger.Warn().Err(err).Msg("cannot stat file, showing raw content")
		return h.fallback.Handle(path)
	}
	if info.Size() == 0 {
		fmt.Fprintln(h.pager.Out, ui.EmptyMarker("media"))
		return nil
	}

	fmt.Fprintln(h.pager.Out, ui.Header("Media File: "+info.Name()))

	if info.Size() > MaxMediaSizeBytes {
		logger.Warn().Int64("size", info.Size()).Msg("file exceeds media size limit, skipping analysis")
		h.printBasicInfo(path, info)
		return nil
	}

	out, err := tools.Output(tools.TimeoutProcessing, "ffprobe",
		"-v", "quiet", "-print_format", "json", "-show_format", "-show_streams", path)
	if err != nil {
		logger.Debug().Err(err).Msg("ffprobe unavailable or failed")
		h.printBasicInfo(path, info)
		return nil
	}

	var report ffprobeReport
	if err := json.Unmarshal(out, &report); err != nil {
		logger.Warn().Err(err).Msg("unexpected ffprobe output")
		h.printBasicInfo(path, info)
		return nil
	}

	h.printReport(&report)
	return nil
}

func (h *MediaHandler) printBasicInfo(path string, info os.FileInfo) {
	kind := "Video"
	if hasExt(path, audioExtensions...) {
		kind = "Audio"
	}
	fmt.Fprintf(h.pager.Out, "Type: %s file\n", kind)
	fmt.Fprintf(h.pager.Out, "Size: %d bytes\n", info.Size())
	fmt.Fprintln(h.pager.Out, ui.Hint("Install 'ffmpeg' for detailed media analysis"))
}

func (h *MediaHandler) printReport(report *ffprobeReport) {
	if report.Format.FormatLongName != "" {
		fmt.Fprintf(h.pager.Out, "Format: %s\n", report.Format.FormatLongName)
	}
	if report.Format.Duration != "" {
		fmt.Fprintf(h.pager.Out, "Duration: %s\n", formatDuration(report.Format.Duration))
	}
	if report.Format.BitRate != "" {
		fmt.Fprintf(h.pager.Out, "Bit rate: %s\n", report.Format.BitRate)
	}

	var printedVideo, printedAudio bool
	for _, stream := range report.Streams {
		switch stream.CodecType {
		case "video":
			if !printedVideo {
				fmt.Fprintln(h.pager.Out, "Video Streams:")
				printedVideo = true
			}
			fmt.Fprintf(h.pager.Out, "  %s, %dx%d, %s fps\n",
				stream.CodecLongName, stream.Width, stream.Height, stream.FrameRate)
		case "audio":
			if !printedAudio {
				fmt.Fprintln(h.pager.Out, "Audio Streams:")
				printedAudio = true
			}
			fmt.Fprintf(h.pager.Out, "  %s, %s Hz, %d channels\n",
				stream.CodecLongName, stream.SampleRate, stream.Channels)
		}
	}
}

// formatDuration turns ffprobe's fractional seconds into MM:SS.
func formatDuration(seconds string) string {
	f, err := strconv.ParseFloat(seconds, 64)
	if err != nil {
		return seconds
	}
	total := int(f)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// Priority returns the default priority for media files.
func (h *MediaHandler) Priority() int { return 55 }
