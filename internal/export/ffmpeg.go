package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ivlev/loopviz/internal/system"
)

// FFmpegWriter encodes raw RGBA frames to H.264 MP4 by piping them to an
// ffmpeg process over stdin, the same way segments are encoded in batch
// tools: no intermediate files touch the disk until the final container.
type FFmpegWriter struct {
	// EncoderName selects the ffmpeg video codec. Empty picks the best
	// available hardware encoder, falling back to libx264.
	EncoderName string
	// Quality is encoder-specific: CRF for x264, CQ for NVENC, a bitrate
	// multiplier (Q*100 kbit/s) for VideoToolbox. Zero picks a default.
	Quality int

	cmd     *exec.Cmd
	stdin   io.WriteCloser
	outPath string
	log     bytes.Buffer
}

// Begin probes for ffmpeg, resolves the encoder and starts the process.
// Returns ErrEncoderUnavailable when no encoding path exists.
func (e *FFmpegWriter) Begin(ctx context.Context, width, height, fps int) error {
	if !system.FFmpegAvailable() {
		return ErrEncoderUnavailable
	}
	if e.EncoderName == "" {
		e.EncoderName = system.GetBestH264Encoder()
	}
	if e.Quality == 0 {
		e.Quality = system.DefaultQuality(e.EncoderName)
	}

	tmp, err := os.CreateTemp("", "loopviz_*.mp4")
	if err != nil {
		return err
	}
	e.outPath = tmp.Name()
	tmp.Close()

	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", width, height),
		"-framerate", fmt.Sprintf("%d", fps),
		"-i", "-",
		"-r", fmt.Sprintf("%d", fps),
		"-pix_fmt", "yuv420p",
		"-c:v", e.EncoderName,
	}
	args = append(args, qualityArgs(e.EncoderName, e.Quality)...)
	args = append(args, e.outPath)

	e.cmd = exec.CommandContext(ctx, "ffmpeg", args...)
	e.cmd.Stdout = &e.log
	e.cmd.Stderr = &e.log

	e.stdin, err = e.cmd.StdinPipe()
	if err != nil {
		os.Remove(e.outPath)
		return fmt.Errorf("ffmpeg stdin pipe: %w", err)
	}
	if err := e.cmd.Start(); err != nil {
		os.Remove(e.outPath)
		return fmt.Errorf("ffmpeg start: %w", err)
	}
	return nil
}

// WriteFrame streams one raw RGBA frame to the encoder.
func (e *FFmpegWriter) WriteFrame(pix []byte) error {
	_, err := e.stdin.Write(pix)
	if err != nil {
		return fmt.Errorf("ffmpeg write: %w\nlog: %s", err, e.log.String())
	}
	return nil
}

// Finish closes the stream, waits for ffmpeg and returns the encoded MP4.
func (e *FFmpegWriter) Finish() (Result, error) {
	defer os.Remove(e.outPath)

	e.stdin.Close()
	if err := e.cmd.Wait(); err != nil {
		return Result{}, fmt.Errorf("ffmpeg wait: %w\nlog: %s", err, e.log.String())
	}

	data, err := os.ReadFile(e.outPath)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Data:          data,
		MimeType:      "video/mp4",
		FileExtension: ".mp4",
	}, nil
}

// Abort kills the encoder and removes the partial output file.
func (e *FFmpegWriter) Abort() {
	if e.stdin != nil {
		e.stdin.Close()
	}
	if e.cmd != nil && e.cmd.Process != nil {
		e.cmd.Process.Kill()
		e.cmd.Wait()
	}
	if e.outPath != "" {
		os.Remove(e.outPath)
	}
}

func qualityArgs(encoderName string, quality int) []string {
	switch encoderName {
	case "h264_videotoolbox":
		// VideoToolbox не всегда поддерживает -q:v, используем битрейт.
		return []string{"-b:v", fmt.Sprintf("%dk", quality*100)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	default: // libx264
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", "medium"}
	}
}

// SuggestOutputPath builds a timestamped output path under dir for a mode.
func SuggestOutputPath(dir, modeID, timestamp string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.mp4", modeID, timestamp))
}
