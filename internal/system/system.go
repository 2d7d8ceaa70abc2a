package system

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/shirou/gopsutil/v3/mem"
)

// FFmpegAvailable reports whether the ffmpeg binary is reachable. Export
// setup checks this before rendering a single frame.
func FFmpegAvailable() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// GetBestH264Encoder probes ffmpeg for hardware H.264 encoders.
// Приоритеты: VideoToolbox (macOS), затем NVENC, иначе программный libx264.
func GetBestH264Encoder() string {
	hardware := []string{"h264_videotoolbox", "h264_nvenc"}

	cmd := exec.Command("ffmpeg", "-encoders")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "libx264"
	}
	for _, enc := range hardware {
		if strings.Contains(string(out), enc) {
			return enc
		}
	}
	return "libx264"
}

// DefaultQuality returns a sensible quality value for an encoder when the
// user did not pick one. x264/NVENC values are CRF-like; VideoToolbox is a
// bitrate multiplier (Q*100 kbit/s).
func DefaultQuality(encoderName string) int {
	switch encoderName {
	case "h264_videotoolbox":
		return 75
	case "h264_nvenc":
		return 28
	default:
		return 23
	}
}

// AvailableMemory returns the bytes of memory currently available to the
// process, or an error when the platform probe fails.
func AvailableMemory() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.Available, nil
}

// CheckFrameBudget verifies that rendering frames of the given size leaves
// memory headroom. An export holds a small number of RGBA buffers in flight
// plus the encoder's own working set; requiring 8x one frame is a coarse
// but effective guard against wedging small machines with 8K exports.
func CheckFrameBudget(width, height int) error {
	avail, err := AvailableMemory()
	if err != nil {
		// Память не удалось измерить — не блокируем экспорт.
		return nil
	}
	frame := uint64(width) * uint64(height) * 4
	if frame*8 > avail {
		return fmt.Errorf("недостаточно памяти для кадров %dx%d: нужно ~%d МБ, доступно %d МБ",
			width, height, frame*8/(1<<20), avail/(1<<20))
	}
	return nil
}
