package config

// Config collects everything the CLI host resolves before driving the
// engine or an export. Library packages never read this directly; they take
// plain parameters.
type Config struct {
	Mode       string
	LoopPeriod float64
	Width      int
	Height     int
	DPR        float64
	FPS        int
	Duration   float64
	OutputPath string
	Encoder    string
	Quality    int
}

// Defaults returns the configuration used when neither flags nor a preset
// override anything.
func Defaults() Config {
	return Config{
		Mode:       "gradientflow",
		LoopPeriod: 30,
		Width:      1920,
		Height:     1080,
		DPR:        1,
		FPS:        30,
		Duration:   0, // 0 = one full loop
	}
}
