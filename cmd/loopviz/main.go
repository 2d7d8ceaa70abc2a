package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"github.com/ivlev/loopviz/internal/clock"
	"github.com/ivlev/loopviz/internal/config"
	"github.com/ivlev/loopviz/internal/engine"
	"github.com/ivlev/loopviz/internal/export"
	"github.com/ivlev/loopviz/internal/modes"
	"github.com/ivlev/loopviz/internal/scale"
	"github.com/ivlev/loopviz/internal/system"
)

func main() {
	listPtr := flag.Bool("list", false, "Показать доступные визуальные режимы")
	modePtr := flag.String("mode", "", "Визуальный режим (см. -list)")
	presetPtr := flag.String("preset", "", "Путь к YAML-пресету с настройками")
	savePresetPtr := flag.String("save-preset", "", "Сохранить текущие настройки в YAML-пресет и выйти")
	widthPtr := flag.Int("width", 1920, "Ширина окна (логическая)")
	heightPtr := flag.Int("height", 1080, "Высота окна (логическая)")
	dprPtr := flag.Float64("dpr", 1.0, "Device pixel ratio (ограничивается потолком в ~16 Мп)")
	fpsPtr := flag.Int("fps", 30, "FPS")
	loopPtr := flag.Float64("loop", 30, "Период цикла в секундах (8-60, значения вне диапазона зажимаются)")
	durationPtr := flag.Float64("duration", 0, "Длительность экспорта в секундах (0 - один полный цикл)")
	outputPtr := flag.String("output", "", "Путь к видео (если пусто, генерируется автоматически в output/)")
	encoderPtr := flag.String("encoder", "", "Кодек ffmpeg (пусто - автоопределение)")
	qualityPtr := flag.Int("quality", 0, "Качество видео (0 - авто, x264: CRF, VideoToolbox: битрейт = Q*100кбит/с)")
	framePtr := flag.String("frame", "", "Сохранить один кадр в PNG по указанному пути и выйти")
	frameTimePtr := flag.Float64("frame-time", 0, "Момент цикла для -frame, сек")
	previewPtr := flag.Float64("preview", 0, "Прогнать живой цикл N секунд (без записи) и вывести FPS")

	flag.Parse()

	registry := modes.Builtin()

	if *listPtr {
		fmt.Println("Доступные режимы:")
		for _, d := range registry.All() {
			fmt.Printf("  %-14s %-18s %s\n", d.ID, d.Name, d.Description)
		}
		return
	}

	cfg := config.Defaults()

	if *presetPtr != "" {
		p, err := config.ReadPreset(*presetPtr)
		if err != nil {
			log.Fatalf("[-] Ошибка чтения пресета: %v", err)
		}
		p.Apply(&cfg)
		fmt.Printf("[*] Используется пресет: %s\n", *presetPtr)
	}

	// Явно указанные флаги имеют приоритет над пресетом.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = *modePtr
		case "width":
			cfg.Width = *widthPtr
		case "height":
			cfg.Height = *heightPtr
		case "dpr":
			cfg.DPR = *dprPtr
		case "fps":
			cfg.FPS = *fpsPtr
		case "loop":
			cfg.LoopPeriod = *loopPtr
		case "duration":
			cfg.Duration = *durationPtr
		case "output":
			cfg.OutputPath = *outputPtr
		case "encoder":
			cfg.Encoder = *encoderPtr
		case "quality":
			cfg.Quality = *qualityPtr
		}
	})

	if _, ok := registry.Lookup(cfg.Mode); !ok {
		fmt.Printf("[-] Неизвестный режим: %q. Доступные:\n", cfg.Mode)
		for _, d := range registry.All() {
			fmt.Printf("    %s\n", d.ID)
		}
		os.Exit(1)
	}

	if *savePresetPtr != "" {
		p := &config.Preset{
			Mode:       cfg.Mode,
			LoopPeriod: cfg.LoopPeriod,
			Width:      cfg.Width,
			Height:     cfg.Height,
			FPS:        cfg.FPS,
			Duration:   cfg.Duration,
		}
		if err := config.WritePreset(p, *savePresetPtr); err != nil {
			log.Fatalf("[-] Ошибка записи пресета: %v", err)
		}
		fmt.Printf("[+++] Пресет сохранен: %s\n", *savePresetPtr)
		return
	}

	if *framePtr != "" {
		if err := dumpFrame(registry, cfg, *framePtr, *frameTimePtr); err != nil {
			log.Fatalf("[-] Ошибка сохранения кадра: %v", err)
		}
		fmt.Printf("[+++] Кадр сохранен: %s\n", *framePtr)
		return
	}

	if *previewPtr > 0 {
		runPreview(registry, cfg, *previewPtr)
		return
	}

	runExport(registry, cfg)
}

// dumpFrame renders a single deterministic frame to a PNG for inspection.
func dumpFrame(registry *modes.Registry, cfg config.Config, path string, t float64) error {
	d, _ := registry.Lookup(cfg.Mode)
	sc := scale.Compute(cfg.Width, cfg.Height, cfg.DPR)
	period := clock.ClampPeriod(cfg.LoopPeriod)

	img := image.NewRGBA(image.Rect(0, 0, sc.BufferWidth, sc.BufferHeight))
	d.Render(img, t, sc.BufferWidth, sc.BufferHeight, period, sc.Factor)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func runPreview(registry *modes.Registry, cfg config.Config, seconds float64) {
	var frames atomic.Int64
	eng := engine.New(registry, cfg.FPS, func(frame *image.RGBA, loopTime float64) {
		frames.Add(1)
	})
	eng.Init(cfg.Width, cfg.Height, cfg.DPR)
	eng.SetMode(cfg.Mode)
	eng.SetLoopPeriod(cfg.LoopPeriod)

	sc := eng.ScaleContext()
	fmt.Printf("[*] Буфер: %dx%d (DPR %.2f, scale %.2f, стратегия %s)\n",
		sc.BufferWidth, sc.BufferHeight, sc.DPR, sc.Factor, sc.Strategy)

	start := time.Now()
	eng.Start()
	time.Sleep(time.Duration(seconds * float64(time.Second)))
	eng.Stop()
	eng.Destroy()

	elapsed := time.Since(start).Seconds()
	fmt.Printf("[*] Кадров: %d за %.2fs (%.1f FPS)\n", frames.Load(), elapsed, float64(frames.Load())/elapsed)
}

func runExport(registry *modes.Registry, cfg config.Config) {
	encoderName := cfg.Encoder
	if encoderName == "" {
		encoderName = system.GetBestH264Encoder()
		if encoderName != "libx264" {
			fmt.Printf("[*] Обнаружено аппаратное ускорение: %s\n", encoderName)
		}
	}

	outputPath := cfg.OutputPath
	if outputPath == "" {
		os.MkdirAll("output", 0755)
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		outputPath = export.SuggestOutputPath("output", cfg.Mode, timestamp)
	}

	// Экспорт рендерится в физическом разрешении (DPR=1): размер кадра
	// и есть размер видео.
	fmt.Println("--- [LOOPVIZ EXPORT] ---")
	fmt.Printf("[*] Режим: %s | Цикл: %.0fs | Разрешение: %dx%d @ %d FPS\n",
		cfg.Mode, cfg.LoopPeriod, cfg.Width, cfg.Height, cfg.FPS)
	fmt.Println("------------------------")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	writer := &export.FFmpegWriter{EncoderName: encoderName, Quality: cfg.Quality}
	opts := export.Options{
		ModeID:     cfg.Mode,
		Width:      cfg.Width,
		Height:     cfg.Height,
		FPS:        cfg.FPS,
		Duration:   cfg.Duration,
		LoopPeriod: cfg.LoopPeriod,
	}

	startTime := time.Now()
	lastPct := -1
	res, err := export.Run(ctx, registry, opts, writer, func(frameIndex, totalFrames int) {
		pct := frameIndex * 100 / totalFrames
		if pct/5 != lastPct/5 {
			fmt.Printf("[>] Кадр %d/%d (%d%%)\n", frameIndex, totalFrames, pct)
		}
		lastPct = pct
	})
	if err != nil {
		log.Fatalf("[-] Ошибка экспорта: %v", err)
	}

	if err := os.WriteFile(outputPath, res.Data, 0644); err != nil {
		log.Fatalf("[-] Ошибка записи файла: %v", err)
	}

	fmt.Printf("[*] Время экспорта: %.2fs\n", time.Since(startTime).Seconds())
	fmt.Printf("[+++] Успех! Результат: %s (%s, %d КБ)\n",
		outputPath, res.MimeType, len(res.Data)/1024)
}
