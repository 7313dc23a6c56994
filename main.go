package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/olivierh59500/particle-replay-go/internal/config"
	"github.com/olivierh59500/particle-replay-go/internal/journal"
	"github.com/olivierh59500/particle-replay-go/internal/playback"
	"github.com/olivierh59500/particle-replay-go/internal/render"
	"github.com/olivierh59500/particle-replay-go/internal/snapshot"
	"github.com/olivierh59500/particle-replay-go/internal/window"
)

func main() {
	var (
		configPath  = flag.String("config", "", "YAML config file (optional)")
		root        = flag.String("root", "", "snapshot root directory (overrides config)")
		bounds      = flag.String("bounds", "", "domain lengths file (overrides config)")
		export      = flag.Bool("export", false, "write every frame as PNG")
		exportDir   = flag.String("out", "", "export directory (overrides config)")
		headless    = flag.Bool("headless", false, "render off screen without a window")
		skipCorrupt = flag.Bool("skip-corrupt", false, "skip unreadable snapshots instead of stopping")
		journalPath = flag.String("journal", "", "SQLite frame journal (optional)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	// flags win over file and environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "root":
			cfg.Root = *root
		case "bounds":
			cfg.BoundsPath = *bounds
		case "export":
			cfg.Export = *export
		case "out":
			cfg.ExportDir = *exportDir
		case "headless":
			cfg.Headless = *headless
		case "skip-corrupt":
			cfg.SkipCorrupt = *skipCorrupt
		case "journal":
			cfg.Journal = *journalPath
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg config.Config) (err error) {
	pal, err := render.ParsePalette(cfg.Palette)
	if err != nil {
		return err
	}
	opts := playback.Options{
		Store:       &snapshot.Store{Root: cfg.Root, Prefix: cfg.Prefix},
		BoundsPath:  cfg.BoundsPath,
		Palette:     pal,
		Margin:      cfg.Margin,
		SkipCorrupt: cfg.SkipCorrupt,
		Prefetch:    cfg.Prefetch,
	}
	if cfg.Export {
		if opts.Exporter, err = render.NewExporter(cfg.ExportDir); err != nil {
			return err
		}
	}
	if cfg.Journal != "" {
		j, jerr := journal.Open(ctx, cfg.Journal, cfg.Root)
		if jerr != nil {
			return jerr
		}
		defer j.Close()
		opts.Recorder = j
		defer func() {
			if ferr := j.Finish(context.Background(), err); ferr != nil {
				log.Printf("journal: %v", ferr)
			}
		}()
	}

	var win *window.Window
	if cfg.Headless {
		opts.Surface = render.NewCanvas(cfg.Width, cfg.Height)
	} else {
		win = window.New(cfg.Width, cfg.Height)
		opts.Surface = win
	}

	eng, err := playback.New(ctx, opts)
	if err != nil {
		return err
	}
	defer eng.Close()
	log.Printf("replaying %d snapshots from %s (domain %gx%g)", eng.Len(), cfg.Root, eng.Bounds().Lx, eng.Bounds().Ly)

	if win == nil {
		err = runHeadless(ctx, eng, cfg.TickInterval)
	} else {
		win.Bind(eng.Tick)
		win.ExitOnFinish = cfg.ExitOnFinish
		win.OnFinish = func(perr error) {
			if perr != nil {
				log.Printf("playback stopped at %d / %d: %v", eng.Cursor(), eng.Len(), perr)
				return
			}
			log.Printf("playback finished, %d frames", eng.Len())
		}
		if err = win.Run("Collision animation", cfg.TickInterval); err == nil {
			err = eng.Err()
		}
	}
	if n := len(eng.Skipped()); n > 0 {
		log.Printf("skipped %d frames", n)
	}
	return err
}

func runHeadless(ctx context.Context, eng *playback.Engine, interval time.Duration) error {
	if interval <= 0 {
		for !eng.Finished() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := eng.Tick(); err != nil {
				return err
			}
		}
		return nil
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	return eng.Run(ctx, t.C)
}
