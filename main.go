package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/api"
	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/config"
	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/monitoring"
	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/occupancy"
	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/persistence"
	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/sensor"
	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/thermal"
)

var (
	serialPort   = flag.String("serial-port", "", "serial port the thermal sensor is attached to; if empty, replay fixtures with -fixtures")
	fixturesPath = flag.String("fixtures", "", "path to a newline-delimited fixture file for MockFrameSource (dev mode)")
	tuningPath   = flag.String("tuning", "", "path to a JSON tuning file overlaying thermal.DefaultConfig")
	dbPath       = flag.String("db", "doorway.db", "path to the SQLite event/snapshot database")
	bgFilePath   = flag.String("bg-file", "background.bin", "path to the persisted background file")
	sensorID     = flag.String("sensor-id", "doorway-1", "identifier recorded against persisted background snapshots")
	listen       = flag.String("listen", ":8080", "HTTP listen address")
	enableDebug  = flag.Bool("debug", false, "mount the tsweb/tailsql debug mux at /debug/...")
)

func main() {
	flag.Parse()

	cfg, maxBackgroundAge, err := config.Load(*tuningPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	store, err := persistence.Open(*dbPath)
	if err != nil {
		log.Fatalf("failed to open event store: %v", err)
	}
	defer store.Close()

	counter := occupancy.New(&eventPersister{store: store})

	pipeline, err := thermal.New(cfg, counter)
	if err != nil {
		log.Fatalf("failed to construct pipeline: %v", err)
	}

	if bg, age, loadErr := loadStartupBackground(*bgFilePath); loadErr == nil {
		if age <= maxBackgroundAge {
			pipeline.SeedBackground(bg)
			monitoring.Logf("resumed from persisted background file %s (age %s)", *bgFilePath, age)
		} else {
			monitoring.Logf("persisted background file %s is stale (age %s > max %s), recalibrating", *bgFilePath, age, maxBackgroundAge)
		}
	}

	var source sensor.FrameSource
	if *serialPort != "" {
		source, err = sensor.OpenSerial(*serialPort)
		if err != nil {
			log.Fatalf("failed to open serial frame source: %v", err)
		}
	} else {
		frames, loadErr := loadFixtures(*fixturesPath)
		if loadErr != nil {
			log.Fatalf("failed to load fixtures: %v", loadErr)
		}
		source = sensor.NewMockFrameSource(frames, sensor.NominalPeriod, nil)
	}
	defer source.Close()

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wg.Add(1)
	go func() {
		defer wg.Done()
		runPipeline(ctx, pipeline, source, *bgFilePath, *sensorID, store)
		monitoring.Logf("pipeline routine terminated")
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		runHTTPServer(ctx, counter, store, pipeline, *listen, *enableDebug)
		monitoring.Logf("http server routine terminated")
	}()

	wg.Wait()
	monitoring.Logf("graceful shutdown complete")
}

// eventPersister adapts persistence.Store to thermal.EventSink so it can sit
// downstream of occupancy.Counter.
type eventPersister struct {
	store *persistence.Store
}

func (p *eventPersister) OnEvent(e thermal.CrossingEvent) {
	if _, err := p.store.InsertEvent(e); err != nil {
		monitoring.Logf("failed to persist crossing event: %v", err)
	}
}

func loadStartupBackground(path string) (thermal.Background, time.Duration, error) {
	info, err := os.Stat(path)
	if err != nil {
		return thermal.Background{}, 0, err
	}
	bg, err := persistence.LoadBackground(path)
	if err != nil {
		return thermal.Background{}, 0, err
	}
	return bg, time.Since(info.ModTime()), nil
}

func loadFixtures(path string) ([]thermal.Frame, error) {
	if path == "" {
		return nil, fmt.Errorf("main: -fixtures is required when -serial-port is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("main: read fixtures file: %w", err)
	}

	var frames []thermal.Frame
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		frame, err := sensor.ParseFrameLine(line)
		if err != nil {
			return nil, fmt.Errorf("main: parse fixture line: %w", err)
		}
		frames = append(frames, frame)
	}
	return frames, nil
}

func runPipeline(ctx context.Context, pipeline *thermal.Pipeline, source sensor.FrameSource, bgFilePath, sensorID string, store *persistence.Store) {
	const snapshotInterval = 100 // frames between periodic background snapshots
	var frameCount int64

	for {
		select {
		case <-ctx.Done():
			pipeline.Stop(time.Now())
			return
		default:
		}

		frameCtx, cancelFrame := context.WithTimeout(ctx, sensor.StallGrace)
		wallClock, frame, err := source.NextFrame(frameCtx)
		cancelFrame()
		if err != nil {
			if ctx.Err() != nil {
				pipeline.Stop(time.Now())
				return
			}
			monitoring.Logf("frame source error: %v", err)
			continue
		}

		if err := pipeline.Step(wallClock, frame); err != nil {
			monitoring.Logf("pipeline step error: %v", err)
			continue
		}

		frameCount++
		if pipeline.Calibrated() && frameCount%snapshotInterval == 0 {
			bg := pipeline.Background()
			if err := persistence.SaveBackground(bgFilePath, bg); err != nil {
				monitoring.Logf("failed to save background file: %v", err)
			}
			if _, err := store.InsertSnapshot(sensorID, "periodic", bg, wallClock); err != nil {
				monitoring.Logf("failed to persist background snapshot: %v", err)
			}
		}
	}
}

func runHTTPServer(ctx context.Context, counter *occupancy.Counter, store *persistence.Store, pipeline *thermal.Pipeline, listenAddr string, debug bool) {
	srv := api.New(counter, store, pipeline)
	mux := http.NewServeMux()
	mux.Handle("/", srv.Handler())

	if debug {
		if err := api.AttachAdminRoutes(mux, store); err != nil {
			monitoring.Logf("failed to attach admin routes: %v", err)
		}
	}

	httpServer := &http.Server{
		Addr:    listenAddr,
		Handler: mux,
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start HTTP server: %v", err)
		}
	}()

	<-ctx.Done()
	monitoring.Logf("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		monitoring.Logf("HTTP server shutdown error: %v", err)
	}
}
