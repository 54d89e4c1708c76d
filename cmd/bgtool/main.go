// Command bgtool inspects and converts the binary background files written
// by internal/persistence.SaveBackground, and the gob+gzip snapshots stored
// in a doorway SQLite database.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/persistence"
	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/thermal"
)

func main() {
	bgFile := flag.String("bg-file", "", "path to a background.bin file to inspect")
	dbPath := flag.String("db", "", "path to a doorway SQLite database to inspect")
	sensorID := flag.String("sensor-id", "doorway-1", "sensor ID to query snapshots for, with -db")
	dump := flag.String("dump", "", "write the inspected background as JSON to this path instead of stdout")
	flag.Parse()

	var bg thermal.Background
	var source string

	switch {
	case *bgFile != "":
		loaded, err := persistence.LoadBackground(*bgFile)
		if err != nil {
			log.Fatalf("bgtool: %v", err)
		}
		bg = loaded
		source = *bgFile

	case *dbPath != "":
		store, err := persistence.Open(*dbPath)
		if err != nil {
			log.Fatalf("bgtool: open store: %v", err)
		}
		defer store.Close()

		snap, err := store.LatestSnapshot(*sensorID)
		if err != nil {
			log.Fatalf("bgtool: query latest snapshot: %v", err)
		}
		if snap == nil {
			log.Fatalf("bgtool: no snapshot recorded for sensor %q", *sensorID)
		}
		bg = snap.Grid
		source = fmt.Sprintf("%s (sensor=%s, taken=%s)", *dbPath, snap.SensorID, snap.TakenAt)

	default:
		fmt.Fprintln(os.Stderr, "bgtool: one of -bg-file or -db is required")
		flag.Usage()
		os.Exit(2)
	}

	out := os.Stdout
	if *dump != "" {
		f, err := os.Create(*dump)
		if err != nil {
			log.Fatalf("bgtool: create output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(bg); err != nil {
		log.Fatalf("bgtool: encode: %v", err)
	}

	log.Printf("inspected background from %s", source)
	printSummary(bg)
}

func printSummary(bg thermal.Background) {
	min, max, sum := bg[0][0], bg[0][0], 0.0
	for r := 0; r < thermal.GridSize; r++ {
		for c := 0; c < thermal.GridSize; c++ {
			v := bg[r][c]
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
			sum += v
		}
	}
	n := float64(thermal.GridSize * thermal.GridSize)
	log.Printf("min=%.2f max=%.2f mean=%.2f", min, max, sum/n)
}
