package persistence

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/thermal"
)

// bgFileCells is the fixed record length of a background file: an 8x8
// matrix of float64 cells, row-major, little-endian, with no header.
const bgFileCells = thermal.GridSize * thermal.GridSize

// SaveBackground writes bg to path in the fixed little-endian binary format.
// It writes to a temporary file in the same directory and renames into
// place so a crash or power loss never leaves a partially-written file.
func SaveBackground(path string, bg thermal.Background) error {
	buf := make([]byte, bgFileCells*8)
	i := 0
	for row := 0; row < thermal.GridSize; row++ {
		for col := 0; col < thermal.GridSize; col++ {
			binary.LittleEndian.PutUint64(buf[i:], math.Float64bits(bg[row][col]))
			i += 8
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf, 0o644); err != nil {
		return fmt.Errorf("persistence: write background file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("persistence: rename background file: %w", err)
	}
	return nil
}

// LoadBackground reads a background file written by SaveBackground.
func LoadBackground(path string) (thermal.Background, error) {
	var bg thermal.Background

	data, err := os.ReadFile(path)
	if err != nil {
		return bg, fmt.Errorf("persistence: read background file: %w", err)
	}
	if len(data) != bgFileCells*8 {
		return bg, fmt.Errorf("persistence: background file %s has %d bytes, want %d", path, len(data), bgFileCells*8)
	}

	i := 0
	for row := 0; row < thermal.GridSize; row++ {
		for col := 0; col < thermal.GridSize; col++ {
			bg[row][col] = math.Float64frombits(binary.LittleEndian.Uint64(data[i:]))
			i += 8
		}
	}
	return bg, nil
}
