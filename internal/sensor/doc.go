// Package sensor supplies thermal.Frames to the core pipeline at ~10 Hz,
// either from a physical grid-eye-over-serial bridge or from a replayed
// fixture. It owns the only concurrency permitted around the core: a
// background reader goroutine feeding a single-slot buffer that NextFrame
// drains.
package sensor
