// Package thermal implements the doorway people-counting core: adaptive
// background estimation, foreground discrimination, body extraction, and
// multi-object tracking with direction inference over an 8x8 thermal grid.
//
// Everything in this package runs synchronously on the pipeline thread. No
// type here takes a lock, blocks, or spawns a goroutine; callers drive it
// one frame at a time via Pipeline.Step.
package thermal
