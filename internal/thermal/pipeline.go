package thermal

import "time"

// EventSink receives CrossingEvents synchronously from the pipeline step,
// at most once per track, per SPEC_FULL.md §4.5/§6.
type EventSink interface {
	OnEvent(CrossingEvent)
}

// Pipeline wires the Background Model, Discriminator, Body Extractor and
// Tracker into the single synchronous Step the Frame Source drives.
type Pipeline struct {
	cfg Config

	background    *BackgroundModel
	discriminator *Discriminator
	extractor     *BodyExtractor
	tracker       *Tracker

	frameIndex int64
	sink       EventSink
}

// New constructs a Pipeline. cfg is validated; an invalid config is
// returned as a *ConfigInvalidError and the pipeline is not built.
func New(cfg Config, sink EventSink) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{
		cfg:           cfg,
		background:    NewBackgroundModel(cfg),
		discriminator: NewDiscriminator(cfg),
		extractor:     NewBodyExtractor(cfg),
		tracker:       NewTracker(cfg),
		sink:          sink,
	}, nil
}

// Calibrated reports whether the background model has finished its
// calibration window and the pipeline is forwarding frames for tracking.
func (p *Pipeline) Calibrated() bool {
	return p.background.Calibrated()
}

// Background returns the current baseline, for persistence or inspection.
func (p *Pipeline) Background() Background {
	return p.background.Current()
}

// Step processes one frame. While calibrating it feeds the Background
// Model and returns immediately (no frame is forwarded downstream until
// calibration completes, per spec §4.1). Once calibrated, it runs the
// discrimination/extraction/tracking cascade and delivers any resulting
// CrossingEvents to the sink before returning.
//
// A FrameInvalidError drops the frame without advancing calibration or the
// background. Frames consumed by calibration do not advance the frame
// index; every valid frame after calibration does.
func (p *Pipeline) Step(wallClock time.Time, frame Frame) error {
	if !p.background.Calibrated() {
		if _, err := p.background.FeedCalibration(frame); err != nil {
			return err
		}
		return nil
	}

	if err := validateFrame(frame); err != nil {
		return err
	}

	p.frameIndex++

	bg := p.background.Current()
	fg := p.discriminator.Classify(frame, bg)
	p.background.UpdateAdaptive(frame, fg.Mask)

	var detections []Detection
	if fg.Present {
		detections = p.extractor.Extract(fg.Mask, fg.Delta)
	}

	events := p.tracker.Step(p.frameIndex, wallClock, detections)
	p.deliver(events)
	return nil
}

// SeedBackground installs a previously-persisted background and skips the
// calibration window, per spec §6. It must be called before the first Step.
func (p *Pipeline) SeedBackground(bg Background) {
	p.background.Seed(bg)
}

// Recalibrate wires the host's "recalibrate" control signal: it resets the
// Background Model so the next frames start a fresh calibration window.
// Live tracks are unaffected.
func (p *Pipeline) Recalibrate() {
	p.background.Recalibrate()
}

// Stop implements the cooperative shutdown of spec §5: it flushes every
// remaining track as if it died on the current frame, classifying each
// once, and delivers any resulting events before returning.
func (p *Pipeline) Stop(wallClock time.Time) {
	events := p.tracker.Stop(p.frameIndex, wallClock)
	p.deliver(events)
}

func (p *Pipeline) deliver(events []CrossingEvent) {
	if p.sink == nil {
		return
	}
	for _, e := range events {
		p.sink.OnEvent(e)
	}
}
