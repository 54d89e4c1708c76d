// Package analytics computes hourly/daily occupancy histograms from the
// persistence event store and can export a PNG time-series chart, as an
// offline counterpart to the live internal/api dashboard.
package analytics
