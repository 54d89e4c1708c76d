// Package occupancy aggregates thermal.CrossingEvents into a running
// headcount and recent event history for the host process.
package occupancy
