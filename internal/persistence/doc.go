// Package persistence implements the two ambient storage concerns that sit
// outside the thermal core: the raw binary background-file format used to
// skip calibration across restarts, and a SQLite-backed history of crossing
// events and background snapshots for the HTTP API and analytics to query.
package persistence
