// Package config loads a JSON tuning file into a validated thermal.Config,
// plus the background-file staleness limit (max_background_age). The other
// host-level knobs (serial port, database path, HTTP listen address) are
// command-line flags parsed by the main package.
package config
