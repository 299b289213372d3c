// Package run owns a visualization session and enforces that at most one
// algorithm run is active at a time.
//
// The Controller is the surface a UI drives: generate, start, cancel, save,
// load, speed, algorithm and size selection, and node hit testing. While a
// run is active the controls are disabled through the ControlSurface and
// model-changing operations are rejected with ErrBusy. Controls are
// re-enabled on every exit path, including a panicking algorithm.
package run
