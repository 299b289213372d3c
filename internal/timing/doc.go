// Package timing converts a user-selected speed multiplier into step delays
// and provides the suspension primitive every animated step waits on.
//
//   - [Controller]: speed multiplier, [Controller.ScaledDelay], [Controller.Suspend]
//   - [Clock]: time source; [WallClock] for real runs, [InstantClock] for
//     headless rendering and tests
//
// The multiplier may change at any time. A wait that already started keeps
// the duration it computed when it was scheduled.
package timing
