// Package viz is the interactive terminal front end.
//
// [App] is a Bubble Tea model hosting a run.Controller. The controller
// paints and notifies through a [Bridge], which keeps only the newest
// scene, message and control state so a fast animation never blocks the
// UI loop.
//
// # Key Bindings
//
//	s/enter - start the selected algorithm
//	x/esc   - stop a running visualization
//	g       - generate a random array or graph
//	a/tab   - cycle algorithms
//	+/-     - change the speed multiplier
//	n, u    - edit the size or username
//	w, l    - save or load the array for the current user
//	p, t    - cycle presets and themes
//
// Left clicks on a graph node report and highlight it.
package viz
