// Package engine runs sorting and graph traversal algorithms as a sequence
// of visual steps.
//
// Each step mutates the model, paints a scene and then suspends on the
// timing controller. No two steps overlap: the engine waits for every
// suspension and tween to finish before the next mutation. The context is
// checked at every step boundary so a run can be stopped between steps.
package engine
