// Package render turns item state into pictures.
//
// A [Scene] is an immutable snapshot of one frame: the bars or graph, plus
// the items to highlight. Renderers implement [Renderer] and may keep a
// Scene after Paint returns, because scenes never alias model state.
//
//   - [TermRenderer]: braille canvas for the terminal
//   - [PNGRenderer]: one PNG file per frame
//   - [Recorder]: bounded frame history
//   - [Multi]: fan-out to several renderers
package render
