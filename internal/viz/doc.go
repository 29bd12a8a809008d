// Package viz draws trails in the terminal.
//
// [Canvas] is a Braille canvas with 2x4 dots per cell. It implements
// surface.Surface, so the engine renders into it exactly as it would into
// a window. Dots keep a light value: additive strokes add their alpha,
// normal strokes blend over, and a dot is drawn once its light passes the
// canvas threshold. A frame is painted in the single hue of its strokes.
package viz
