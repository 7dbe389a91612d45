// Package render turns diagrams into viewable artifacts.
//
// # Overview
//
// Two renderers cover the two views of a process:
//
//   - [RenderSVG] draws a positioned [diagram.Diagram] as a swimlane
//     SVG: lane bands, shape primitives per element kind, and
//     orthogonal connectors with arrowheads.
//   - [ToDOT] emits the raw process graph in Graphviz DOT for quick
//     structural inspection, rendered via [RenderDOTSVG] or
//     [RenderDOTPNG].
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG to print and raster formats by
// shelling out to rsvg-convert (librsvg). The swimlane renderer and
// the DOT renderer both produce SVG these accept.
//
//	svg := render.RenderSVG(&diag)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// # Interactivity
//
// [WithInteraction] embeds a hover script into the SVG: pointing at an
// element highlights the connectors attached to it. The script is
// self-contained and only runs when the SVG is opened in a browser.
package render
