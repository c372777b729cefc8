// Package render converts rendered diagrams between output formats.
//
// SVG is produced in-process by the [nodelink] subpackage. [ToPDF] and [ToPNG]
// convert that SVG with the external rsvg-convert tool (from librsvg):
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// [nodelink]: github.com/matzehuels/graphdesk/pkg/render/nodelink
package render
