package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/matzehuels/graphdesk/pkg/graph"
	"github.com/matzehuels/graphdesk/pkg/observability"
	"github.com/matzehuels/graphdesk/pkg/render"
	"github.com/matzehuels/graphdesk/pkg/render/nodelink"
)

// =============================================================================
// Rendering
// =============================================================================

// RenderFromLayout draws g at the positions in l in every requested format.
// SVG is rendered at most once and shared by the PNG and PDF conversions.
func RenderFromLayout(ctx context.Context, l Layout, g *graph.Store, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(g, l.Positions, nodelink.Options{
		ShowWeights: opts.ShowWeights,
		Highlighted: nodelink.Highlight(g, opts.Highlighted),
	})

	var svg []byte
	svgOnce := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = nodelink.RenderSVG(ctx, dot)
		return svg, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		start := time.Now()
		observability.Pipeline().OnRenderStart(ctx, format)

		data, err := renderFormat(ctx, format, dot, l, opts, svgOnce)
		observability.Pipeline().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, format, dot string, l Layout, opts Options, svg func() ([]byte, error)) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatJSON:
		return json.MarshalIndent(l, "", "  ")
	case FormatSVG:
		return svg()
	case FormatPNG:
		data, err := svg()
		if err != nil {
			return nil, err
		}
		return render.ToPNG(ctx, data, opts.PNGScale)
	case FormatPDF:
		data, err := svg()
		if err != nil {
			return nil, err
		}
		return render.ToPDF(ctx, data)
	default:
		return nil, ValidateFormat(format)
	}
}
