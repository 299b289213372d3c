package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/algoviz/internal/model"
	"github.com/san-kum/algoviz/internal/render"
)

const (
	svgBackground = "#0f172a"
	svgBar        = "#4CAF50"
	svgCompare    = "#f59e0b"
	svgSwap       = "#ef4444"
	svgNode       = "#06b6d4"
	svgActive     = "#ef4444"
	svgEdge       = "#94a3b8"
	svgEdgeHot    = "#f97316"
	svgLabel      = "#ffffff"

	svgBaseline = 10
)

// CanvasToSVG converts a Braille canvas to SVG, one circle per lit dot.
func CanvasToSVG(canvas *render.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	pw, ph := canvas.PixelSize()
	width := float64(pw) * scale
	height := float64(ph) * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, svgBackground, svgBar)

	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}
	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SceneToSVG draws a scene as vector shapes on its layout surface.
func SceneToSVG(s render.Scene) string {
	l := s.Layout
	if l.Width <= 0 || l.Height <= 0 {
		l = model.DefaultLayout()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" font-family="sans-serif">
<rect width="100%%" height="100%%" fill="%s"/>
`, l.Width, l.Height, l.Width, l.Height, svgBackground)

	switch s.Kind {
	case render.KindBars:
		for _, b := range s.Bars {
			fill := svgBar
			switch {
			case b.Swap:
				fill = svgSwap
			case b.Compare:
				fill = svgCompare
			}
			y := l.Height - b.Height - svgBaseline
			fmt.Fprintf(&sb, "<rect x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\" rx=\"6\" fill=\"%s\"/>\n",
				b.X, y, b.Width, b.Height, fill)
			fmt.Fprintf(&sb, "<text x=\"%.1f\" y=\"%.1f\" fill=\"%s\" font-size=\"%.0f\" text-anchor=\"middle\" dominant-baseline=\"middle\">%d</text>\n",
				b.X+b.Width/2, y+b.Height/2, svgLabel, max(10, b.Width/2), b.Value)
		}

	case render.KindGraph:
		pos := make(map[int]render.NodeView, len(s.Nodes))
		for _, n := range s.Nodes {
			pos[n.ID] = n
		}
		for _, e := range s.Edges {
			a, b := pos[e.A], pos[e.B]
			stroke, width := svgEdge, 2
			if e.Highlighted {
				stroke, width = svgEdgeHot, 4
			}
			fmt.Fprintf(&sb, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=\"%s\" stroke-width=\"%d\"/>\n",
				a.X, a.Y, b.X, b.Y, stroke, width)
		}
		for _, n := range s.Nodes {
			fill := svgNode
			if n.Active {
				fill = svgActive
			}
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.0f\" fill=\"%s\"/>\n", n.X, n.Y, model.NodeRadius, fill)
			fmt.Fprintf(&sb, "<text x=\"%.1f\" y=\"%.1f\" fill=\"%s\" font-size=\"14\" text-anchor=\"middle\" dominant-baseline=\"middle\">%d</text>\n",
				n.X, n.Y, svgLabel, n.ID)
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// WriteSVG writes SceneToSVG(s) to path.
func WriteSVG(path string, s render.Scene) error {
	return os.WriteFile(path, []byte(SceneToSVG(s)), 0o644)
}
