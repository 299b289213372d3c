package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/algoviz/internal/model"
)

// barBaseline is the gap between the bar bottoms and the surface edge.
const barBaseline = 10

// TermRenderer rasterizes scenes onto a braille canvas. It is not safe for
// concurrent use; the terminal app paints from its update loop only.
type TermRenderer struct {
	Canvas  *Canvas
	Palette Palette

	last   Scene
	frame  string
	labels string
}

func NewTermRenderer(cols, rows int) *TermRenderer {
	return &TermRenderer{
		Canvas:  NewCanvas(max(cols, 1), max(rows, 1)),
		Palette: DefaultPalette(),
	}
}

// Resize replaces the canvas and repaints the last scene.
func (r *TermRenderer) Resize(cols, rows int) {
	r.Canvas = NewCanvas(max(cols, 1), max(rows, 1))
	if r.last.Kind != KindEmpty {
		r.Paint(r.last)
	}
}

func (r *TermRenderer) Paint(s Scene) {
	r.last = s
	r.Canvas.Clear()
	switch s.Kind {
	case KindBars:
		r.paintBars(s)
	case KindGraph:
		r.paintGraph(s)
	default:
		r.labels = ""
	}
	r.frame = r.Canvas.Render(r.Palette)
}

// View returns the last painted frame followed by its label line.
func (r *TermRenderer) View() string {
	if r.labels == "" {
		return r.frame
	}
	return r.frame + r.labels
}

// Plain returns the canvas without styling, for tests and logs.
func (r *TermRenderer) Plain() string { return r.Canvas.String() }

func (r *TermRenderer) Last() Scene { return r.last }

func (r *TermRenderer) scale(l model.Layout) (float64, float64) {
	pw, ph := r.Canvas.PixelSize()
	w, h := l.Width, l.Height
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return float64(pw) / w, float64(ph) / h
}

func (r *TermRenderer) paintBars(s Scene) {
	sx, sy := r.scale(s.Layout)
	base := s.Layout.Height - barBaseline

	var labels []string
	for _, b := range s.Bars {
		class := ClassBar
		switch {
		case b.Swap:
			class = ClassSwap
		case b.Compare:
			class = ClassCompare
		}
		x0 := int(math.Round(b.X * sx))
		x1 := int(math.Round((b.X + b.Width) * sx))
		y0 := int(math.Round((base - b.Height) * sy))
		y1 := int(math.Round(base * sy))
		r.Canvas.FillRect(x0, y0, max(x1-x0-1, 1), max(y1-y0, 1), class)

		label := strconv.Itoa(b.Value)
		if class != ClassBar {
			label = r.Palette.Style(class).Render(label)
		}
		labels = append(labels, label)
	}
	r.labels = strings.Join(labels, " ") + "\n"
}

func (r *TermRenderer) paintGraph(s Scene) {
	sx, sy := r.scale(s.Layout)
	pos := make(map[int][2]int, len(s.Nodes))
	for _, n := range s.Nodes {
		pos[n.ID] = [2]int{int(math.Round(n.X * sx)), int(math.Round(n.Y * sy))}
	}

	for _, e := range s.Edges {
		class := ClassEdge
		if e.Highlighted {
			class = ClassEdgeHighlight
		}
		a, b := pos[e.A], pos[e.B]
		r.Canvas.DrawLine(a[0], a[1], b[0], b[1], class)
	}

	radius := max(int(math.Round(model.NodeRadius*math.Min(sx, sy))), 1)
	for _, n := range s.Nodes {
		class := ClassNode
		if n.Active {
			class = ClassActive
		}
		p := pos[n.ID]
		r.Canvas.FillCircle(p[0], p[1], radius, class)
		id := strconv.Itoa(n.ID)
		r.Canvas.Text(p[0]/2-len(id)/2, p[1]/4, id, ClassLabel)
	}

	if len(s.Active) > 0 {
		r.labels = fmt.Sprintf("active: %v\n", s.Active)
	} else {
		r.labels = ""
	}
}
