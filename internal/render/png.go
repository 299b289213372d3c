package render

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/san-kum/algoviz/internal/model"
)

// Browser palette.
const (
	colorBackground = "#0f172a"
	colorBar        = "#4CAF50"
	colorCompare    = "#f59e0b"
	colorSwap       = "#ef4444"
	colorNode       = "#06b6d4"
	colorActive     = "#ef4444"
	colorEdge       = "#94a3b8"
	colorEdgeHot    = "#f97316"
	colorLabel      = "#ffffff"
)

// PNGRenderer writes every painted scene to Dir as frame_00000.png,
// frame_00001.png, ... The first write error is kept and later frames are
// skipped.
type PNGRenderer struct {
	Dir    string
	Width  int
	Height int

	mu     sync.Mutex
	font   *text.FontSource
	frames int
	err    error
}

func NewPNGRenderer(dir string, width, height int) (*PNGRenderer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return &PNGRenderer{Dir: dir, Width: width, Height: height, font: src}, nil
}

func (r *PNGRenderer) Paint(s Scene) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return
	}

	dc := r.Draw(s)
	defer dc.Close()

	path := filepath.Join(r.Dir, fmt.Sprintf("frame_%05d.png", r.frames))
	if err := dc.SavePNG(path); err != nil {
		r.err = fmt.Errorf("write %s: %w", path, err)
		return
	}
	r.frames++
}

// Draw renders s into a new drawing context without saving it.
func (r *PNGRenderer) Draw(s Scene) *gg.Context {
	dc := gg.NewContext(r.Width, r.Height)
	dc.ClearWithColor(gg.Hex(colorBackground))

	l := s.Layout
	if l.Width <= 0 || l.Height <= 0 {
		l = model.DefaultLayout()
	}
	dc.Scale(float64(r.Width)/l.Width, float64(r.Height)/l.Height)

	switch s.Kind {
	case KindBars:
		r.drawBars(dc, s, l)
	case KindGraph:
		r.drawGraph(dc, s)
	}
	return dc
}

func (r *PNGRenderer) drawBars(dc *gg.Context, s Scene, l model.Layout) {
	for _, b := range s.Bars {
		fill := colorBar
		switch {
		case b.Swap:
			fill = colorSwap
		case b.Compare:
			fill = colorCompare
		}
		y := l.Height - b.Height - barBaseline
		dc.SetHexColor(fill)
		dc.DrawRoundedRectangle(b.X, y, b.Width, b.Height, 6)
		_ = dc.Fill()

		dc.SetFont(r.font.Face(math.Max(10, math.Floor(b.Width/2))))
		dc.SetHexColor(colorLabel)
		dc.DrawStringAnchored(strconv.Itoa(b.Value), b.X+b.Width/2, y+b.Height/2, 0.5, 0.5)
	}
}

func (r *PNGRenderer) drawGraph(dc *gg.Context, s Scene) {
	pos := make(map[int]NodeView, len(s.Nodes))
	for _, n := range s.Nodes {
		pos[n.ID] = n
	}

	for _, e := range s.Edges {
		a, b := pos[e.A], pos[e.B]
		if e.Highlighted {
			dc.SetHexColor(colorEdgeHot)
			dc.SetLineWidth(4)
		} else {
			dc.SetHexColor(colorEdge)
			dc.SetLineWidth(2)
		}
		dc.DrawLine(a.X, a.Y, b.X, b.Y)
		_ = dc.Stroke()
	}

	dc.SetFont(r.font.Face(14))
	for _, n := range s.Nodes {
		if n.Active {
			dc.SetHexColor(colorActive)
		} else {
			dc.SetHexColor(colorNode)
		}
		dc.DrawCircle(n.X, n.Y, model.NodeRadius)
		_ = dc.Fill()

		dc.SetHexColor(colorLabel)
		dc.DrawStringAnchored(strconv.Itoa(n.ID), n.X, n.Y, 0.5, 0.5)
	}
}

// Frames reports how many PNG files were written.
func (r *PNGRenderer) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *PNGRenderer) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *PNGRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.font != nil {
		_ = r.font.Close()
		r.font = nil
	}
	return r.err
}
