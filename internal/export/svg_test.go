package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/algoviz/internal/model"
	"github.com/san-kum/algoviz/internal/render"
)

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 2) != "" {
		t.Error("nil canvas should render nothing")
	}

	c := render.NewCanvas(4, 2)
	c.Set(0, 0, render.ClassBar)
	c.Set(3, 5, render.ClassBar)

	svg := CanvasToSVG(c, 2)
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("expected 2 dots, got %d", got)
	}
	if !strings.Contains(svg, `width="16" height="16"`) {
		t.Errorf("unexpected size header: %s", svg[:120])
	}
}

func TestSceneToSVGBars(t *testing.T) {
	bars := model.NewBars([]int{5, 3, 8}, model.DefaultLayout())
	svg := SceneToSVG(render.BarScene(bars, []int{0}, []int{2}))

	if got := strings.Count(svg, "<rect"); got != 4 {
		t.Errorf("expected background plus 3 bars, got %d rects", got)
	}
	for _, want := range []string{svgCompare, svgSwap, ">8</text>"} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestSceneToSVGGraph(t *testing.T) {
	g := model.NewGraph(3, model.DefaultLayout())
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)

	svg := SceneToSVG(render.GraphScene(g, []int{1}, [][2]int{{1, 0}}))
	if got := strings.Count(svg, "<line"); got != 2 {
		t.Errorf("expected 2 edges, got %d", got)
	}
	if got := strings.Count(svg, "<circle"); got != 3 {
		t.Errorf("expected 3 nodes, got %d", got)
	}
	if !strings.Contains(svg, svgEdgeHot) || !strings.Contains(svg, svgActive) {
		t.Error("highlights should be drawn")
	}
}

func TestWriteSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "final.svg")
	if err := WriteSVG(path, render.Scene{}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), "</svg>") {
		t.Error("file should hold a complete document")
	}
}
