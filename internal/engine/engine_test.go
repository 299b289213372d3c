package engine

import (
	"context"
	"math/rand"
	"sort"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/algoviz/internal/model"
	"github.com/san-kum/algoviz/internal/render"
	"github.com/san-kum/algoviz/internal/timing"
)

type harness struct {
	engine *Engine
	clock  *timing.InstantClock
	frames *render.Recorder
	stats  *Stats
	steps  []Step
}

func newHarness() *harness {
	h := &harness{
		clock:  timing.NewInstantClock(),
		frames: render.NewRecorder(0),
		stats:  &Stats{},
	}
	h.engine = New(timing.New(h.clock), h.frames)
	h.engine.AddObserver(h.stats)
	h.engine.AddObserver(ObserverFunc(func(s Step) { h.steps = append(h.steps, s) }))
	return h
}

func (h *harness) kinds(k StepKind) []Step {
	var out []Step
	for _, s := range h.steps {
		if s.Kind == k {
			out = append(out, s)
		}
	}
	return out
}

func (h *harness) lastMessage() string {
	Expect(h.steps).NotTo(BeEmpty())
	return h.steps[len(h.steps)-1].Message
}

func bars(values ...int) *model.Bars {
	return model.NewBars(values, model.DefaultLayout())
}

func sortedCopy(values []int) []int {
	out := append([]int(nil), values...)
	sort.Ints(out)
	return out
}

// chainGraph builds 0-1, 0-2, 1-3, 2-4, 3-5.
// distancesFrom returns hop counts from start for every reachable node.
func distancesFrom(g *model.Graph, start int) map[int]int {
	dist := map[int]int{start: 0}
	queue := []int{start}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, m := range g.Neighbors(n) {
			if _, ok := dist[m]; !ok {
				dist[m] = dist[n] + 1
				queue = append(queue, m)
			}
		}
	}
	return dist
}

func chainGraph() *model.Graph {
	g := model.NewGraph(6, model.DefaultLayout())
	g.AddEdge(0, 1)
	g.AddEdge(0, 2)
	g.AddEdge(1, 3)
	g.AddEdge(2, 4)
	g.AddEdge(3, 5)
	return g
}

var _ = Describe("Sorting", func() {
	var h *harness

	BeforeEach(func() {
		h = newHarness()
	})

	Describe("bubble sort", func() {
		It("sorts [5,3,8,1] with 6 compares and 4 swaps", func() {
			b := bars(5, 3, 8, 1)
			Expect(h.engine.Bubble(context.Background(), b)).To(Succeed())

			Expect(b.Values()).To(Equal([]int{1, 3, 5, 8}))
			Expect(h.stats.Counts().Compares).To(Equal(6))
			Expect(h.stats.Counts().Swaps).To(Equal(4))
			Expect(h.lastMessage()).To(Equal("Bubble Sort complete."))
		})

		It("explains the first compare and swap", func() {
			Expect(h.engine.Bubble(context.Background(), bars(5, 3))).To(Succeed())

			Expect(h.steps[0].Message).To(Equal("Comparing 5 and 3"))
			Expect(h.steps[1].Message).To(Equal("Swapping 5 and 3"))
		})

		It("completes an empty array without steps", func() {
			Expect(h.engine.Bubble(context.Background(), bars())).To(Succeed())

			Expect(h.steps).To(HaveLen(1))
			Expect(h.steps[0].Kind).To(Equal(StepDone))
		})

		It("rejects a nil model", func() {
			Expect(h.engine.Bubble(context.Background(), nil)).To(MatchError(ErrNoInput))
		})
	})

	DescribeTable("every sort yields a sorted permutation",
		func(name string) {
			rng := rand.New(rand.NewSource(7))
			for trial := 0; trial < 20; trial++ {
				h := newHarness()
				values := model.RandomValues(model.MinSize+rng.Intn(model.MaxSize-model.MinSize+1), rng)
				b := bars(values...)

				Expect(h.engine.Run(context.Background(), name, Workspace{Bars: b})).To(Succeed())
				Expect(b.Values()).To(Equal(sortedCopy(values)))
			}
		},
		Entry("bubble", "bubble"),
		Entry("quick", "quick"),
		Entry("merge", "merge"),
	)

	DescribeTable("bars end anchored in slot order",
		func(name string) {
			b := bars(9, 2, 7, 4, 4, 1)
			slots := make([]float64, b.Len())
			for i := range slots {
				slots[i] = b.At(i).X
			}

			Expect(h.engine.Run(context.Background(), name, Workspace{Bars: b})).To(Succeed())
			for i := 0; i < b.Len(); i++ {
				Expect(b.At(i).X).To(BeNumerically("~", slots[i], 1e-9))
				Expect(b.At(i).TargetX).To(Equal(b.At(i).X))
			}
		},
		Entry("bubble", "bubble"),
		Entry("quick", "quick"),
		Entry("merge", "merge"),
	)

	Describe("quick sort", func() {
		It("keeps the partition invariant", func() {
			rng := rand.New(rand.NewSource(3))
			for trial := 0; trial < 30; trial++ {
				values := model.RandomValues(12, rng)
				b := bars(values...)
				low, high := rng.Intn(6), 6+rng.Intn(6)
				pivot := b.Value(high)

				p, err := h.engine.partition(context.Background(), b, low, high)
				Expect(err).NotTo(HaveOccurred())
				Expect(b.Value(p)).To(Equal(pivot))
				for i := low; i < p; i++ {
					Expect(b.Value(i)).To(BeNumerically("<", pivot))
				}
				for i := p + 1; i <= high; i++ {
					Expect(b.Value(i)).To(BeNumerically(">=", pivot))
				}
			}
		})

		It("only moves equal values when placing the pivot", func() {
			b := bars(4, 4, 4, 4, 4)
			Expect(h.engine.Quick(context.Background(), b)).To(Succeed())

			high := -1
			for _, s := range h.steps {
				switch s.Kind {
				case StepPartition:
					high = s.I
				case StepSwap:
					Expect(high).NotTo(Equal(-1))
					Expect(s.J).To(Equal(high), "swap %d-%d is not the pivot placement", s.I, s.J)
				}
			}
			Expect(b.Values()).To(Equal([]int{4, 4, 4, 4, 4}))
			Expect(h.lastMessage()).To(Equal("Quick Sort complete."))
		})

		It("announces each pivot", func() {
			Expect(h.engine.Quick(context.Background(), bars(3, 1, 2))).To(Succeed())

			parts := h.kinds(StepPartition)
			Expect(parts).NotTo(BeEmpty())
			Expect(parts[0].Message).To(Equal("Partitioning with pivot 2"))
		})
	})

	Describe("merge sort", func() {
		It("is stable", func() {
			values := []int{3, 1, 3, 2, 1, 3, 2, 1}
			b := bars(values...)

			ids := make([]int, len(values))
			for i := range ids {
				ids[i] = i
			}
			var snapshot []int
			h.engine.AddObserver(ObserverFunc(func(s Step) {
				switch s.Kind {
				case StepMerge:
					snapshot = append([]int(nil), ids...)
				case StepWrite:
					ids[s.I] = snapshot[s.Source]
				}
			}))

			Expect(h.engine.Merge(context.Background(), b)).To(Succeed())
			Expect(b.Values()).To(Equal(sortedCopy(values)))
			for i := 1; i < len(ids); i++ {
				if b.Value(i) == b.Value(i-1) {
					Expect(ids[i]).To(BeNumerically(">", ids[i-1]))
				}
			}
		})

		It("writes every position of every merge", func() {
			Expect(h.engine.Merge(context.Background(), bars(4, 3, 2, 1))).To(Succeed())

			Expect(h.kinds(StepMerge)).To(HaveLen(3))
			Expect(h.stats.Counts().Writes).To(Equal(8))
			Expect(h.kinds(StepMerge)[2].Message).To(Equal("Merging segments [0, 1] and [2, 3]"))
			Expect(h.lastMessage()).To(Equal("Merge Sort complete."))
		})
	})
})

var _ = Describe("Graph traversal", func() {
	var h *harness

	BeforeEach(func() {
		h = newHarness()
	})

	visitOrder := func() []int {
		var order []int
		for _, s := range h.kinds(StepVisit) {
			order = append(order, s.I)
		}
		return order
	}

	It("visits breadth first in adjacency order", func() {
		Expect(h.engine.BFS(context.Background(), chainGraph(), 0)).To(Succeed())

		Expect(visitOrder()).To(Equal([]int{0, 1, 2, 3, 4, 5}))
		Expect(h.stats.Counts().Edges).To(Equal(5))
		Expect(h.lastMessage()).To(Equal("BFS complete."))
	})

	It("visits depth first in adjacency order", func() {
		Expect(h.engine.DFS(context.Background(), chainGraph(), 0)).To(Succeed())

		Expect(visitOrder()).To(Equal([]int{0, 1, 3, 5, 2, 4}))
		Expect(h.lastMessage()).To(Equal("DFS complete."))
	})

	It("visits each reachable node once on random graphs", func() {
		rng := rand.New(rand.NewSource(11))
		for trial := 0; trial < 20; trial++ {
			g := model.GenerateGraph(5+rng.Intn(10), model.DefaultLayout(), rng)
			for _, name := range []string{"bfs", "dfs"} {
				h := newHarness()
				Expect(h.engine.Run(context.Background(), name, Workspace{Graph: g})).To(Succeed())

				dist := distancesFrom(g, 0)
				seen := map[int]bool{}
				last := 0
				for _, s := range h.kinds(StepVisit) {
					Expect(seen[s.I]).To(BeFalse())
					seen[s.I] = true
					if name == "bfs" {
						Expect(dist[s.I]).To(BeNumerically(">=", last), "bfs visited %d out of distance order", s.I)
						last = dist[s.I]
					}
				}
				Expect(seen).To(HaveLen(len(dist)))
				for id := range dist {
					Expect(seen).To(HaveKey(id))
				}
				Expect(h.stats.Counts().Edges).To(Equal(len(seen) - 1))
			}
		}
	})

	It("reports partial coverage on a disconnected graph", func() {
		g := model.NewGraph(4, model.DefaultLayout())
		g.AddEdge(0, 1)

		Expect(h.engine.DFS(context.Background(), g, 0)).To(Succeed())
		Expect(h.lastMessage()).To(Equal("DFS reached 2 of 4 nodes."))
	})

	DescribeTable("a single node completes with no edges",
		func(name, done string) {
			g := model.NewGraph(1, model.DefaultLayout())
			Expect(h.engine.Run(context.Background(), name, Workspace{Graph: g})).To(Succeed())

			Expect(h.stats.Counts().Visits).To(Equal(1))
			Expect(h.stats.Counts().Edges).To(BeZero())
			Expect(h.lastMessage()).To(Equal(done))
		},
		Entry("bfs", "bfs", "BFS complete."),
		Entry("dfs", "dfs", "DFS complete."),
	)

	It("pulses a traversed edge before clearing it", func() {
		g := model.NewGraph(2, model.DefaultLayout())
		g.AddEdge(0, 1)
		Expect(h.engine.BFS(context.Background(), g, 0)).To(Succeed())

		highlighted := 0
		for _, f := range h.frames.Frames() {
			if len(f.Highlight) > 0 {
				highlighted++
			}
		}
		Expect(highlighted).To(Equal(EdgePulses))
		Expect(h.kinds(StepEdge)[0].Message).To(Equal("Visiting edge 0 → 1"))
		Expect(h.clock.Elapsed()).To(Equal(2*VisitDelay + EdgePulses*EdgePulse + EdgeSettle))
	})

	It("rejects a start outside the graph", func() {
		err := h.engine.BFS(context.Background(), chainGraph(), 9)
		Expect(err).To(MatchError(ErrStartNode))
	})
})

var _ = Describe("Timing", func() {
	It("waits the scaled durations of a compare and swap", func() {
		h := newHarness()
		Expect(h.engine.Bubble(context.Background(), bars(2, 1))).To(Succeed())

		// The tween ends on the first frame at or past its duration.
		Expect(h.clock.Elapsed()).To(BeNumerically(">=", CompareDelay+SwapTween+SwapSettle))
		Expect(h.clock.Elapsed()).To(BeNumerically("<", CompareDelay+SwapTween+SwapSettle+20*time.Millisecond))
	})

	It("halves delays at double speed", func() {
		h := newHarness()
		h.engine.Timer().SetSpeed(2)
		Expect(h.engine.Bubble(context.Background(), bars(1, 2))).To(Succeed())

		Expect(h.clock.Elapsed()).To(Equal(CompareDelay / 2))
	})
})

var _ = Describe("Cancellation", func() {
	It("stops at the next step boundary and leaves bars anchored", func() {
		h := newHarness()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		h.engine.AddObserver(ObserverFunc(func(s Step) {
			if s.Kind == StepSwap {
				cancel()
			}
		}))

		b := bars(5, 3, 8, 1)
		err := h.engine.Bubble(ctx, b)

		Expect(err).To(MatchError(context.Canceled))
		Expect(b.Values()).To(Equal([]int{3, 5, 8, 1}))
		for i := 0; i < b.Len(); i++ {
			Expect(b.At(i).TargetX).To(Equal(b.At(i).X))
		}
		Expect(h.kinds(StepDone)).To(BeEmpty())
	})

	It("does not start on a canceled context", func() {
		h := newHarness()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Expect(h.engine.DFS(ctx, chainGraph(), 0)).To(MatchError(context.Canceled))
		Expect(h.frames.Total()).To(BeZero())
	})
})

var _ = Describe("Registry", func() {
	It("lists sorts before traversals", func() {
		Expect(Names()).To(Equal([]string{"bubble", "quick", "merge", "bfs", "dfs"}))
	})

	It("flags graph algorithms", func() {
		Expect(IsGraph("bfs")).To(BeTrue())
		Expect(IsGraph("dfs")).To(BeTrue())
		Expect(IsGraph("merge")).To(BeFalse())
		Expect(IsGraph("nope")).To(BeFalse())
	})

	It("rejects unknown names", func() {
		_, err := Lookup("heap")
		Expect(err).To(MatchError(ErrUnknownAlgorithm))

		err = newHarness().engine.Run(context.Background(), "heap", Workspace{})
		Expect(err).To(MatchError(ErrUnknownAlgorithm))
	})
})
