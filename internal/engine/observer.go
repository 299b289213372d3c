package engine

import "sync"

type StepKind int

const (
	StepCompare StepKind = iota
	StepSwap
	StepPartition
	StepMerge
	StepWrite
	StepVisit
	StepEdge
	StepDone
)

func (k StepKind) String() string {
	switch k {
	case StepCompare:
		return "compare"
	case StepSwap:
		return "swap"
	case StepPartition:
		return "partition"
	case StepMerge:
		return "merge"
	case StepWrite:
		return "write"
	case StepVisit:
		return "visit"
	case StepEdge:
		return "edge"
	case StepDone:
		return "done"
	}
	return "unknown"
}

// Step describes one visual step as it starts.
//
// I and J are bar indices for compare and swap, the segment bounds for
// merge, the pivot index for partition, and node ids for visit and edge.
// For a write, I is the destination, Value the written value and Source
// the index the value held when the merge began.
type Step struct {
	Kind    StepKind
	I, J    int
	Value   int
	Source  int
	Message string
}

type Observer interface {
	OnStep(Step)
}

type ObserverFunc func(Step)

func (f ObserverFunc) OnStep(s Step) { f(s) }

// Counts is a point-in-time copy of Stats.
type Counts struct {
	Compares int
	Swaps    int
	Writes   int
	Visits   int
	Edges    int
}

// Stats counts steps by kind. It may be read while a run is in flight.
type Stats struct {
	mu sync.Mutex
	c  Counts
}

func (s *Stats) OnStep(st Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch st.Kind {
	case StepCompare:
		s.c.Compares++
	case StepSwap:
		s.c.Swaps++
	case StepWrite:
		s.c.Writes++
	case StepVisit:
		s.c.Visits++
	case StepEdge:
		s.c.Edges++
	}
}

func (s *Stats) Counts() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c
}

func (s *Stats) Reset() {
	s.mu.Lock()
	s.c = Counts{}
	s.mu.Unlock()
}
