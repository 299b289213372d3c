package metrics

// CountInversions returns the number of pairs i < j with values[i] > values[j].
func CountInversions(values []int) int {
	n := 0
	for i := range values {
		for j := i + 1; j < len(values); j++ {
			if values[i] > values[j] {
				n++
			}
		}
	}
	return n
}

// SortedFraction is the share of adjacent pairs already in order. Arrays
// shorter than two count as sorted.
func SortedFraction(values []int) float64 {
	if len(values) < 2 {
		return 1
	}
	ordered := 0
	for i := 1; i < len(values); i++ {
		if values[i-1] <= values[i] {
			ordered++
		}
	}
	return float64(ordered) / float64(len(values)-1)
}

// Inversions reports the inversion count of the latest observation.
type Inversions struct {
	name    string
	current int
}

func NewInversions() *Inversions {
	return &Inversions{name: "inversions"}
}

func (m *Inversions) Name() string { return m.name }

func (m *Inversions) Observe(values []int) {
	m.current = CountInversions(values)
}

func (m *Inversions) Value() float64 { return float64(m.current) }

func (m *Inversions) Reset() { m.current = 0 }

// Sortedness reports SortedFraction of the latest observation.
type Sortedness struct {
	name    string
	current float64
	samples int
}

func NewSortedness() *Sortedness {
	return &Sortedness{name: "sortedness"}
}

func (m *Sortedness) Name() string { return m.name }

func (m *Sortedness) Observe(values []int) {
	m.current = SortedFraction(values)
	m.samples++
}

func (m *Sortedness) Value() float64 {
	if m.samples == 0 {
		return 1
	}
	return m.current
}

func (m *Sortedness) Reset() {
	m.current = 0
	m.samples = 0
}

// Churn is the mean number of slots whose value changed between
// consecutive observations.
type Churn struct {
	name    string
	prev    []int
	changed int
	samples int
}

func NewChurn() *Churn {
	return &Churn{name: "churn"}
}

func (m *Churn) Name() string { return m.name }

func (m *Churn) Observe(values []int) {
	if m.prev != nil && len(m.prev) == len(values) {
		for i, v := range values {
			if m.prev[i] != v {
				m.changed++
			}
		}
		m.samples++
	}
	m.prev = append(m.prev[:0], values...)
}

func (m *Churn) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.changed) / float64(m.samples)
}

func (m *Churn) Reset() {
	m.prev = nil
	m.changed = 0
	m.samples = 0
}
