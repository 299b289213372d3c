package config

import (
	"math/rand"
	"sort"
)

// Preset builds a named starting array of about n values.
type Preset struct {
	Name        string
	Description string
	Build       func(n int, rng *rand.Rand) []int
}

var Presets = map[string]*Preset{
	"classic": {
		Name:        "classic",
		Description: "the four-value walkthrough 5 3 8 1",
		Build: func(int, *rand.Rand) []int {
			return []int{5, 3, 8, 1}
		},
	},
	"sorted": {
		Name:        "sorted",
		Description: "already ascending",
		Build: func(n int, _ *rand.Rand) []int {
			return ramp(n)
		},
	},
	"reversed": {
		Name:        "reversed",
		Description: "strictly descending, worst case for bubble and quick",
		Build: func(n int, _ *rand.Rand) []int {
			v := ramp(n)
			for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
				v[i], v[j] = v[j], v[i]
			}
			return v
		},
	},
	"few-unique": {
		Name:        "few-unique",
		Description: "four distinct values, many ties",
		Build: func(n int, rng *rand.Rand) []int {
			levels := []int{20, 45, 70, 95}
			v := make([]int, n)
			for i := range v {
				v[i] = levels[rng.Intn(len(levels))]
			}
			return v
		},
	},
	"nearly-sorted": {
		Name:        "nearly-sorted",
		Description: "ascending with a few adjacent pairs exchanged",
		Build: func(n int, rng *rand.Rand) []int {
			v := ramp(n)
			if n < 2 {
				return v
			}
			for k := 0; k < n/10+1; k++ {
				i := rng.Intn(n - 1)
				v[i], v[i+1] = v[i+1], v[i]
			}
			return v
		},
	},
}

// ramp spreads n ascending values over [5, 104].
func ramp(n int) []int {
	v := make([]int, n)
	if n == 1 {
		v[0] = 5
		return v
	}
	for i := range v {
		v[i] = 5 + i*99/(n-1)
	}
	return v
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
