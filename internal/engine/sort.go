package engine

import (
	"context"
	"fmt"

	"github.com/san-kum/algoviz/internal/model"
)

// Bubble runs n full passes of adjacent compare-and-swap. There is no early
// exit on a pass without swaps.
func (e *Engine) Bubble(ctx context.Context, bars *model.Bars) error {
	if bars == nil {
		return ErrNoInput
	}
	n := bars.Len()
	for i := 0; i < n; i++ {
		for j := 0; j < n-i-1; j++ {
			if err := e.compare(ctx, bars, j, j+1); err != nil {
				return err
			}
			if bars.Value(j) > bars.Value(j+1) {
				if err := e.swap(ctx, bars, j, j+1); err != nil {
					return err
				}
			}
		}
	}
	e.paintBars(bars, nil, nil)
	e.done("Bubble Sort complete.")
	return nil
}

// Quick sorts with Lomuto partitioning around the last element.
func (e *Engine) Quick(ctx context.Context, bars *model.Bars) error {
	if bars == nil {
		return ErrNoInput
	}
	if err := e.quick(ctx, bars, 0, bars.Len()-1); err != nil {
		return err
	}
	e.paintBars(bars, nil, nil)
	e.done("Quick Sort complete.")
	return nil
}

func (e *Engine) quick(ctx context.Context, bars *model.Bars, low, high int) error {
	if low >= high {
		return nil
	}
	p, err := e.partition(ctx, bars, low, high)
	if err != nil {
		return err
	}
	if err := e.quick(ctx, bars, low, p-1); err != nil {
		return err
	}
	return e.quick(ctx, bars, p+1, high)
}

// partition places the pivot at its sorted index and returns it. Values
// strictly less than the pivot end up to its left. The scan never swaps on
// equality; only the final pivot placement may exchange equal values.
func (e *Engine) partition(ctx context.Context, bars *model.Bars, low, high int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	pivot := bars.Value(high)
	e.emit(Step{
		Kind:    StepPartition,
		I:       high,
		Value:   pivot,
		Message: fmt.Sprintf("Partitioning with pivot %d", pivot),
	})

	i := low - 1
	for j := low; j < high; j++ {
		if err := e.compare(ctx, bars, j, high); err != nil {
			return 0, err
		}
		if bars.Value(j) < pivot {
			i++
			if i != j {
				if err := e.swap(ctx, bars, i, j); err != nil {
					return 0, err
				}
			}
		}
	}
	if i+1 != high {
		if err := e.swap(ctx, bars, i+1, high); err != nil {
			return 0, err
		}
	}
	return i + 1, nil
}

// Merge sorts top-down, writing merged values back into the bars in place.
func (e *Engine) Merge(ctx context.Context, bars *model.Bars) error {
	if bars == nil {
		return ErrNoInput
	}
	if err := e.mergeSort(ctx, bars, 0, bars.Len()-1); err != nil {
		return err
	}
	e.paintBars(bars, nil, nil)
	e.done("Merge Sort complete.")
	return nil
}

func (e *Engine) mergeSort(ctx context.Context, bars *model.Bars, left, right int) error {
	if left >= right {
		return nil
	}
	mid := left + (right-left)/2
	if err := e.mergeSort(ctx, bars, left, mid); err != nil {
		return err
	}
	if err := e.mergeSort(ctx, bars, mid+1, right); err != nil {
		return err
	}
	return e.merge(ctx, bars, left, mid, right)
}

func (e *Engine) merge(ctx context.Context, bars *model.Bars, left, mid, right int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.emit(Step{
		Kind:    StepMerge,
		I:       left,
		J:       right,
		Message: fmt.Sprintf("Merging segments [%d, %d] and [%d, %d]", left, mid, mid+1, right),
	})

	values := bars.Values()
	lp := values[left : mid+1]
	rp := values[mid+1 : right+1]

	i, j, k := 0, 0, left
	for i < len(lp) && j < len(rp) {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.paintBars(bars, []int{k}, nil)
		if err := e.timer.Suspend(ctx, MergeHighlight); err != nil {
			return err
		}

		var v, src int
		if lp[i] <= rp[j] {
			v, src = lp[i], left+i
			i++
		} else {
			v, src = rp[j], mid+1+j
			j++
		}
		if err := e.write(ctx, bars, k, v, src, MergeWrite); err != nil {
			return err
		}
		k++
	}
	for ; i < len(lp); i++ {
		if err := e.write(ctx, bars, k, lp[i], left+i, MergeDrain); err != nil {
			return err
		}
		k++
	}
	for ; j < len(rp); j++ {
		if err := e.write(ctx, bars, k, rp[j], mid+1+j, MergeDrain); err != nil {
			return err
		}
		k++
	}
	return nil
}
