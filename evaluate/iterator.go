package evaluate

import (
	"container/heap"
	"context"
	"runtime"

	"github.com/latticemotion/corelattice/constraint"
	"github.com/latticemotion/corelattice/decision"
	"github.com/latticemotion/corelattice/lattice"
	"github.com/latticemotion/corelattice/pathtime"
	"golang.org/x/sync/errgroup"
)

// Pair is one scored (longitudinal, lateral) curve combination. LonIndex/LatIndex are the
// pair's position in the bundles Evaluator was built from, used to break cost ties
// deterministically: ties are resolved by ascending (LonIndex, LatIndex).
type Pair struct {
	Lon        lattice.Curve1D
	Lat        lattice.Curve1D
	LonIndex   int
	LatIndex   int
	Cost       float64
	Components Components
}

// pairHeap is a container/heap.Interface min-heap over Pair, ordered by Cost and, on ties, by
// (LonIndex, LatIndex) to make iteration order fully deterministic.
type pairHeap []Pair

func (h pairHeap) Len() int { return len(h) }
func (h pairHeap) Less(i, j int) bool {
	if h[i].Cost != h[j].Cost {
		return h[i].Cost < h[j].Cost
	}
	if h[i].LonIndex != h[j].LonIndex {
		return h[i].LonIndex < h[j].LonIndex
	}
	return h[i].LatIndex < h[j].LatIndex
}
func (h pairHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *pairHeap) Push(x any)   { *h = append(*h, x.(Pair)) }
func (h *pairHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Evaluator scores the Cartesian product of a longitudinal and lateral bundle against a
// PlanningTarget and yields pairs through a min-heap iterator in ascending cost order. All
// pairs are scored up front at construction time; PopNext then drains the heap.
type Evaluator struct {
	heap pairHeap
}

// New builds an Evaluator over lonBundle x latBundle. When prefilter is true, each curve is
// checked for single-axis feasibility before being combined into a pair, dropping infeasible
// curves from consideration entirely rather than scoring and then discarding infeasible pairs.
// When parallel is true, per-pair cost computation is spread across an errgroup of at most
// runtime.GOMAXPROCS goroutines at a time;
// the resulting score is identical either way since cost is a pure function of (lon, lat,
// target, ptn).
func New(
	ctx context.Context,
	target decision.Target,
	lonBundle, latBundle []lattice.Curve1D,
	limits constraint.Limits,
	dt float64,
	prefilter bool,
	parallel bool,
	weights Weights,
	ptn *pathtime.Neighbourhood,
) (*Evaluator, error) {
	lonIdx := make([]int, 0, len(lonBundle))
	for i, lon := range lonBundle {
		if prefilter && !constraint.IsValidLonCurve(lon, limits, dt) {
			continue
		}
		lonIdx = append(lonIdx, i)
	}
	latIdx := make([]int, 0, len(latBundle))
	for i, lat := range latBundle {
		if prefilter && !constraint.IsValidLatCurve(lat, limits, dt) {
			continue
		}
		latIdx = append(latIdx, i)
	}

	type cell struct {
		li, lj int
	}
	var cells []cell
	for _, li := range lonIdx {
		for _, lj := range latIdx {
			cells = append(cells, cell{li, lj})
		}
	}

	pairs := make([]Pair, len(cells))
	compute := func(k int) {
		c := cells[k]
		lon, lat := lonBundle[c.li], latBundle[c.lj]
		comp := score(lon, lat, target, ptn)
		pairs[k] = Pair{
			Lon: lon, Lat: lat,
			LonIndex: c.li, LatIndex: c.lj,
			Cost:       comp.Total(weights),
			Components: comp,
		}
	}

	if parallel {
		g, _ := errgroup.WithContext(ctx)
		g.SetLimit(runtime.GOMAXPROCS(0))
		for k := range cells {
			k := k
			g.Go(func() error {
				compute(k)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for k := range cells {
			compute(k)
		}
	}

	h := pairHeap(pairs)
	heap.Init(&h)
	return &Evaluator{heap: h}, nil
}

// HasMore reports whether PopNext has any pair left to yield.
func (e *Evaluator) HasMore() bool { return len(e.heap) > 0 }

// PeekCost returns the cost of the next pair PopNext would return, without removing it.
func (e *Evaluator) PeekCost() float64 { return e.heap[0].Cost }

// PeekComponents returns the component breakdown of the next pair PopNext would return.
func (e *Evaluator) PeekComponents() Components { return e.heap[0].Components }

// PopNext removes and returns the lowest-cost remaining pair.
func (e *Evaluator) PopNext() Pair {
	return heap.Pop(&e.heap).(Pair)
}
