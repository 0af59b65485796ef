package depth

import (
	"runtime"
	"sort"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/montanaflynn/stats"
)

// Index holds one sample's depth observations partitioned by chromosome,
// with positions sorted ascending so that an arbitrary [start, stop] region
// can be located in O(log n).  A prefix-sum array over the depths makes the
// region total an O(1) followup.  The index is read-only after construction,
// so concurrent Aggregate calls need no synchronization.
type Index struct {
	chroms map[string]*chromDepths
}

type chromDepths struct {
	pos   []PosType
	depth []float64
	// prefix[i] is the sum of depth[:i]; len(prefix) == len(depth) + 1.
	prefix []float64
}

// RegionStats summarizes the depth observations intersecting one region.
// It is a pure function of (region, observation set): recomputed per query,
// fully reproducible.
type RegionStats struct {
	// Total is the sum of depth over matching observations.
	Total float64
	// PerBaseMean is Total / Length, or 0 when Length <= 0.
	PerBaseMean float64
	// Median is the statistical median of the matching depths (average of
	// the two middle values for an even count).  A region that intersects no
	// observations reports 0 by convention; this is distinct from "no data
	// loaded", which the caller is responsible for detecting.
	Median float64
	// Length is stop - start + 1, which may be <= 0 for a degenerate region.
	Length int
}

// Region is a query interval: a chromosome name plus a one-based coordinate
// range, inclusive on both ends.
type Region struct {
	Chrom string
	Start PosType
	Stop  PosType
}

func (c *chromDepths) Len() int { return len(c.pos) }
func (c *chromDepths) Less(i, j int) bool {
	return c.pos[i] < c.pos[j]
}
func (c *chromDepths) Swap(i, j int) {
	c.pos[i], c.pos[j] = c.pos[j], c.pos[i]
	c.depth[i], c.depth[j] = c.depth[j], c.depth[i]
}

// NewIndex builds an Index from a loaded observation multiset.  Input order
// is irrelevant; equal positions are retained as distinct observations.
func NewIndex(observations []Observation) *Index {
	index := &Index{chroms: make(map[string]*chromDepths)}
	for _, obs := range observations {
		cd := index.chroms[obs.Chrom]
		if cd == nil {
			cd = &chromDepths{}
			index.chroms[obs.Chrom] = cd
		}
		cd.pos = append(cd.pos, obs.Pos)
		cd.depth = append(cd.depth, obs.Depth)
	}
	for _, cd := range index.chroms {
		sort.Sort(cd)
		cd.prefix = make([]float64, len(cd.depth)+1)
		for i, d := range cd.depth {
			cd.prefix[i+1] = cd.prefix[i] + d
		}
	}
	return index
}

// searchPosTypes returns the index of x in a[], or the position where x
// would be inserted if x isn't in a (this could be len(a)).  It's exactly
// the same as sort.SearchInts(), except for PosType.
func searchPosTypes(a []PosType, x PosType) int {
	return sort.Search(len(a), func(i int) bool { return a[i] >= x })
}

// Aggregate computes RegionStats for the observations whose chromosome
// equals region.Chrom (case-sensitive) and whose position falls inside
// [region.Start, region.Stop].  Pure computation, no side effects.
func (x *Index) Aggregate(region Region) RegionStats {
	result := RegionStats{Length: int(region.Stop) - int(region.Start) + 1}
	if cd := x.chroms[region.Chrom]; cd != nil && region.Start <= region.Stop {
		lo := searchPosTypes(cd.pos, region.Start)
		hi := lo + sort.Search(len(cd.pos)-lo, func(i int) bool { return cd.pos[lo+i] > region.Stop })
		if hi > lo {
			result.Total = cd.prefix[hi] - cd.prefix[lo]
			// stats.Median sorts an internal copy; cd.depth stays intact.
			median, err := stats.Median(cd.depth[lo:hi])
			if err == nil {
				result.Median = median
			}
		}
	}
	if result.Length > 0 {
		result.PerBaseMean = result.Total / float64(result.Length)
	}
	return result
}

// AggregateRegions evaluates Aggregate for a batch of regions across
// parallelism workers (runtime.NumCPU() when <= 0).  Each worker only reads
// the shared index and writes its private result slots, so the regions are
// embarrassingly parallel.  Result order matches input order.
func (x *Index) AggregateRegions(regions []Region, parallelism int) []RegionStats {
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	if parallelism > len(regions) {
		parallelism = len(regions)
	}
	results := make([]RegionStats, len(regions))
	if len(regions) == 0 {
		return results
	}
	err := traverse.Each(parallelism, func(jobIdx int) error {
		startIdx := (jobIdx * len(regions)) / parallelism
		endIdx := ((jobIdx + 1) * len(regions)) / parallelism
		for i := startIdx; i < endIdx; i++ {
			results[i] = x.Aggregate(regions[i])
		}
		return nil
	})
	if err != nil {
		// Aggregate is pure and the workers never return errors.
		log.Panicf("depth.AggregateRegions: %v", err)
	}
	return results
}
