package timegrid

import "sort"

// Span is a half-open interval [Start, End) in any ordinal unit.
type Span struct {
	Start int
	End   int
}

// Lane places a span side by side with the spans it overlaps. Index is in
// [0, Count) and Count is the number of lanes used by the overlap cluster.
type Lane struct {
	Index int
	Count int
}

// Lanes assigns every span the lowest lane that is free at its start.
// Spans that overlap transitively form a cluster and share one lane count.
// The result is indexed like spans.
func Lanes(spans []Span) []Lane {
	out := make([]Lane, len(spans))
	if len(spans) == 0 {
		return out
	}

	order := make([]int, len(spans))
	for i := range order {
		order[i] = i
	}
	end := func(i int) int {
		if spans[i].End <= spans[i].Start {
			return spans[i].Start + 1
		}
		return spans[i].End
	}
	sort.SliceStable(order, func(a, b int) bool {
		sa, sb := spans[order[a]], spans[order[b]]
		if sa.Start != sb.Start {
			return sa.Start < sb.Start
		}
		return end(order[a]) > end(order[b])
	})

	var (
		cluster    []int
		laneEnds   []int
		clusterEnd int
	)
	finish := func() {
		for _, i := range cluster {
			out[i].Count = len(laneEnds)
		}
		cluster = cluster[:0]
		laneEnds = laneEnds[:0]
	}

	for _, i := range order {
		s, e := spans[i].Start, end(i)
		if len(cluster) > 0 && s >= clusterEnd {
			finish()
		}
		lane := -1
		for l, le := range laneEnds {
			if le <= s {
				lane = l
				break
			}
		}
		if lane < 0 {
			lane = len(laneEnds)
			laneEnds = append(laneEnds, e)
		} else {
			laneEnds[lane] = e
		}
		out[i].Index = lane
		cluster = append(cluster, i)
		if len(cluster) == 1 || e > clusterEnd {
			clusterEnd = e
		}
	}
	finish()
	return out
}
