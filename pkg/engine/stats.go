package engine

import "fmt"

// Stats are the counters of a single search
type Stats struct {
	Visited uint64 // #interior search calls, leaves included
	Pruned  uint64 // #nodes that stopped early on a cutoff
}

func (s Stats) String() string {
	return fmt.Sprintf("visited:%v pruned:%v", s.Visited, s.Pruned)
}
