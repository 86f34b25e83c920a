package rtree

import (
	"container/heap"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/sandialabs/tracktable-sub003/queue"
)

// Nearest returns the IDs of the k stored points closest to q by Euclidean
// distance. Ties at the k-th distance are broken arbitrarily; callers must
// treat the result as a set. If k exceeds the point count, all IDs are
// returned.
func (t *RTree) Nearest(q []float64, k int) ([]uint32, error) {
	return t.NearestFiltered(q, k, nil)
}

// NearestFiltered is Nearest restricted to IDs contained in the allowed
// bitmap. A nil bitmap allows every ID.
func (t *RTree) NearestFiltered(q []float64, k int, allowed *roaring.Bitmap) ([]uint32, error) {
	if k < 1 {
		return nil, ErrInvalidK
	}
	if err := t.checkDimension(q); err != nil {
		return nil, err
	}
	if len(t.points) == 0 {
		return nil, ErrEmptyIndex
	}

	// Best-first search: a min-heap frontier of nodes keyed by the
	// minimum possible distance of their box to q, and a max-heap of the
	// k best candidates seen so far. Squared distances preserve order.
	frontier := &queue.PriorityQueue{}
	heap.Push(frontier, &queue.Item{ID: uint32(t.root), Distance: t.minDistSq(t.root, q)})

	best := &queue.PriorityQueue{Descending: true}

	for frontier.Len() > 0 {
		item := heap.Pop(frontier).(*queue.Item)
		if best.Len() == k && item.Distance > best.Top().Distance {
			break
		}

		n := &t.nodes[item.ID]
		if n.leaf {
			for _, id := range n.entries {
				if allowed != nil && !allowed.Contains(id) {
					continue
				}
				d := sqDist(q, t.points[id])
				if best.Len() < k {
					heap.Push(best, &queue.Item{ID: id, Distance: d})
				} else if d < best.Top().Distance {
					heap.Pop(best)
					heap.Push(best, &queue.Item{ID: id, Distance: d})
				}
			}
			continue
		}
		for _, c := range n.children {
			d := t.minDistSq(c, q)
			if best.Len() < k || d <= best.Top().Distance {
				heap.Push(frontier, &queue.Item{ID: uint32(c), Distance: d})
			}
		}
	}

	ids := make([]uint32, 0, best.Len())
	for _, item := range best.Items {
		ids = append(ids, item.ID)
	}
	return ids, nil
}

// minDistSq returns the squared distance from q to the nearest face of a
// node's bounding box (zero when q is inside the box).
func (t *RTree) minDistSq(ref int32, q []float64) float64 {
	n := &t.nodes[ref]
	var sum float64
	for d := range q {
		switch {
		case q[d] < n.min[d]:
			diff := n.min[d] - q[d]
			sum += diff * diff
		case q[d] > n.max[d]:
			diff := q[d] - n.max[d]
			sum += diff * diff
		}
	}
	return sum
}

func sqDist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
