package queue

import (
	"container/heap"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityQueue(t *testing.T) {
	t.Run("AscendingOrder", func(t *testing.T) {
		pq := &PriorityQueue{}
		for _, d := range []float64{3.5, 1.25, 2.0, 0.5} {
			heap.Push(pq, &Item{ID: uint32(pq.Len()), Distance: d})
		}

		var got []float64
		for pq.Len() > 0 {
			got = append(got, heap.Pop(pq).(*Item).Distance)
		}
		assert.Equal(t, []float64{0.5, 1.25, 2.0, 3.5}, got)
	})

	t.Run("DescendingOrder", func(t *testing.T) {
		pq := &PriorityQueue{Descending: true}
		for _, d := range []float64{3.5, 1.25, 2.0, 0.5} {
			heap.Push(pq, &Item{ID: uint32(pq.Len()), Distance: d})
		}

		require.Equal(t, 3.5, pq.Top().Distance)

		var got []float64
		for pq.Len() > 0 {
			got = append(got, heap.Pop(pq).(*Item).Distance)
		}
		assert.Equal(t, []float64{3.5, 2.0, 1.25, 0.5}, got)
	})

	t.Run("PopEmpty", func(t *testing.T) {
		pq := &PriorityQueue{}
		assert.Nil(t, pq.Pop())
	})
}
