package diff

import (
	"fmt"

	"github.com/emirpasic/gods/trees/binaryheap"
)

// Action is the kind of an Edit.
type Action int

const (
	Insert Action = iota
	Delete
	Replace
)

func (a Action) String() string {
	switch a {
	case Insert:
		return "Insert"
	case Delete:
		return "Delete"
	case Replace:
		return "Replace"
	default:
		panic(fmt.Sprintf("unsupported action: %d", a))
	}
}

// Edit is a single change to a sequence. DestIndex addresses the sequence
// being edited, SourceIndex the sequence it is edited towards; it is unused
// by Delete.
type Edit struct {
	Action      Action
	DestIndex   int
	SourceIndex int
}

func (e Edit) String() string {
	if e.Action == Delete {
		return fmt.Sprintf("<%s %d>", e.Action, e.DestIndex)
	}

	return fmt.Sprintf("<%s %d from %d>", e.Action, e.DestIndex, e.SourceIndex)
}

// Edits returns a minimal list of edits turning dest into source, computed
// with the Wagner-Fischer edit distance. The edits are sorted as SortEdits
// does, ready to be applied in order to a single live sequence: every delete
// addresses the sequence as left by the inserts before it.
func Edits[T comparable](dest, source []T) []Edit {
	m, n := len(dest), len(source)

	dist := make([][]int, m+1)
	for i := range dist {
		dist[i] = make([]int, n+1)
		dist[i][0] = i
	}

	for j := 0; j <= n; j++ {
		dist[0][j] = j
	}

	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			if dest[i] == source[j] {
				dist[i+1][j+1] = dist[i][j]
				continue
			}

			dist[i+1][j+1] = 1 + min(dist[i][j], dist[i+1][j], dist[i][j+1])
		}
	}

	var edits []Edit
	for i, j := m, n; i > 0 || j > 0; {
		switch {
		case i > 0 && j > 0 && dest[i-1] == source[j-1]:
			i--
			j--
		case i > 0 && (j == 0 || dist[i][j] == dist[i-1][j]+1):
			edits = append(edits, Edit{Action: Delete, DestIndex: i - 1})
			i--
		case j > 0 && (i == 0 || dist[i][j] == dist[i][j-1]+1):
			edits = append(edits, Edit{Action: Insert, DestIndex: i, SourceIndex: j - 1})
			j--
		default:
			edits = append(edits, Edit{Action: Replace, DestIndex: i - 1, SourceIndex: j - 1})
			i--
			j--
		}
	}

	return rebase(SortEdits(edits))
}

// compareEdits orders replaces first by ascending index, then inserts by
// descending index, then deletes by descending index.
func compareEdits(a, b interface{}) int {
	x, y := a.(Edit), b.(Edit)
	if x.Action != y.Action {
		return rank(x.Action) - rank(y.Action)
	}

	switch x.Action {
	case Replace:
		return x.DestIndex - y.DestIndex
	case Insert:
		if x.DestIndex != y.DestIndex {
			return y.DestIndex - x.DestIndex
		}

		return y.SourceIndex - x.SourceIndex
	default:
		return y.DestIndex - x.DestIndex
	}
}

func rank(a Action) int {
	switch a {
	case Replace:
		return 0
	case Insert:
		return 1
	default:
		return 2
	}
}

// SortEdits returns the edits in application order: replaces, then inserts,
// then deletes. Each kind is ordered so that applying an edit never moves
// the elements addressed by the next ones of the same kind. Indexes are left
// untouched, so sorting edits returned by Edits again is a no-op.
func SortEdits(edits []Edit) []Edit {
	heap := binaryheap.NewWith(compareEdits)
	for _, e := range edits {
		heap.Push(e)
	}

	ret := make([]Edit, 0, len(edits))
	for {
		v, ok := heap.Pop()
		if !ok {
			break
		}

		ret = append(ret, v.(Edit))
	}

	return ret
}

// rebase shifts the index of every delete past the inserts landing before
// it. Deletes computed against the original dest sequence then address the
// sequence as left by the inserts, which run first.
func rebase(edits []Edit) []Edit {
	for i, e := range edits {
		if e.Action != Delete {
			continue
		}

		for _, ins := range edits {
			if ins.Action == Insert && ins.DestIndex <= e.DestIndex {
				edits[i].DestIndex++
			}
		}
	}

	return edits
}

// ApplyEdits applies edits, as returned by Edits, to a copy of dest and
// returns it.
func ApplyEdits[T any](dest, source []T, edits []Edit) []T {
	ret := make([]T, len(dest), len(dest)+len(edits))
	copy(ret, dest)

	for _, e := range edits {
		switch e.Action {
		case Replace:
			ret[e.DestIndex] = source[e.SourceIndex]
		case Insert:
			ret = append(ret, source[e.SourceIndex])
			copy(ret[e.DestIndex+1:], ret[e.DestIndex:])
			ret[e.DestIndex] = source[e.SourceIndex]
		case Delete:
			ret = append(ret[:e.DestIndex], ret[e.DestIndex+1:]...)
		}
	}

	return ret
}
