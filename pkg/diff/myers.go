package diff

// Align computes a minimal edit script turning old into new, comparing lines
// by exact string equality. The result lists every line of both inputs
// exactly once, in order: equal lines reference both sides, deletions only
// the old side, insertions only the new side.
//
// The implementation is the forward variant of Myers' O((N+M)·D) greedy
// algorithm. Ties between equally short scripts are broken by preferring the
// furthest-right path, which groups deletions ahead of insertions at the
// same position. The traversal is purely index-based, so identical inputs
// always produce identical scripts.
func Align(old, new []string) []EditOp {
	n, m := len(old), len(new)

	// Degenerate cases avoid allocating the search state.
	switch {
	case n == 0 && m == 0:
		return nil
	case n == 0:
		ops := make([]EditOp, m)
		for j := range new {
			ops[j] = EditOp{Op: OpInsert, OldIndex: -1, NewIndex: j}
		}
		return ops
	case m == 0:
		ops := make([]EditOp, n)
		for i := range old {
			ops[i] = EditOp{Op: OpDelete, OldIndex: i, NewIndex: -1}
		}
		return ops
	}

	// Forward search: v[k+offset] holds the furthest x reachable on
	// diagonal k with the current number of edits. A snapshot of v is kept
	// per round so the path can be recovered afterwards.
	max := n + m
	offset := max
	v := make([]int, 2*max+1)
	var trace [][]int

search:
	for d := 0; d <= max; d++ {
		snapshot := make([]int, len(v))
		copy(snapshot, v)
		trace = append(trace, snapshot)

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[k-1+offset] < v[k+1+offset]) {
				x = v[k+1+offset] // step down: insertion
			} else {
				x = v[k-1+offset] + 1 // step right: deletion
			}
			y := x - k
			for x < n && y < m && old[x] == new[y] {
				x++
				y++
			}
			v[k+offset] = x
			if x >= n && y >= m {
				break search
			}
		}
	}

	// Backtrack from (n, m) through the snapshots, emitting ops in reverse.
	var rev []EditOp
	x, y := n, m
	for d := len(trace) - 1; d >= 0; d-- {
		vd := trace[d]
		k := x - y

		var prevK int
		if k == -d || (k != d && vd[k-1+offset] < vd[k+1+offset]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := vd[prevK+offset]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			rev = append(rev, EditOp{Op: OpEqual, OldIndex: x - 1, NewIndex: y - 1})
			x--
			y--
		}
		if d > 0 {
			if x == prevX {
				rev = append(rev, EditOp{Op: OpInsert, OldIndex: -1, NewIndex: y - 1})
				y--
			} else {
				rev = append(rev, EditOp{Op: OpDelete, OldIndex: x - 1, NewIndex: -1})
				x--
			}
		}
	}

	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}
