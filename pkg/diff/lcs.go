package diff

// OpType classifies a line in an edit script.
type OpType int

const (
	Equal  OpType = iota // Line is unchanged between a and b.
	Insert               // Line was inserted (present in b only).
	Delete               // Line was deleted (present in a only).
)

// Op is a single operation in an edit script produced by Lines.
type Op struct {
	Type OpType
	Line string
}

// script builds an edit script applying one op type to every line.
func script(t OpType, lines []string) []Op {
	ops := make([]Op, len(lines))
	for i, line := range lines {
		ops[i] = Op{Type: t, Line: line}
	}
	return ops
}

// Lines computes the shortest edit script to transform a into b using
// the Myers diff algorithm operating on whole lines. It runs in
// O((N+M)*D) time where D is the size of the minimum edit script.
func Lines(a, b []string) []Op {
	switch {
	case len(a) == 0 && len(b) == 0:
		return nil
	case len(a) == 0:
		return script(Insert, b)
	case len(b) == 0:
		return script(Delete, a)
	}

	n, m := len(a), len(b)
	offset := n + m

	// front[offset+k] is the furthest x reached on diagonal k; rounds
	// keeps a copy of it per edit distance for the backtrack.
	front := make([]int, 2*offset+1)
	var rounds [][]int

	for d := 0; d <= n+m; d++ {
		for k := -d; k <= d; k += 2 {
			x := step(front, offset, d, k)
			y := x - k
			for x < n && y < m && a[x] == b[y] {
				x, y = x+1, y+1
			}
			front[offset+k] = x

			if x >= n && y >= m {
				rounds = append(rounds, append([]int(nil), front...))
				return backtrack(a, b, rounds, d)
			}
		}
		rounds = append(rounds, append([]int(nil), front...))
	}

	// Unreachable: d = n+m always suffices.
	return nil
}

// step picks the x reached on diagonal k at edit distance d, given the
// frontier from distance d-1: extend downward (an insert) when the
// diagonal above is further along, otherwise rightward (a delete).
func step(front []int, offset, d, k int) int {
	if k == -d || (k != d && front[offset+k-1] < front[offset+k+1]) {
		return front[offset+k+1]
	}
	return front[offset+k-1] + 1
}

// backtrack walks the saved frontiers from (len(a), len(b)) back to the
// origin, emitting the edit script in reverse and flipping it at the
// end.
func backtrack(a, b []string, rounds [][]int, dLast int) []Op {
	offset := len(a) + len(b)
	x, y := len(a), len(b)
	var rev []Op

	for d := dLast; d > 0; d-- {
		prev := rounds[d-1]
		k := x - y

		// Same tie-break as the forward pass, against the prior
		// frontier.
		prevK := k - 1
		if k == -d || (k != d && prev[offset+k-1] < prev[offset+k+1]) {
			prevK = k + 1
		}
		prevX := prev[offset+prevK]
		prevY := prevX - prevK

		// Undo the diagonal run of equal lines first.
		for x > prevX && y > prevY {
			x, y = x-1, y-1
			rev = append(rev, Op{Type: Equal, Line: a[x]})
		}

		if prevK < k {
			// Rightward move: a line of a was deleted.
			x--
			rev = append(rev, Op{Type: Delete, Line: a[x]})
		} else {
			// Downward move: a line of b was inserted.
			y--
			rev = append(rev, Op{Type: Insert, Line: b[y]})
		}
	}

	// Leading diagonal before the first edit.
	for x > 0 && y > 0 {
		x, y = x-1, y-1
		rev = append(rev, Op{Type: Equal, Line: a[x]})
	}

	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}
