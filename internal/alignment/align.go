package alignment

import "trustframe/internal/token"

// Align computes the minimum-cost edit script turning ref into ev. Empty
// inputs are valid: an empty side yields an all-insertion or all-deletion
// alignment, and two empty sequences yield an empty one.
func Align(ref, ev token.Sequence) Result {
	n, m := len(ref), len(ev)
	a, b := intern(ref, ev)
	table := fillTable(a, b)

	ops := make([]Operation, 0, max(n, m))
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && a[i-1] == b[j-1]:
			ops = append(ops, paired(Match, ref[i-1], ev[j-1]))
			i--
			j--
		case i > 0 && j > 0 && table[i][j] == table[i-1][j-1]+1:
			ops = append(ops, paired(Substitution, ref[i-1], ev[j-1]))
			i--
			j--
		case i > 0 && table[i][j] == table[i-1][j]+1:
			ops = append(ops, Operation{Kind: Deletion, RefFrame: ref[i-1].Frame, RefToken: ref[i-1].Token})
			i--
		default:
			// Only a left move remains consistent with the table here.
			ops = append(ops, Operation{Kind: Insertion, EvFrame: ev[j-1].Frame, EvToken: ev[j-1].Token})
			j--
		}
	}

	for l, r := 0, len(ops)-1; l < r; l, r = l+1, r-1 {
		ops[l], ops[r] = ops[r], ops[l]
	}
	return Result{Operations: ops, EditDistance: table[n][m]}
}

// EditDistance returns only the edit distance, using two rolling rows.
func EditDistance(ref, ev token.Sequence) int {
	a, b := intern(ref, ev)
	if len(a) < len(b) {
		// Rows are sized by the shorter side; the recurrence is symmetric
		// in its cost, so swapping does not change the distance.
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1]
			} else {
				curr[j] = 1 + min(prev[j], curr[j-1], prev[j-1])
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func fillTable(a, b []int) [][]int {
	n, m := len(a), len(b)
	cells := make([]int, (n+1)*(m+1))
	table := make([][]int, n+1)
	for i := range table {
		table[i] = cells[i*(m+1) : (i+1)*(m+1)]
		table[i][0] = i
	}
	for j := 0; j <= m; j++ {
		table[0][j] = j
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if a[i-1] == b[j-1] {
				table[i][j] = table[i-1][j-1]
				continue
			}
			table[i][j] = 1 + min(table[i-1][j], table[i][j-1], table[i-1][j-1])
		}
	}
	return table
}

// intern maps each distinct token to a dense id so the table fill compares ints.
func intern(ref, ev token.Sequence) ([]int, []int) {
	ids := make(map[token.Token]int, len(ref)+len(ev))
	lookup := func(t token.Token) int {
		id, ok := ids[t]
		if !ok {
			id = len(ids)
			ids[t] = id
		}
		return id
	}
	a := make([]int, len(ref))
	for i, el := range ref {
		a[i] = lookup(el.Token)
	}
	b := make([]int, len(ev))
	for j, el := range ev {
		b[j] = lookup(el.Token)
	}
	return a, b
}

func paired(kind Kind, r, e token.Element) Operation {
	return Operation{
		Kind:     kind,
		RefFrame: r.Frame,
		EvFrame:  e.Frame,
		RefToken: r.Token,
		EvToken:  e.Token,
	}
}
