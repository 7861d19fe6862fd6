package alignment

import (
	"math/rand/v2"
	"reflect"
	"testing"

	"trustframe/internal/token"
)

var (
	h1 = token.MustParseHex("8f373714acfcf4d0")
	h2 = token.MustParseHex("91c6e9e1b3a4c2f0")
	h3 = token.MustParseHex("0f0f0f0f33333333")
	hX = token.MustParseHex("ffffffff00000000")
)

func TestAlignDeletionScenario(t *testing.T) {
	ref := token.FromTokens(h1, h2, h3)
	ev := token.FromTokens(h1, h3)

	got := Align(ref, ev)
	want := []Operation{
		{Kind: Match, RefFrame: 1, EvFrame: 1, RefToken: h1, EvToken: h1},
		{Kind: Deletion, RefFrame: 2, RefToken: h2},
		{Kind: Match, RefFrame: 3, EvFrame: 2, RefToken: h3, EvToken: h3},
	}
	if !reflect.DeepEqual(got.Operations, want) {
		t.Fatalf("unexpected alignment:\n got %+v\nwant %+v", got.Operations, want)
	}
	if got.EditDistance != 1 {
		t.Fatalf("EditDistance = %d, want 1", got.EditDistance)
	}
	stats := Summarize(got.Operations)
	wantStats := Statistics{Matches: 2, Deletions: 1, TotalOperations: 3}
	if stats != wantStats {
		t.Fatalf("Summarize = %+v, want %+v", stats, wantStats)
	}
}

func TestAlignInsertionScenario(t *testing.T) {
	ref := token.FromTokens(h1, h2)
	ev := token.FromTokens(h1, hX, h2)

	got := Align(ref, ev)
	if got.EditDistance != 1 {
		t.Fatalf("EditDistance = %d, want 1", got.EditDistance)
	}
	kinds := kindsOf(got.Operations)
	if want := []Kind{Match, Insertion, Match}; !reflect.DeepEqual(kinds, want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	if ins := got.Operations[1]; ins.EvFrame != 2 || ins.EvToken != hX || ins.RefFrame != 0 || !ins.RefToken.IsZero() {
		t.Fatalf("unexpected insertion %+v", ins)
	}
}

func TestAlignSubstitution(t *testing.T) {
	got := Align(token.FromTokens(h1, h2, h3), token.FromTokens(h1, hX, h3))
	if want := []Kind{Match, Substitution, Match}; !reflect.DeepEqual(kindsOf(got.Operations), want) {
		t.Fatalf("kinds = %v, want %v", kindsOf(got.Operations), want)
	}
	sub := got.Operations[1]
	if sub.RefFrame != 2 || sub.EvFrame != 2 || sub.RefToken != h2 || sub.EvToken != hX {
		t.Fatalf("unexpected substitution %+v", sub)
	}
}

func TestAlignIdentical(t *testing.T) {
	seq := token.FromTokens(h1, h2, h3, h1)
	got := Align(seq, seq)
	if got.EditDistance != 0 {
		t.Fatalf("EditDistance = %d, want 0", got.EditDistance)
	}
	for i, op := range got.Operations {
		if op.Kind != Match {
			t.Fatalf("operation %d = %s, want match", i, op.Kind)
		}
	}
	if len(got.Operations) != len(seq) {
		t.Fatalf("len = %d, want %d", len(got.Operations), len(seq))
	}
}

func TestAlignEmptyInputs(t *testing.T) {
	seq := token.FromTokens(h1, h2, h3)

	del := Align(seq, nil)
	if del.EditDistance != 3 || len(del.Operations) != 3 {
		t.Fatalf("align(A, []) = %+v", del)
	}
	for i, op := range del.Operations {
		if op.Kind != Deletion || op.RefFrame != i+1 {
			t.Fatalf("operation %d = %+v, want deletion of frame %d", i, op, i+1)
		}
	}

	ins := Align(nil, seq)
	if ins.EditDistance != 3 || len(ins.Operations) != 3 {
		t.Fatalf("align([], B) = %+v", ins)
	}
	for i, op := range ins.Operations {
		if op.Kind != Insertion || op.EvFrame != i+1 {
			t.Fatalf("operation %d = %+v, want insertion of frame %d", i, op, i+1)
		}
	}

	none := Align(nil, nil)
	if none.EditDistance != 0 || len(none.Operations) != 0 {
		t.Fatalf("align([], []) = %+v", none)
	}
}

func TestAlignPreservesSourceFrameNumbers(t *testing.T) {
	ref := token.Sequence{{Frame: 1, Token: h1}, {Frame: 31, Token: h2}, {Frame: 61, Token: h3}}
	ev := token.Sequence{{Frame: 1, Token: h1}, {Frame: 25, Token: h3}}
	got := Align(ref, ev)
	if got.Operations[1].Kind != Deletion || got.Operations[1].RefFrame != 31 {
		t.Fatalf("unexpected middle operation %+v", got.Operations[1])
	}
	if got.Operations[2].RefFrame != 61 || got.Operations[2].EvFrame != 25 {
		t.Fatalf("unexpected final operation %+v", got.Operations[2])
	}
}

func TestAlignTieBreakPrefersSubstitutionThenDeletion(t *testing.T) {
	// [a b] -> [b a] costs 2 either as two substitutions or as a
	// deletion plus an insertion; diagonal moves win.
	got := Align(token.FromTokens(h1, h2), token.FromTokens(h2, h1))
	if want := []Kind{Substitution, Substitution}; !reflect.DeepEqual(kindsOf(got.Operations), want) {
		t.Fatalf("kinds = %v, want %v", kindsOf(got.Operations), want)
	}

	// [a b] -> [c] costs 2; backtracking from (2,1) prefers the substitution
	// of b by c and then deletes a.
	got = Align(token.FromTokens(h1, h2), token.FromTokens(hX))
	if want := []Kind{Deletion, Substitution}; !reflect.DeepEqual(kindsOf(got.Operations), want) {
		t.Fatalf("kinds = %v, want %v", kindsOf(got.Operations), want)
	}
}

func TestAlignDeterministic(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	ref := randomSequence(rng, 40)
	ev := randomSequence(rng, 35)
	first := Align(ref, ev)
	second := Align(ref, ev)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("expected identical output for identical input")
	}
}

func TestAlignInvariantsRandomized(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1))
	for iter := 0; iter < 200; iter++ {
		ref := randomSequence(rng, rng.IntN(12))
		ev := randomSequence(rng, rng.IntN(12))
		res := Align(ref, ev)

		var replayRef, replayEv []token.Token
		for _, op := range res.Operations {
			if op.HasRef() {
				replayRef = append(replayRef, op.RefToken)
			}
			if op.HasEv() {
				replayEv = append(replayEv, op.EvToken)
			}
			if op.Kind == Match && op.RefToken != op.EvToken {
				t.Fatalf("match with different tokens: %+v", op)
			}
			if op.Kind == Substitution && op.RefToken == op.EvToken {
				t.Fatalf("substitution with equal tokens: %+v", op)
			}
		}
		if !reflect.DeepEqual(nonNil(replayRef), nonNil(ref.Tokens())) {
			t.Fatalf("reference replay mismatch for %v / %v", ref, ev)
		}
		if !reflect.DeepEqual(nonNil(replayEv), nonNil(ev.Tokens())) {
			t.Fatalf("evidence replay mismatch for %v / %v", ref, ev)
		}

		stats := Summarize(res.Operations)
		if stats.Modifications() != res.EditDistance {
			t.Fatalf("modifications %d != edit distance %d", stats.Modifications(), res.EditDistance)
		}
		if stats.Matches+stats.Modifications() != stats.TotalOperations || stats.TotalOperations != len(res.Operations) {
			t.Fatalf("inconsistent statistics %+v for %d operations", stats, len(res.Operations))
		}
		if n := len(res.Operations); n < max(len(ref), len(ev)) || n > len(ref)+len(ev) {
			t.Fatalf("alignment length %d outside bounds for %d/%d", n, len(ref), len(ev))
		}
		if d := EditDistance(ref, ev); d != res.EditDistance {
			t.Fatalf("EditDistance = %d, Align = %d", d, res.EditDistance)
		}
		if d := EditDistance(ref, ref); d != 0 {
			t.Fatalf("EditDistance(A, A) = %d", d)
		}
	}
}

func TestKindText(t *testing.T) {
	for _, k := range []Kind{Match, Substitution, Deletion, Insertion} {
		text, err := k.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText: %v", err)
		}
		var back Kind
		if err := back.UnmarshalText(text); err != nil || back != k {
			t.Fatalf("round trip %s -> %q -> %s (%v)", k, text, back, err)
		}
	}
	if _, err := ParseKind("transposition"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func kindsOf(ops []Operation) []Kind {
	out := make([]Kind, len(ops))
	for i, op := range ops {
		out[i] = op.Kind
	}
	return out
}

// randomSequence draws from a small alphabet so matches are common.
func randomSequence(rng *rand.Rand, n int) token.Sequence {
	alphabet := []token.Token{h1, h2, h3, hX}
	tokens := make([]token.Token, n)
	for i := range tokens {
		tokens[i] = alphabet[rng.IntN(len(alphabet))]
	}
	return token.FromTokens(tokens...)
}

func nonNil(tokens []token.Token) []token.Token {
	if tokens == nil {
		return []token.Token{}
	}
	return tokens
}
