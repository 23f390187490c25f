package diff

import (
	"reflect"
	"strings"
	"testing"
)

// reconstruct joins the lines a region sequence claims for one side.
func reconstruct(lines []string, regions []Region, oldSide bool) string {
	var out []string
	for _, r := range regions {
		if oldSide {
			out = append(out, lines[r.OldStart:r.OldEnd]...)
		} else {
			out = append(out, lines[r.NewStart:r.NewEnd]...)
		}
	}
	return strings.Join(out, "\n")
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\nb", []string{"a", "b"}},
		{"a\n\nb\n", []string{"a", "", "b"}},
		{"\n", []string{""}},
	}
	for _, tt := range tests {
		if got := SplitLines(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitLines(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestAlignDegenerate(t *testing.T) {
	// Empty old: all inserts
	ops := Align(nil, []string{"a", "b"})
	if len(ops) != 2 || ops[0].Op != OpInsert || ops[1].Op != OpInsert {
		t.Fatalf("empty old: got %v", ops)
	}

	// Empty new: all deletes
	ops = Align([]string{"a", "b"}, nil)
	if len(ops) != 2 || ops[0].Op != OpDelete || ops[1].Op != OpDelete {
		t.Fatalf("empty new: got %v", ops)
	}

	// Identical: all equal
	lines := []string{"x", "y", "z"}
	ops = Align(lines, lines)
	if len(ops) != 3 {
		t.Fatalf("identical: got %d ops, want 3", len(ops))
	}
	for i, op := range ops {
		if op.Op != OpEqual || op.OldIndex != i || op.NewIndex != i {
			t.Errorf("identical: op %d = %+v", i, op)
		}
	}
}

func TestAlignMinimal(t *testing.T) {
	old := []string{"a", "b", "c"}
	new := []string{"a", "x", "c"}
	ops := Align(old, new)

	// Minimal script: one delete plus one insert among three matches.
	var edits int
	for _, op := range ops {
		if op.Op != OpEqual {
			edits++
		}
	}
	if edits != 2 {
		t.Errorf("edit count = %d, want 2 (ops: %v)", edits, ops)
	}
}

func TestAlignCoversBothSides(t *testing.T) {
	old := []string{"func main() {", "\tfoo()", "}", "", "// end"}
	new := []string{"func main() {", "\tbar()", "\tbaz()", "}", "// end"}
	ops := Align(old, new)

	oldSeen, newSeen := 0, 0
	for _, op := range ops {
		switch op.Op {
		case OpEqual:
			if old[op.OldIndex] != new[op.NewIndex] {
				t.Errorf("equal op pairs differing lines: %+v", op)
			}
			oldSeen++
			newSeen++
		case OpDelete:
			oldSeen++
		case OpInsert:
			newSeen++
		}
	}
	if oldSeen != len(old) || newSeen != len(new) {
		t.Errorf("coverage = (%d,%d), want (%d,%d)", oldSeen, newSeen, len(old), len(new))
	}
}

func TestAlignDeterministic(t *testing.T) {
	old := []string{"a", "b", "c", "d", "e"}
	new := []string{"a", "c", "b", "e", "f"}
	first := Align(old, new)
	for i := 0; i < 10; i++ {
		if got := Align(old, new); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs from first run", i)
		}
	}
}

func TestClassifySelfDiff(t *testing.T) {
	lines := SplitLines("a\nb\nc\n")
	regions := Classify(lines, lines, Align(lines, lines))
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(regions))
	}
	r := regions[0]
	if r.Kind != OpEqual || r.OldLen() != 3 || r.NewLen() != 3 {
		t.Errorf("region = %+v, want one equal region covering all lines", r)
	}
}

func TestClassifyReplace(t *testing.T) {
	old := SplitLines("a\nb\nc")
	new := SplitLines("a\nx\nc")
	regions := Classify(old, new, Align(old, new))

	if len(regions) != 3 {
		t.Fatalf("got %d regions, want 3: %+v", len(regions), regions)
	}
	if regions[0].Kind != OpEqual || regions[2].Kind != OpEqual {
		t.Errorf("surrounding regions not equal: %+v", regions)
	}

	r := regions[1]
	if r.Kind != OpReplace {
		t.Fatalf("middle region kind = %v, want replace", r.Kind)
	}
	if r.OldStart != 1 || r.OldEnd != 2 || r.NewStart != 1 || r.NewEnd != 2 {
		t.Errorf("middle region ranges = %+v, want line 2 on both sides", r)
	}
	if len(r.Pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(r.Pairs))
	}

	// Sub-spans must show b deleted and x inserted.
	var deleted, inserted string
	for _, s := range r.Pairs[0].Spans {
		deleted += s.Old
		inserted += s.New
	}
	if deleted != "b" || inserted != "x" {
		t.Errorf("span reconstruction = (%q, %q), want (b, x)", deleted, inserted)
	}
}

func TestClassifyUnevenReplaceHasNoPairs(t *testing.T) {
	old := SplitLines("one\ntwo\nthree")
	new := SplitLines("eins")
	regions := Classify(old, new, Align(old, new))

	for _, r := range regions {
		if r.Kind == OpReplace && r.OldLen() != r.NewLen() && r.Pairs != nil {
			t.Errorf("uneven replaced region has pairs: %+v", r)
		}
	}
}

func TestClassifyReconstruction(t *testing.T) {
	cases := [][2]string{
		{"a\nb\nc", "a\nx\nc"},
		{"", "hello"},
		{"hello", ""},
		{"x\ny\nz\n", "x\ny\nz\n"},
		{"shared\nold only\nshared 2", "shared\nnew only\nalso new\nshared 2"},
		{"1\n2\n3\n4\n5", "5\n4\n3\n2\n1"},
	}
	for _, c := range cases {
		old, new := SplitLines(c[0]), SplitLines(c[1])
		regions := Classify(old, new, Align(old, new))

		if got := reconstruct(old, regions, true); got != strings.Join(old, "\n") {
			t.Errorf("old reconstruction of %q = %q", c[0], got)
		}
		if got := reconstruct(new, regions, false); got != strings.Join(new, "\n") {
			t.Errorf("new reconstruction of %q = %q", c[1], got)
		}
	}
}

func TestClassifyMirror(t *testing.T) {
	a := SplitLines("a\nb\nc\nd")
	b := SplitLines("a\nc\nx\nd")

	fwd := Classify(a, b, Align(a, b))
	rev := Classify(b, a, Align(b, a))

	// Every inserted line forward must appear as a deleted line backward,
	// and vice versa.
	collect := func(lines []string, regions []Region, kind Op, oldSide bool) []string {
		var out []string
		for _, r := range regions {
			if r.Kind != kind && r.Kind != OpReplace {
				continue
			}
			if oldSide {
				out = append(out, lines[r.OldStart:r.OldEnd]...)
			} else {
				out = append(out, lines[r.NewStart:r.NewEnd]...)
			}
		}
		return out
	}
	fwdInserted := collect(b, fwd, OpInsert, false)
	revDeleted := collect(b, rev, OpDelete, true)
	if !reflect.DeepEqual(fwdInserted, revDeleted) {
		t.Errorf("forward insertions %v != backward deletions %v", fwdInserted, revDeleted)
	}
}

func TestValidateUnit(t *testing.T) {
	old := SplitLines("a\nb")
	new := SplitLines("a\nc")
	u := &Unit{
		Path:     "f.txt",
		Status:   StatusModified,
		OldLines: old,
		NewLines: new,
		Regions:  Classify(old, new, Align(old, new)),
	}
	if err := ValidateUnit(u); err != nil {
		t.Errorf("valid unit rejected: %v", err)
	}

	// Corrupt the coverage: validation must catch it.
	u.Regions = u.Regions[:1]
	if err := ValidateUnit(u); err == nil {
		t.Error("truncated regions passed validation")
	}
}
