package diff

import (
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Classify collapses an edit script into contiguous change regions. Runs of
// equal ops become OpEqual regions; runs of deletions and insertions with
// both sides populated become OpReplace regions, otherwise OpDeleted or
// OpInserted regions. Regions are contiguous, non-overlapping, and jointly
// cover every line of both inputs exactly once.
//
// For replaced regions whose sides have equal line counts, lines are paired
// 1:1 in order and a character-level sub-diff is attached to each pair. When
// the counts differ no pairing is attempted; such regions render as whole
// deleted lines followed by whole inserted lines.
//
// Classify panics if the resulting regions fail structural validation: that
// indicates a defect in this package, not bad input.
func Classify(old, new []string, ops []EditOp) []Region {
	var regions []Region

	oldPos, newPos := 0, 0
	dels := 0 // pending deleted lines in the current change run
	ins := 0  // pending inserted lines in the current change run

	flush := func() {
		if dels == 0 && ins == 0 {
			return
		}
		r := Region{
			OldStart: oldPos - dels,
			OldEnd:   oldPos,
			NewStart: newPos - ins,
			NewEnd:   newPos,
		}
		switch {
		case dels > 0 && ins > 0:
			r.Kind = OpReplace
			if dels == ins {
				r.Pairs = pairLines(old[r.OldStart:r.OldEnd], new[r.NewStart:r.NewEnd])
			}
		case dels > 0:
			r.Kind = OpDelete
		default:
			r.Kind = OpInsert
		}
		regions = append(regions, r)
		dels, ins = 0, 0
	}

	for _, op := range ops {
		switch op.Op {
		case OpEqual:
			flush()
			start := len(regions) - 1
			if start >= 0 && regions[start].Kind == OpEqual {
				regions[start].OldEnd++
				regions[start].NewEnd++
			} else {
				regions = append(regions, Region{
					Kind:     OpEqual,
					OldStart: oldPos,
					OldEnd:   oldPos + 1,
					NewStart: newPos,
					NewEnd:   newPos + 1,
				})
			}
			oldPos++
			newPos++
		case OpDelete:
			dels++
			oldPos++
		case OpInsert:
			ins++
			newPos++
		}
	}
	flush()

	if err := validateRegions(old, new, regions); err != nil {
		panic(fmt.Errorf("diff: classify produced invalid regions: %w", err))
	}
	return regions
}

// pairLines builds the 1:1 pairing for a replaced region with equal side
// counts, attaching character-level spans per pair.
func pairLines(oldLines, newLines []string) []LinePair {
	dmp := diffmatchpatch.New()
	pairs := make([]LinePair, len(oldLines))
	for i := range oldLines {
		p := LinePair{Old: oldLines[i], New: newLines[i]}
		if p.Old == p.New {
			// Identical lines inside a replaced region are unusual but
			// possible when the aligner had no cheaper path; a single equal
			// span keeps the reconstruction invariant.
			if p.Old != "" {
				p.Spans = []Span{{Op: OpEqual, Old: p.Old, New: p.New}}
			}
		} else {
			p.Spans = toSpans(dmp.DiffMain(p.Old, p.New, false))
		}
		pairs[i] = p
	}
	return pairs
}

// toSpans converts diffmatchpatch output into spans, coalescing adjacent
// same-op fragments to reduce markup churn.
func toSpans(diffs []diffmatchpatch.Diff) []Span {
	var spans []Span
	add := func(s Span) {
		if last := len(spans) - 1; last >= 0 && spans[last].Op == s.Op {
			spans[last].Old += s.Old
			spans[last].New += s.New
			return
		}
		spans = append(spans, s)
	}
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			add(Span{Op: OpEqual, Old: d.Text, New: d.Text})
		case diffmatchpatch.DiffDelete:
			add(Span{Op: OpDelete, Old: d.Text})
		case diffmatchpatch.DiffInsert:
			add(Span{Op: OpInsert, New: d.Text})
		}
	}
	return spans
}
