package diff

import "fmt"

// validateRegions checks the structural invariants of a region sequence
// against the inputs it claims to cover. A non-nil error indicates an
// internal defect; callers panic rather than surface it to users.
func validateRegions(old, new []string, regions []Region) error {
	oldPos, newPos := 0, 0

	for i, r := range regions {
		if r.OldStart != oldPos || r.NewStart != newPos {
			return fmt.Errorf("region %d starts at (%d,%d), want (%d,%d)", i, r.OldStart, r.NewStart, oldPos, newPos)
		}
		if r.OldEnd < r.OldStart || r.NewEnd < r.NewStart {
			return fmt.Errorf("region %d has negative extent", i)
		}

		switch r.Kind {
		case OpEqual:
			if r.OldLen() != r.NewLen() || r.OldLen() == 0 {
				return fmt.Errorf("region %d: equal region covers %d old vs %d new lines", i, r.OldLen(), r.NewLen())
			}
			for j := 0; j < r.OldLen(); j++ {
				if old[r.OldStart+j] != new[r.NewStart+j] {
					return fmt.Errorf("region %d: equal region line %d differs", i, j)
				}
			}
		case OpInsert:
			if r.OldLen() != 0 || r.NewLen() == 0 {
				return fmt.Errorf("region %d: inserted region covers %d old, %d new lines", i, r.OldLen(), r.NewLen())
			}
		case OpDelete:
			if r.NewLen() != 0 || r.OldLen() == 0 {
				return fmt.Errorf("region %d: deleted region covers %d old, %d new lines", i, r.OldLen(), r.NewLen())
			}
		case OpReplace:
			if r.OldLen() == 0 || r.NewLen() == 0 {
				return fmt.Errorf("region %d: replaced region with an empty side", i)
			}
			if err := validatePairs(old, new, r); err != nil {
				return fmt.Errorf("region %d: %w", i, err)
			}
		default:
			return fmt.Errorf("region %d: unknown kind %v", i, r.Kind)
		}

		oldPos, newPos = r.OldEnd, r.NewEnd
	}

	if oldPos != len(old) || newPos != len(new) {
		return fmt.Errorf("regions cover (%d,%d) lines, want (%d,%d)", oldPos, newPos, len(old), len(new))
	}
	return nil
}

// validatePairs checks that a replaced region's pairing reconstructs the
// covered lines exactly.
func validatePairs(old, new []string, r Region) error {
	if r.Pairs == nil {
		return nil
	}
	if len(r.Pairs) != r.OldLen() || len(r.Pairs) != r.NewLen() {
		return fmt.Errorf("pair count %d does not match side counts (%d,%d)", len(r.Pairs), r.OldLen(), r.NewLen())
	}
	for j, p := range r.Pairs {
		if p.Old != old[r.OldStart+j] {
			return fmt.Errorf("pair %d old text does not match source line", j)
		}
		if p.New != new[r.NewStart+j] {
			return fmt.Errorf("pair %d new text does not match source line", j)
		}
		var oldText, newText string
		for _, s := range p.Spans {
			oldText += s.Old
			newText += s.New
		}
		if oldText != p.Old || newText != p.New {
			return fmt.Errorf("pair %d spans do not reconstruct the line", j)
		}
	}
	return nil
}

// ValidateUnit checks a unit's regions against its line sequences and its
// status against its region kinds. Used by the tree pairer and by tests.
func ValidateUnit(u *Unit) error {
	if u.Status == StatusSkipped {
		if len(u.Regions) != 0 {
			return fmt.Errorf("%s: skipped unit carries %d regions", u.Path, len(u.Regions))
		}
		return nil
	}
	if err := validateRegions(u.OldLines, u.NewLines, u.Regions); err != nil {
		return fmt.Errorf("%s: %w", u.Path, err)
	}
	switch u.Status {
	case StatusUnchanged:
		if u.Changed() {
			return fmt.Errorf("%s: unchanged unit has non-equal regions", u.Path)
		}
	case StatusModified:
		if !u.Changed() {
			return fmt.Errorf("%s: modified unit has no changes", u.Path)
		}
	case StatusAdded:
		if len(u.OldLines) != 0 {
			return fmt.Errorf("%s: added unit has old lines", u.Path)
		}
	case StatusRemoved:
		if len(u.NewLines) != 0 {
			return fmt.Errorf("%s: removed unit has new lines", u.Path)
		}
	}
	return nil
}
