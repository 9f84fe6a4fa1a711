package domain

import "strings"

// TermSchedule indexes the term's offerings by CRN. It is immutable once built.
type TermSchedule struct {
	ordered []*CourseOffering
	byCRN   map[string]*CourseOffering
}

// NewTermSchedule indexes offerings in the given order. On a duplicate CRN the first offering wins.
func NewTermSchedule(offerings []*CourseOffering) *TermSchedule {
	ts := &TermSchedule{
		ordered: make([]*CourseOffering, 0, len(offerings)),
		byCRN:   make(map[string]*CourseOffering, len(offerings)),
	}
	for _, o := range offerings {
		if o == nil {
			continue
		}
		if _, ok := ts.byCRN[o.CRN()]; ok {
			continue
		}
		ts.byCRN[o.CRN()] = o
		ts.ordered = append(ts.ordered, o)
	}
	return ts
}

// Len returns the number of indexed offerings.
func (ts *TermSchedule) Len() int { return len(ts.ordered) }

// AllOfferings returns a snapshot of every offering in insertion order.
func (ts *TermSchedule) AllOfferings() []*CourseOffering {
	out := make([]*CourseOffering, len(ts.ordered))
	copy(out, ts.ordered)
	return out
}

// FindByCrn looks up one offering. Blank and unknown CRNs report false.
func (ts *TermSchedule) FindByCrn(crn string) (*CourseOffering, bool) {
	crn = strings.TrimSpace(crn)
	if crn == "" {
		return nil, false
	}
	o, ok := ts.byCRN[crn]
	return o, ok
}

// FindAllByCrns returns the matches in request order. Unknown CRNs are dropped and a
// CRN requested twice appears twice.
func (ts *TermSchedule) FindAllByCrns(crns []string) []*CourseOffering {
	out := make([]*CourseOffering, 0, len(crns))
	for _, crn := range crns {
		if o, ok := ts.FindByCrn(crn); ok {
			out = append(out, o)
		}
	}
	return out
}
