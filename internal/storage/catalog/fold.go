package catalog

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// foldName returns the canonical comparison form of a framework name.
//
// Names are NFC-normalized then case-folded, so names that only differ in
// case or in composition of accented letters compare equal. A Caser is
// stateful, hence one per call.
func foldName(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}
