package rewrite

import "sort"

// textEdit replaces src[start:end] with text. start == end is a pure
// insertion.
type textEdit struct {
	start int
	end   int
	text  string
}

// applyEdits splices a set of non-overlapping edits into src. Edits are
// sorted and applied back-to-front so earlier offsets stay valid throughout.
func applyEdits(src []byte, edits []textEdit) []byte {
	if len(edits) == 0 {
		return src
	}

	sorted := make([]textEdit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].start != sorted[j].start {
			return sorted[i].start > sorted[j].start
		}
		return sorted[i].end > sorted[j].end
	})

	out := make([]byte, len(src))
	copy(out, src)
	for _, e := range sorted {
		var next []byte
		next = append(next, out[:e.start]...)
		next = append(next, e.text...)
		next = append(next, out[e.end:]...)
		out = next
	}
	return out
}
