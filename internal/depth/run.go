// Package depth implements the run-length encoded 16-bit depth buffer.
//
// Each row of a depth buffer is stored in one of two forms:
//
//   - run form: a chain of Run heads, each stored at the offset where its run
//     starts and covering Count pixels, so that the counts of the chain
//     starting at offset 0 sum exactly to the row width;
//   - flat form: one Sample per pixel.
//
// A freshly cleared row is a single run spanning the row. Untransformed 2D
// geometry tests and writes whole runs at a time. Perspective geometry,
// whose depth varies per pixel, and fragment discard, whose pass/fail is
// per pixel, flatten the row first. A flattened row only returns to run form
// when it is cleared again.
//
// The form of a row is decided by its first element: a row is flat exactly
// when element 0 is a Sample.
package depth

// Kind discriminates the two interpretations of a Run slot.
type Kind uint8

const (
	// KindSample marks a flattened per-pixel depth sample. It is the zero
	// value so that zeroed memory reads as a flat row of depth 0.
	KindSample Kind = iota
	// KindRun marks the head of a run of Count pixels.
	KindRun
)

// MaxRunCount is the longest run a single head can describe.
const MaxRunCount = 0xFFFF

// Run is one slot of a depth row.
type Run struct {
	Depth uint16
	Count uint16
	Kind  Kind
}

// NewRun returns a run head of the given depth covering count pixels.
func NewRun(depth uint16, count int) Run {
	return Run{Depth: depth, Count: uint16(count), Kind: KindRun}
}

// Sample returns a flat per-pixel depth sample.
func Sample(depth uint16) Run {
	return Run{Depth: depth}
}

// IsFlat reports whether r is a flat sample rather than a run head.
func (r Run) IsFlat() bool { return r.Kind == KindSample }

// Func is a depth comparison function.
type Func uint8

const (
	Less Func = iota
	LessEqual
	Always
)

// String returns the GL name of the function.
func (f Func) String() string {
	switch f {
	case Less:
		return "LESS"
	case LessEqual:
		return "LEQUAL"
	case Always:
		return "ALWAYS"
	}
	return "unknown"
}

// Passes reports whether a source depth passes against a stored depth.
func (f Func) Passes(src, dst uint16) bool {
	switch f {
	case Less:
		return src < dst
	case LessEqual:
		return src <= dst
	default:
		return true
	}
}

// FromFloat converts a normalized depth in [0,1] to its 16-bit value.
func FromFloat(z float32) uint16 {
	return uint16(0xFFFF * z)
}

// SetRuns writes run heads of the given depth over n pixels starting at
// runs[0], splitting into several heads when n exceeds MaxRunCount.
func SetRuns(runs []Run, depth uint16, n int) {
	off := 0
	for n > 0 {
		count := min(n, MaxRunCount)
		runs[off] = NewRun(depth, count)
		off += count
		n -= count
	}
}

// FillFlat writes flat samples of the given depth into row.
func FillFlat(row []Run, depth uint16) {
	s := Sample(depth)
	for i := range row {
		row[i] = s
	}
}

// InitRow resets row to a single run of the given depth.
func InitRow(row []Run, depth uint16) {
	SetRuns(row, depth, len(row))
}

// Flatten expands a run-form row into one sample per pixel. Flattening an
// already flat row does nothing.
func Flatten(row []Run) {
	if len(row) == 0 || row[0].IsFlat() {
		return
	}
	for x := 0; x < len(row); {
		r := row[x]
		n := int(r.Count)
		if r.IsFlat() || n == 0 {
			break
		}
		n = min(n, len(row)-x)
		FillFlat(row[x:x+n], r.Depth)
		x += n
	}
}

// At returns the depth stored for pixel x in either row form.
func At(row []Run, x int) uint16 {
	if row[0].IsFlat() {
		return row[x].Depth
	}
	for i := 0; i < len(row); {
		r := row[i]
		if x < i+int(r.Count) {
			return r.Depth
		}
		i += int(r.Count)
	}
	return 0
}

// FillRow fills [x0,x1) of row with depth, bypassing the depth test. A fill
// covering the whole row resets it to run form.
func FillRow(row []Run, depth uint16, x0, x1 int) {
	x0 = max(x0, 0)
	x1 = min(x1, len(row))
	switch {
	case x1 <= x0:
	case x0 == 0 && x1 == len(row):
		InitRow(row, depth)
	case row[0].IsFlat():
		FillFlat(row[x0:x1], depth)
	default:
		c := NewCursor(row, x0, x1-x0)
		c.Fill(depth)
	}
}

// CheckCoverage walks a run-form row and reports whether its chain covers
// the row exactly. Flat rows always report true.
func CheckCoverage(row []Run) bool {
	if len(row) == 0 || row[0].IsFlat() {
		return true
	}
	x := 0
	for x < len(row) {
		r := row[x]
		if r.IsFlat() || r.Count == 0 {
			return false
		}
		x += int(r.Count)
	}
	return x == len(row)
}
