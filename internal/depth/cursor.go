package depth

// Cursor locates a span within a run-form row, tests it against the row's
// runs and optionally records the span's own depth as new runs.
//
// A Cursor borrows the row; it must not outlive the span it was built for.
type Cursor struct {
	runs  []Run
	cur   int
	start int
	end   int
}

// NewCursor returns a cursor over [spanOffset, spanOffset+spanCount) of a
// run-form row.
func NewCursor(row []Run, spanOffset, spanCount int) Cursor {
	c := Cursor{runs: row, start: spanOffset, end: spanOffset + spanCount}
	n := len(row)
	c.end = min(c.end, n)
	if c.start >= n {
		c.cur, c.start = n, n
		return c
	}
	for {
		next := c.cur + int(row[c.cur].Count)
		if c.start < next || row[c.cur].Count == 0 {
			break
		}
		c.cur = next
	}
	return c
}

// Valid reports whether the cursor is exhausted or its current run contains
// the start of the remaining span.
func (c *Cursor) Valid() bool {
	if c.cur >= c.end {
		return true
	}
	return c.cur <= c.start && c.start < c.cur+int(c.runs[c.cur].Count)
}

// Done reports whether the cursor reached the end of its span.
func (c *Cursor) Done() bool { return c.cur >= c.end }

// Start returns the row offset of the remaining span.
func (c *Cursor) Start() int { return c.start }

// SkipFailed advances past every run that fails the depth test against
// val. It returns the number of span pixels skipped, or -1 if the span
// ends before any passing run.
func (c *Cursor) SkipFailed(val uint16, fn Func) int {
	prev := c.start
	for c.cur < c.end {
		if fn.Passes(val, c.runs[c.cur].Depth) {
			return c.start - prev
		}
		c.cur += int(c.runs[c.cur].Count)
		c.start = c.cur
	}
	return -1
}

// CheckPassed advances while runs pass the depth test and returns the
// number of span pixels that passed. When mask is set the passed region is
// rewritten as a run of depth val: a passing run that extends past the span
// is split at the span end, and the run preceding the span start is trimmed
// to end where the new run begins.
func (c *Cursor) CheckPassed(val uint16, fn Func, mask bool) int {
	prev := c.cur
	for c.cur < c.end {
		r := c.runs[c.cur]
		if !fn.Passes(val, r.Depth) {
			break
		}
		next := c.cur + int(r.Count)
		if next > c.end {
			if mask {
				c.runs[c.end] = NewRun(r.Depth, next-c.end)
			}
			next = c.end
		}
		c.cur = next
	}
	if c.cur <= c.start {
		return 0
	}
	passed := c.cur - c.start
	if mask {
		if prev < c.start {
			c.runs[prev].Count = uint16(c.start - prev)
		}
		SetRuns(c.runs[c.start:], val, passed)
	}
	c.start = c.cur
	return passed
}

// Peek reports how many pixels would pass from the current position
// without modifying the row.
func (c Cursor) Peek(val uint16, fn Func) int {
	return c.CheckPassed(val, fn, false)
}

// Fill writes val over the remaining span regardless of stored depth.
func (c *Cursor) Fill(val uint16) {
	c.CheckPassed(val, Always, true)
}
