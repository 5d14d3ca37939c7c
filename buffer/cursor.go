package buffer

// Cursor is a position in the buffer. Col is a byte offset into the line.
type Cursor struct {
	Line, Col int
}

func (c Cursor) Before(other Cursor) bool {
	if c.Line != other.Line {
		return c.Line < other.Line
	}
	return c.Col < other.Col
}

// Selection is a normalized range: Start never comes after End.
type Selection struct {
	Start, End Cursor
}

func NewSelection(a, b Cursor) Selection {
	if b.Before(a) {
		a, b = b, a
	}
	return Selection{Start: a, End: b}
}

func (s Selection) Contains(c Cursor) bool {
	return !c.Before(s.Start) && !s.End.Before(c)
}

func (s Selection) Empty() bool { return s.Start == s.End }
