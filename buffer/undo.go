package buffer

import "time"

type OpType int

const (
	OpInsert OpType = iota
	OpDelete
)

// Operation is one reversible text change.
type Operation struct {
	Type   OpType
	Pos    Cursor
	Text   string
	Before Cursor // cursor position before the change
	Time   time.Time
	Group  int // 0 means the operation undoes on its own
}

// UndoStack records operations. Runs of single-character typing that
// happen close together are merged into one group so a word undoes at once.
type UndoStack struct {
	undos     []Operation
	redos     []Operation
	nextGroup int
	now       func() time.Time
}

const undoGroupInterval = 300 * time.Millisecond

func NewUndoStack() *UndoStack {
	return &UndoStack{nextGroup: 1, now: time.Now}
}

func (u *UndoStack) Push(op Operation) {
	op.Time = u.now()
	if n := len(u.undos); n > 0 {
		prev := &u.undos[n-1]
		if continuesWord(prev, &op) {
			if prev.Group == 0 {
				prev.Group = u.NewGroup()
			}
			op.Group = prev.Group
		}
	}
	u.undos = append(u.undos, op)
	u.redos = u.redos[:0]
}

// PushGrouped records op as part of an explicit group, e.g. a replace
// made of a delete and an insert.
func (u *UndoStack) PushGrouped(op Operation, group int) {
	op.Time = u.now()
	op.Group = group
	u.undos = append(u.undos, op)
	u.redos = u.redos[:0]
}

func (u *UndoStack) NewGroup() int {
	id := u.nextGroup
	u.nextGroup++
	return id
}

func continuesWord(prev, cur *Operation) bool {
	if prev.Type != cur.Type || len(prev.Text) != 1 || len(cur.Text) != 1 {
		return false
	}
	if cur.Time.Sub(prev.Time) >= undoGroupInterval {
		return false
	}
	if isSpace(cur.Text[0]) || isSpace(prev.Text[0]) {
		return false
	}
	if cur.Type == OpInsert {
		return cur.Pos.Line == prev.Pos.Line && cur.Pos.Col == prev.Pos.Col+1
	}
	return true
}

func isSpace(ch byte) bool { return ch == ' ' || ch == '\t' || ch == '\n' }

func (u *UndoStack) CanUndo() bool { return len(u.undos) > 0 }
func (u *UndoStack) CanRedo() bool { return len(u.redos) > 0 }

// popUndo moves the newest operation, and the rest of its group, to the
// redo stack. The result is newest first.
func (u *UndoStack) popUndo() []Operation {
	return move(&u.undos, &u.redos)
}

// popRedo is the mirror of popUndo. The result is oldest first.
func (u *UndoStack) popRedo() []Operation {
	return move(&u.redos, &u.undos)
}

func move(from, to *[]Operation) []Operation {
	if len(*from) == 0 {
		return nil
	}
	var ops []Operation
	for {
		n := len(*from)
		op := (*from)[n-1]
		*from = (*from)[:n-1]
		*to = append(*to, op)
		ops = append(ops, op)
		if op.Group == 0 || len(*from) == 0 || (*from)[len(*from)-1].Group != op.Group {
			return ops
		}
	}
}
