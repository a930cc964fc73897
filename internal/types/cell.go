package types

// Cell is the shared-mutable inference cell behind MaybeType: it starts
// empty and may be filled exactly once. This is the single-threaded
// deferred-inference mechanism spec.md §3/§9 describes for empty list
// element types — grounded on the teacher's single-writer substitution
// cells in internal/types/typechecker_substitution.go.
//
// Cell is a pointer type (reference semantics) so that copies of a
// MaybeType holding the same Cell observe the same fill.
type Cell struct {
	filled bool
	value  Type
}

// NewCell returns a fresh, unfilled cell.
func NewCell() *Cell { return &Cell{} }

// Fill sets the cell's contents. Fill itself just overwrites; it does not
// reject a second fill. Outside tests no package calls it (internal/check
// does not fill cells).
func (c *Cell) Fill(t Type) { c.filled = true; c.value = t }

// Filled reports whether the cell has been written.
func (c *Cell) Filled() bool { return c.filled }

// Get returns the cell's contents, or Nothing if unfilled — matching
// spec.md §3's equality rule ("Nothing if unfilled").
func (c *Cell) Get() Type {
	if !c.filled {
		return Nothing()
	}
	return c.value
}

// MaybeType is either a known Type or a pending inference Cell.
type MaybeType struct {
	known *Type
	cell  *Cell
}

// Known wraps a fully resolved Type.
func Known(t Type) MaybeType { return MaybeType{known: &t} }

// Deferred wraps a Cell that resolves later (e.g. an empty list's element
// type, per spec.md §4.3: "empty list becomes List(Generic(0))").
func Deferred(c *Cell) MaybeType { return MaybeType{cell: c} }

// Resolve returns the concrete Type: either the known type, or the cell's
// current contents (Nothing if still unfilled).
func (m MaybeType) Resolve() Type {
	if m.known != nil {
		return *m.known
	}
	if m.cell != nil {
		return m.cell.Get()
	}
	return Nothing()
}

// Equal compares the current contents of two MaybeTypes.
func (m MaybeType) Equal(o MaybeType) bool {
	return m.Resolve().Equal(o.Resolve())
}

// IsDeferred reports whether m still carries an unfilled cell.
func (m MaybeType) IsDeferred() bool {
	return m.cell != nil && !m.cell.Filled()
}
