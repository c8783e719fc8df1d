package gpu

// Location is a uniform or attribute slot resolved once at link time.
// The zero value is an absent slot: the program declares no such input.
type Location struct {
	index int32
	valid bool
}

// LocationOf wraps a raw GL location; negative values mean absent.
func LocationOf(raw int32) Location {
	if raw < 0 {
		return Location{}
	}
	return Location{index: raw, valid: true}
}

// Get returns the raw index and whether the slot exists.
func (l Location) Get() (int32, bool) {
	return l.index, l.valid
}

func (l Location) Valid() bool { return l.valid }

// Attrib returns the slot as a vertex attribute index.
func (l Location) Attrib() (uint32, bool) {
	return uint32(l.index), l.valid
}
