package model

// PersonMapper assigns dense, order-preserving PersonIDs: the first source
// id seen gets id 0, the second gets id 1, and so on. It is built once
// during ingestion and read-only afterward.
type PersonMapper struct {
	toDense  map[uint64]PersonID
	original []uint64 // toDense inverse, indexed by PersonID
}

func NewPersonMapper(capacityHint int) *PersonMapper {
	return &PersonMapper{
		toDense:  make(map[uint64]PersonID, capacityHint),
		original: make([]uint64, 0, capacityHint),
	}
}

// Densify returns the dense id for a source id, assigning a fresh one on
// first appearance.
func (m *PersonMapper) Densify(source uint64) PersonID {
	if id, ok := m.toDense[source]; ok {
		return id
	}
	id := PersonID(len(m.original))
	m.toDense[source] = id
	m.original = append(m.original, source)
	return id
}

// Lookup returns the dense id for a source id without assigning one.
func (m *PersonMapper) Lookup(source uint64) (PersonID, bool) {
	id, ok := m.toDense[source]
	return id, ok
}

// Original returns the source id a dense id was assigned from.
func (m *PersonMapper) Original(id PersonID) uint64 {
	if int(id) >= len(m.original) {
		return 0
	}
	return m.original[id]
}

// N returns the number of densified persons.
func (m *PersonMapper) N() int { return len(m.original) }

// CommentScale is the AWFY reference's deterministic scale factor: raw
// comment ids are divided by ten and are never densified.
const CommentScale = 10

func ScaleCommentID(raw uint64) CommentID { return CommentID(raw / CommentScale) }
