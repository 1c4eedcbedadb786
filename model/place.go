package model

// PlaceInterval is one entry of a person's PersonPlaces list: the DFS
// interval of a place the person is associated with (residence, study
// organisation, or work organisation).
type PlaceInterval struct {
	Lower, Upper uint32
}

// Overlaps reports whether the person interval pi lies within the place
// bound qLower/qUpper, i.e. the place denoted by pi is contained in q.
func (pi PlaceInterval) Overlaps(qLower, qUpper uint32) bool {
	return qLower <= pi.Lower && pi.Upper <= qUpper
}
