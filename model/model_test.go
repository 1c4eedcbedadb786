package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackBirthdayComparesLexicographically(t *testing.T) {
	older := PackBirthday(1980, 5, 12)
	younger := PackBirthday(1980, 5, 13)
	assert.Less(t, uint32(older), uint32(younger))
	assert.Equal(t, 1980, older.Year())
	assert.Equal(t, 5, older.Month())
	assert.Equal(t, 12, older.Day())
}

func TestPersonMapperDensifiesInFirstSeenOrder(t *testing.T) {
	m := NewPersonMapper(0)
	a := m.Densify(9001)
	b := m.Densify(9002)
	again := m.Densify(9001)

	assert.Equal(t, PersonID(0), a)
	assert.Equal(t, PersonID(1), b)
	assert.Equal(t, a, again)
	assert.Equal(t, 2, m.N())
	assert.Equal(t, uint64(9001), m.Original(a))
}

func TestPersonMapperLookupDoesNotAssign(t *testing.T) {
	m := NewPersonMapper(0)
	_, ok := m.Lookup(42)
	assert.False(t, ok)
	assert.Equal(t, 0, m.N())
}

func TestScaleCommentIDDividesBySameScaleAsAWFY(t *testing.T) {
	assert.Equal(t, CommentID(4), ScaleCommentID(49))
	assert.Equal(t, CommentID(0), ScaleCommentID(9))
}

func TestNameIndexLookupAndWalkPrefix(t *testing.T) {
	n := NewNameIndex()
	n.Insert("Paris", 1)
	n.Insert("Paris", 2) // duplicate name, distinct source ids
	n.Insert("Parma", 3)

	ids, ok := n.Lookup("Paris")
	require.True(t, ok)
	assert.ElementsMatch(t, []uint32{1, 2}, ids)

	var seen []string
	n.WalkPrefix("Par", func(name string, ids []uint32) bool {
		seen = append(seen, name)
		return false
	})
	assert.ElementsMatch(t, []string{"Paris", "Parma"}, seen)
}

func TestNameIndexLookupMissingNameReturnsFalse(t *testing.T) {
	n := NewNameIndex()
	_, ok := n.Lookup("Nowhere")
	assert.False(t, ok)
}

func TestPlaceContainsUsesDFSIntervalContainment(t *testing.T) {
	continent := Place{Lower: 0, Upper: 100}
	country := Place{Lower: 10, Upper: 20}
	unrelated := Place{Lower: 200, Upper: 210}

	assert.True(t, continent.Contains(country))
	assert.False(t, country.Contains(continent))
	assert.False(t, continent.Contains(unrelated))
}

func TestPlaceIntervalOverlapsChecksContainmentWithinQueryBound(t *testing.T) {
	person := PlaceInterval{Lower: 10, Upper: 15}
	assert.True(t, person.Overlaps(0, 100))
	assert.False(t, person.Overlaps(11, 15))
	assert.False(t, person.Overlaps(0, 12))
}
