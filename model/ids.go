// Package model holds the data types shared across the ingestion, index,
// and query-engine packages: person/tag/place identifiers, the packed
// birthday representation, and the entity structs of spec.md §3.
package model

import "math"

// PersonID is the densified, order-preserving person identifier assigned
// during person mapping. Stable for the lifetime of a run.
type PersonID uint32

// CommentID uses the AWFY-style deterministic scale factor: the raw source
// id divided by ten. Not densified.
type CommentID uint64

// TagID and PlaceID identify tags and places; a place name may be shared
// by several PlaceIDs (see NameIndex).
type TagID uint32
type PlaceID uint32

// NoPerson, NoTag, NoPlace are explicit sentinels. The original reference
// aliases a raw pointer's bit pattern as this sentinel (spec.md §9 Open
// Question 3); this implementation never does that.
const (
	NoPerson PersonID = math.MaxUint32
	NoTag    TagID    = math.MaxUint32
	NoPlace  PlaceID  = math.MaxUint32
)

// Birthday packs (year<<16)|(month<<8)|day so that two birthdays compare
// correctly with plain integer comparison.
type Birthday uint32

func PackBirthday(year, month, day int) Birthday {
	return Birthday(uint32(year)<<16 | uint32(month)<<8 | uint32(day))
}

func (b Birthday) Year() int  { return int(b >> 16) }
func (b Birthday) Month() int { return int((b >> 8) & 0xFF) }
func (b Birthday) Day() int   { return int(b & 0xFF) }

// Person is immutable once created during person mapping.
type Person struct {
	ID       PersonID
	Original uint64 // native source id, for de-densified output
	Birthday Birthday
}

// Tag is a bijection between id and name.
type Tag struct {
	ID   TagID
	Name string
}

// Place is a node of the geographic forest; Lower/Upper are the DFS
// interval bounds assigned by the place-bounds builder (component C).
type Place struct {
	ID       PlaceID
	Name     string
	Parent   PlaceID // NoPlace for roots
	Lower    uint32
	Upper    uint32
}

// Contains reports whether p contains q under the DFS-interval rule.
func (p Place) Contains(q Place) bool {
	return p.Lower <= q.Lower && p.Upper >= q.Upper
}

// InterestStat records, per tag, how many persons hold it and the maximum
// birthday among them; sorted descending by NumPersons at build time.
type InterestStat struct {
	Tag         TagID
	NumPersons  uint32
	MaxBirthday Birthday
}
