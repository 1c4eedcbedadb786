package ingest

import (
	"sort"

	"github.com/ZanzyTHEbar/snb-graphcore/model"
)

// BuildInterestStats computes, per tag, the number of persons holding it
// and the maximum birthday among them, sorted descending by NumPersons
// (spec.md §3), which Q2's monotone-bound scan relies on.
func BuildInterestStats(interests *Interests, birthdays []model.Birthday) []model.InterestStat {
	stats := make([]model.InterestStat, 0, len(interests.ByTag))
	for tag, bm := range interests.ByTag {
		var maxBd model.Birthday
		it := bm.Iterator()
		for it.HasNext() {
			p := it.Next()
			if bd := birthdays[p]; bd > maxBd {
				maxBd = bd
			}
		}
		stats = append(stats, model.InterestStat{
			Tag:         tag,
			NumPersons:  uint32(bm.GetCardinality()),
			MaxBirthday: maxBd,
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].NumPersons != stats[j].NumPersons {
			return stats[i].NumPersons > stats[j].NumPersons
		}
		return stats[i].Tag < stats[j].Tag
	})
	return stats
}
