package ingest

import (
	"fmt"

	"github.com/ZanzyTHEbar/snb-graphcore/index"
	"github.com/ZanzyTHEbar/snb-graphcore/ingest/tokenizer"
	"github.com/ZanzyTHEbar/snb-graphcore/model"
)

// organisation_isLocatedIn_place.csv layout: OrganisationId|PlaceId. This
// is its own named index (spec.md §3 supplement) so PersonPlaces
// construction resolves study/work organisations through one direct
// lookup instead of re-joining per person.
func BuildOrganisationPlaces(path string) (*index.DirectIndex[model.PlaceID], error) {
	mf, err := tokenizer.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer mf.Close()

	body := skipHeader(mf.Data)
	t := tokenizer.New(body)

	idx := index.NewDirectIndex[model.PlaceID](0, model.NoPlace)
	for !t.Finished() {
		org, place, err := t.ConsumeTwoLongs(Delim, '\n')
		if err != nil {
			return nil, fmt.Errorf("organisation_isLocatedIn_place.csv: %w", err)
		}
		idx.Insert(uint32(org), model.PlaceID(place))
	}
	return idx, nil
}
