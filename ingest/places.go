package ingest

import (
	"fmt"

	"github.com/ZanzyTHEbar/snb-graphcore/ingest/tokenizer"
	"github.com/ZanzyTHEbar/snb-graphcore/model"
)

// place.csv layout: id|name|url|type.
// place_isPartOf_place.csv layout: PlaceId|PartOfPlaceId.
//
// BuildPlaces reads both files and returns a forest of model.Place values
// with DFS-interval bounds assigned by assignPlaceBounds (placebounds.go).
func BuildPlaces(placePath, partOfPath string) ([]model.Place, *model.NameIndex, error) {
	mf, err := tokenizer.Open(placePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", placePath, err)
	}
	defer mf.Close()

	body := skipHeader(mf.Data)
	t := tokenizer.New(body)

	var places []model.Place
	names := model.NewNameIndex()
	for !t.Finished() {
		id, err := t.ConsumeLong(Delim)
		if err != nil {
			return nil, nil, fmt.Errorf("place.csv: %w", err)
		}
		name, err := consumeString(t, Delim)
		if err != nil {
			return nil, nil, fmt.Errorf("place.csv: %w", err)
		}
		if err := t.SkipAfter(Delim); err != nil { // url
			return nil, nil, fmt.Errorf("place.csv: %w", err)
		}
		if err := t.SkipAfter('\n'); err != nil { // type, EOL
			t.Pos = len(t.Data)
		}
		pid := model.PlaceID(id)
		if int(pid) >= len(places) {
			grown := make([]model.Place, pid+1)
			copy(grown, places)
			for i := len(places); i < len(grown); i++ {
				grown[i].Parent = model.NoPlace
			}
			places = grown
		}
		places[pid] = model.Place{ID: pid, Name: name, Parent: model.NoPlace}
		names.Insert(name, uint32(pid))
	}

	pf, err := tokenizer.Open(partOfPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", partOfPath, err)
	}
	defer pf.Close()

	pbody := skipHeader(pf.Data)
	pt := tokenizer.New(pbody)
	for !pt.Finished() {
		child, parent, err := pt.ConsumeTwoLongs(Delim, '\n')
		if err != nil {
			return nil, nil, fmt.Errorf("place_isPartOf_place.csv: %w", err)
		}
		if int(child) >= len(places) || int(parent) >= len(places) {
			return nil, nil, fmt.Errorf("place_isPartOf_place.csv: place id out of range (%d,%d)", child, parent)
		}
		places[child].Parent = model.PlaceID(parent)
	}

	assignPlaceBounds(places)
	return places, names, nil
}
