package ingest

import (
	"fmt"

	"github.com/ZanzyTHEbar/snb-graphcore/index"
	"github.com/ZanzyTHEbar/snb-graphcore/ingest/tokenizer"
	"github.com/ZanzyTHEbar/snb-graphcore/model"
)

// BuildPersonPlaces unions residence (person_isLocatedIn_place.csv), study
// organisations (person_studyAt_organisation.csv, resolved via
// organisation_isLocatedIn_place.csv) and work organisations
// (person_workAt_organisation.csv, same resolution) into a per-person list
// of place intervals (spec.md §3).
func BuildPersonPlaces(locatedInPath, studyAtPath, workAtPath string, places []model.Place, orgPlaces *index.DirectIndex[model.PlaceID], mapper *model.PersonMapper) ([][]model.PlaceInterval, error) {
	out := make([][]model.PlaceInterval, mapper.N())

	addPlace := func(p model.PersonID, place model.PlaceID) {
		if int(place) >= len(places) {
			return
		}
		pl := places[place]
		out[p] = append(out[p], model.PlaceInterval{Lower: pl.Lower, Upper: pl.Upper})
	}

	if err := scanPersonPlacePairs(locatedInPath, mapper, func(p model.PersonID, place uint64) {
		addPlace(p, model.PlaceID(place))
	}); err != nil {
		return nil, fmt.Errorf("person_isLocatedIn_place.csv: %w", err)
	}

	if err := scanPersonOrgPairs(studyAtPath, mapper, func(p model.PersonID, org uint64) {
		place := orgPlaces.Retrieve(uint32(org))
		if place != model.NoPlace {
			addPlace(p, place)
		}
	}); err != nil {
		return nil, fmt.Errorf("person_studyAt_organisation.csv: %w", err)
	}

	if err := scanPersonOrgPairs(workAtPath, mapper, func(p model.PersonID, org uint64) {
		place := orgPlaces.Retrieve(uint32(org))
		if place != model.NoPlace {
			addPlace(p, place)
		}
	}); err != nil {
		return nil, fmt.Errorf("person_workAt_organisation.csv: %w", err)
	}

	return out, nil
}

func scanPersonPlacePairs(path string, mapper *model.PersonMapper, fn func(p model.PersonID, place uint64)) error {
	mf, err := tokenizer.Open(path)
	if err != nil {
		return err
	}
	defer mf.Close()
	body := skipHeader(mf.Data)
	t := tokenizer.New(body)
	for !t.Finished() {
		personRaw, place, err := t.ConsumeTwoLongs(Delim, '\n')
		if err != nil {
			return err
		}
		p, ok := mapper.Lookup(uint64(personRaw))
		if !ok {
			continue
		}
		fn(p, uint64(place))
	}
	return nil
}

// scanPersonOrgPairs reads PersonId|OrganisationId|<trailing field> lines,
// ignoring the trailing field (classYear or workFrom).
func scanPersonOrgPairs(path string, mapper *model.PersonMapper, fn func(p model.PersonID, org uint64)) error {
	mf, err := tokenizer.Open(path)
	if err != nil {
		return err
	}
	defer mf.Close()
	body := skipHeader(mf.Data)
	t := tokenizer.New(body)
	for !t.Finished() {
		personRaw, org, err := t.ConsumeTwoLongs(Delim, Delim)
		if err != nil {
			return err
		}
		if err := t.SkipAfter('\n'); err != nil {
			t.Pos = len(t.Data)
		}
		p, ok := mapper.Lookup(uint64(personRaw))
		if !ok {
			continue
		}
		fn(p, uint64(org))
	}
	return nil
}
