package ingest

import (
	"fmt"

	"github.com/ZanzyTHEbar/snb-graphcore/ingest/tokenizer"
	"github.com/ZanzyTHEbar/snb-graphcore/model"
)

// tag.csv layout: id|name|url. Tag is a bijection between id and name.
func BuildTags(path string) ([]model.Tag, *model.NameIndex, error) {
	mf, err := tokenizer.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer mf.Close()

	body := skipHeader(mf.Data)
	t := tokenizer.New(body)

	var tags []model.Tag
	names := model.NewNameIndex()
	for !t.Finished() {
		id, err := t.ConsumeLong(Delim)
		if err != nil {
			return nil, nil, fmt.Errorf("tag.csv: %w", err)
		}
		name, err := consumeString(t, Delim)
		if err != nil {
			return nil, nil, fmt.Errorf("tag.csv: %w", err)
		}
		if err := t.SkipAfter('\n'); err != nil {
			t.Pos = len(t.Data)
		}
		tid := model.TagID(id)
		if int(tid) >= len(tags) {
			grown := make([]model.Tag, tid+1)
			copy(grown, tags)
			tags = grown
		}
		tags[tid] = model.Tag{ID: tid, Name: name}
		names.Insert(name, uint32(tid))
	}
	return tags, names, nil
}
