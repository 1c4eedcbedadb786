package ingest

import (
	"fmt"
	"sort"

	"github.com/ZanzyTHEbar/snb-graphcore/index"
	"github.com/ZanzyTHEbar/snb-graphcore/ingest/tokenizer"
	"github.com/ZanzyTHEbar/snb-graphcore/model"
)

// BuildForums materialises TagInForums and HasMember restricted to
// used_tags and the forums reachable from them (spec.md §3, §4.F): tags
// never referenced by a Q4 query never cause their forums' membership
// lists to be built at all.
func BuildForums(forumHasTagPath, forumHasMemberPath string, usedTags map[model.TagID]bool, mapper *model.PersonMapper) (*Forums, error) {
	f := NewForums()
	if len(usedTags) == 0 {
		return f, nil
	}

	usedForums := make(map[uint32]bool)

	mf, err := tokenizer.Open(forumHasTagPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", forumHasTagPath, err)
	}
	defer mf.Close()
	body := skipHeader(mf.Data)
	t := tokenizer.New(body)
	for !t.Finished() {
		forum, tag, err := t.ConsumeTwoLongs(Delim, '\n')
		if err != nil {
			return nil, fmt.Errorf("forum_hasTag_tag.csv: %w", err)
		}
		tid := model.TagID(tag)
		if !usedTags[tid] {
			continue
		}
		f.TagForums[tid] = append(f.TagForums[tid], uint32(forum))
		usedForums[uint32(forum)] = true
	}
	if len(usedForums) == 0 {
		return f, nil
	}

	arena := index.NewArena[uint32](256)
	building := make(map[uint32]*index.LinkedSizedList[uint32])

	mf2, err := tokenizer.Open(forumHasMemberPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", forumHasMemberPath, err)
	}
	defer mf2.Close()
	body2 := skipHeader(mf2.Data)
	t2 := tokenizer.New(body2)
	for !t2.Finished() {
		forum, personRaw, err := t2.ConsumeTwoLongs(Delim, Delim)
		if err != nil {
			return nil, fmt.Errorf("forum_hasMember_person.csv: %w", err)
		}
		if err := t2.SkipAfter('\n'); err != nil {
			t2.Pos = len(t2.Data)
		}
		fid := uint32(forum)
		if !usedForums[fid] {
			continue
		}
		p, ok := mapper.Lookup(uint64(personRaw))
		if !ok {
			continue
		}
		list, exists := building[fid]
		if !exists {
			list = index.NewLinkedSizedList[uint32](arena)
			building[fid] = list
		}
		list.Append(uint32(p))
	}

	for fid, list := range building {
		flat := list.Flatten()
		items := append([]uint32(nil), flat.Items...)
		sort.Slice(items, func(i, j int) bool { return items[i] < items[j] })
		items = dedupSortedU32(items)
		f.ForumMembers[fid] = index.NewUint32List(items)
	}
	return f, nil
}
