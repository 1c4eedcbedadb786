package ingest

import (
	"fmt"

	"github.com/ZanzyTHEbar/snb-graphcore/ingest/tokenizer"
	"github.com/ZanzyTHEbar/snb-graphcore/model"
)

// person.csv layout: id|firstName|lastName|gender|birthday|creationDate|
// locationIP|browserUsed. Only id and birthday are needed by the core.
//
// Person mapping must be sequential: PersonID assignment is
// order-preserving by first appearance (spec.md §3), which a
// parallel-chunk scan cannot honour without a second reconciliation pass
// no cheaper than just scanning once.
func BuildPersons(path string) (*model.PersonMapper, []model.Birthday, error) {
	mf, err := tokenizer.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer mf.Close()

	body := skipHeader(mf.Data)
	lines := 0
	for _, b := range body {
		if b == '\n' {
			lines++
		}
	}
	mapper := model.NewPersonMapper(lines)
	birthdays := make([]model.Birthday, 0, lines)

	t := tokenizer.New(body)
	for !t.Finished() {
		id, err := t.ConsumeLong(Delim)
		if err != nil {
			return nil, nil, fmt.Errorf("person.csv: %w", err)
		}
		for i := 0; i < 3; i++ {
			if err := t.SkipAfter(Delim); err != nil {
				return nil, nil, fmt.Errorf("person.csv: %w", err)
			}
		}
		bd, err := t.ConsumeBirthday(Delim)
		if err != nil {
			return nil, nil, fmt.Errorf("person.csv: %w", err)
		}
		if err := t.SkipAfter('\n'); err != nil {
			// last line may lack a trailing newline
			t.Pos = len(t.Data)
		}

		pid := mapper.Densify(uint64(id))
		if int(pid) != len(birthdays) {
			return nil, nil, fmt.Errorf("person.csv: duplicate person id %d", id)
		}
		birthdays = append(birthdays, bd)
	}
	return mapper, birthdays, nil
}
