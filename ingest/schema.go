package ingest

import "github.com/ZanzyTHEbar/snb-graphcore/ingest/tokenizer"

// Delim is the field delimiter of every data file (spec.md §6).
const Delim = '|'

// skipHeader advances past the file's header line, per spec.md §6 ("each
// with a header line"), and returns the remaining body as a fresh
// tokenizer-ready slice.
func skipHeader(data []byte) []byte {
	for i, b := range data {
		if b == '\n' {
			return data[i+1:]
		}
	}
	return nil
}

// consumeString reads a delimited field as a string without validating its
// contents (used for tag/place names, unlike the numeric ConsumeLong path).
func consumeString(t *tokenizer.Tokenizer, delim byte) (string, error) {
	start := t.Pos
	for t.Pos < len(t.Data) && t.Data[t.Pos] != delim {
		t.Pos++
	}
	if t.Pos >= len(t.Data) {
		return "", errUnexpectedEOF
	}
	s := string(t.Data[start:t.Pos])
	t.Pos++
	return s, nil
}
