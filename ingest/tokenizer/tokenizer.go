// Package tokenizer implements the columnar tokenizer contract of
// spec.md §4.A: delivering integers and strings from an in-memory CSV
// region, plus a chunker for parallel scans.
package tokenizer

import (
	"fmt"

	"github.com/ZanzyTHEbar/snb-graphcore/model"
)

// Tokenizer scans a delimited byte region sequentially. It never copies
// the underlying buffer.
type Tokenizer struct {
	Data []byte
	Pos  int
}

func New(data []byte) *Tokenizer { return &Tokenizer{Data: data} }

func (t *Tokenizer) Finished() bool { return t.Pos >= len(t.Data) }

// ConsumeLong parses a decimal integer (tolerating a leading '-') up to
// delim, failing fast if delim is never found in the remaining buffer.
func (t *Tokenizer) ConsumeLong(delim byte) (int64, error) {
	start := t.Pos
	neg := false
	if t.Pos < len(t.Data) && t.Data[t.Pos] == '-' {
		neg = true
		t.Pos++
	}
	var v int64
	digits := 0
	for t.Pos < len(t.Data) && t.Data[t.Pos] != delim {
		c := t.Data[t.Pos]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("tokenizer: non-digit byte %q at offset %d", c, t.Pos)
		}
		v = v*10 + int64(c-'0')
		digits++
		t.Pos++
	}
	if t.Pos >= len(t.Data) {
		return 0, fmt.Errorf("tokenizer: expected delimiter %q from offset %d, hit EOF", delim, start)
	}
	t.Pos++ // consume delimiter
	if digits == 0 {
		return 0, fmt.Errorf("tokenizer: no digits found before delimiter at offset %d", start)
	}
	if neg {
		v = -v
	}
	return v, nil
}

// ConsumeTwoLongs parses two consecutive delimited integers, failing fast
// if either expected delimiter is missing.
func (t *Tokenizer) ConsumeTwoLongs(delim1, delim2 byte) (int64, int64, error) {
	a, err := t.ConsumeLong(delim1)
	if err != nil {
		return 0, 0, err
	}
	b, err := t.ConsumeLong(delim2)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// SkipAfter advances past the next occurrence of delim.
func (t *Tokenizer) SkipAfter(delim byte) error {
	for t.Pos < len(t.Data) {
		if t.Data[t.Pos] == delim {
			t.Pos++
			return nil
		}
		t.Pos++
	}
	return fmt.Errorf("tokenizer: delimiter %q not found before EOF", delim)
}

// SkipAfterCounting advances past the next occurrence of delim and returns
// how many bytes were skipped (excluding the delimiter itself).
func (t *Tokenizer) SkipAfterCounting(delim byte) (int, error) {
	start := t.Pos
	if err := t.SkipAfter(delim); err != nil {
		return 0, err
	}
	return t.Pos - start - 1, nil
}

// ConsumeFixedWidthLong parses exactly length digit bytes, optionally
// skipping one trailing delimiter byte.
func (t *Tokenizer) ConsumeFixedWidthLong(length int, skip bool) (int64, error) {
	if t.Pos+length > len(t.Data) {
		return 0, fmt.Errorf("tokenizer: fixed-width read of %d bytes at offset %d overruns buffer", length, t.Pos)
	}
	var v int64
	for i := 0; i < length; i++ {
		c := t.Data[t.Pos+i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("tokenizer: non-digit byte %q in fixed-width field", c)
		}
		v = v*10 + int64(c-'0')
	}
	t.Pos += length
	if skip {
		t.Pos++
	}
	return v, nil
}

// ConsumeBirthday reads a YYYY-MM-DD field, consuming the trailing
// delimiter byte if delim is non-zero.
func (t *Tokenizer) ConsumeBirthday(delim byte) (model.Birthday, error) {
	year, err := t.ConsumeFixedWidthLong(4, false)
	if err != nil {
		return 0, err
	}
	if err := t.expect('-'); err != nil {
		return 0, err
	}
	month, err := t.ConsumeFixedWidthLong(2, false)
	if err != nil {
		return 0, err
	}
	if err := t.expect('-'); err != nil {
		return 0, err
	}
	day, err := t.ConsumeFixedWidthLong(2, false)
	if err != nil {
		return 0, err
	}
	if delim != 0 {
		if err := t.expect(delim); err != nil {
			return 0, err
		}
	}
	return model.PackBirthday(int(year), int(month), int(day)), nil
}

func (t *Tokenizer) expect(b byte) error {
	if t.Pos >= len(t.Data) || t.Data[t.Pos] != b {
		return fmt.Errorf("tokenizer: expected byte %q at offset %d", b, t.Pos)
	}
	t.Pos++
	return nil
}

// CountLines counts the remaining newline-terminated lines without
// consuming the buffer.
func (t *Tokenizer) CountLines() int {
	n := 0
	for i := t.Pos; i < len(t.Data); i++ {
		if t.Data[i] == '\n' {
			n++
		}
	}
	return n
}
