package tokenizer

// Chunk is a newline-aligned byte range within a mapped file.
type Chunk struct {
	Start, End int
}

// Chunks splits data into up to n newline-aligned chunks for parallel
// scanning: each non-initial chunk starts just after a newline (so it
// never starts mid-record) and each chunk's end is extended past the first
// newline at or after its nominal end (so it never ends mid-record either). The header
// line, if present, must be skipped by the caller before chunking the
// remaining body.
func Chunks(data []byte, n int) []Chunk {
	if n <= 0 {
		n = 1
	}
	size := len(data)
	if size == 0 {
		return nil
	}
	step := size / n
	if step == 0 {
		return []Chunk{{Start: 0, End: size}}
	}

	chunks := make([]Chunk, 0, n)
	start := 0
	for i := 0; i < n; i++ {
		end := start + step
		if i == n-1 || end >= size {
			end = size
		} else {
			// extend to the next newline so no record is split
			for end < size && data[end] != '\n' {
				end++
			}
			if end < size {
				end++ // include the newline
			}
		}
		if start > 0 {
			// advance past a partial leading record left by the previous
			// chunk's extension
			for start < end && data[start-1] != '\n' {
				start++
			}
		}
		if start < end {
			chunks = append(chunks, Chunk{Start: start, End: end})
		}
		start = end
		if start >= size {
			break
		}
	}
	return chunks
}
