package tokenizer

import (
	"os"

	"golang.org/x/sys/unix"
)

// MappedFile is a memory-mapped (or, on platforms/errors where mmap is
// unavailable, a plain read-into-memory) view of a CSV file.
type MappedFile struct {
	Data  []byte
	close func() error
}

// Open memory-maps path read-only. If mmap fails for any reason it falls
// back to a full read into a heap buffer: the tokenizer's contract only
// needs a stable []byte, and a portable Go core should not be fatal on
// platforms without mmap.
func Open(path string) (*MappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()
	if size == 0 {
		return &MappedFile{Data: nil, close: func() error { return nil }}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		return &MappedFile{
			Data:  data,
			close: func() error { return unix.Munmap(data) },
		}, nil
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &MappedFile{Data: buf, close: func() error { return nil }}, nil
}

func (m *MappedFile) Close() error {
	if m.close == nil {
		return nil
	}
	return m.close()
}
