package ingest

import "errors"

// errUnexpectedEOF is a fatal error category of spec.md §7: an unexpected
// EOF inside a record.
var errUnexpectedEOF = errors.New("ingest: unexpected EOF inside record")
