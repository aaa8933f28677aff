package db

// Entry is one stored dictionary record. SourceID is zero when the entry was
// written without a source.
type Entry struct {
	ID         int64
	SourceID   int64
	OrigWord   string
	SortedWord string
}
