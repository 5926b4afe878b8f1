package domain

// Pair is a stored parent/reply row, keyed by ParentID.
// There is at most one Pair per ParentID and it always holds the
// highest-scoring acceptable reply seen so far.
type Pair struct {
	// ParentID is the primary key.
	ParentID string

	// ReplyID identifies the current best reply. Unique across rows.
	ReplyID string

	// ParentBody is the text being replied to. Empty with HasParent false
	// when the parent is a thread root or was never stored.
	ParentBody string
	HasParent  bool

	// ReplyBody is the normalised text of the best reply.
	ReplyBody string

	// Subreddit is the community label of the reply.
	Subreddit string

	// CreatedUTC is the reply's creation time in seconds since the epoch.
	CreatedUTC int64

	// Score is the reply's score.
	Score int64
}

// WriteKind identifies one of the three pair store mutations.
type WriteKind string

// Pair write kinds.
const (
	// WriteInsertWithParent creates a row with a resolved parent body.
	WriteInsertWithParent WriteKind = "insert_with_parent"

	// WriteInsertWithoutParent creates a row whose parent body is unset.
	WriteInsertWithoutParent WriteKind = "insert_without_parent"

	// WriteReplace overwrites the row for Pair.ParentID.
	WriteReplace WriteKind = "replace"
)

// IsValid returns true if the write kind is recognised.
func (k WriteKind) IsValid() bool {
	switch k {
	case WriteInsertWithParent, WriteInsertWithoutParent, WriteReplace:
		return true
	default:
		return false
	}
}

// PairWrite is one pending statement against the pair store.
type PairWrite struct {
	Kind WriteKind
	Pair Pair

	// PreviousReplyID is the reply displaced by a WriteReplace.
	// Empty for inserts.
	PreviousReplyID string
}

// ApplyResult summarises one committed batch of writes.
type ApplyResult struct {
	// Applied is the number of statements that executed successfully.
	Applied int

	// Failed is the number of statements skipped because they errored.
	Failed int

	// Errors holds one error per failed statement, in batch order.
	Errors []error
}

// ExportCursor is a keyset position in (CreatedUTC, ParentID) order.
// The zero value starts from the beginning.
type ExportCursor struct {
	CreatedUTC int64
	ParentID   string
	Started    bool
}

// After returns the cursor positioned just past p.
func (c ExportCursor) After(p Pair) ExportCursor {
	return ExportCursor{CreatedUTC: p.CreatedUTC, ParentID: p.ParentID, Started: true}
}

// PairStats counts rows in the pair store.
type PairStats struct {
	Total      int64
	Paired     int64
	Exportable int64
}
