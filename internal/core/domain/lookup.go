package domain

// LookupStatus distinguishes a missing row from a failed query.
type LookupStatus int

// Lookup outcomes.
const (
	LookupNotFound LookupStatus = iota
	LookupFound
	LookupFailed
)

// String returns the string representation.
func (s LookupStatus) String() string {
	switch s {
	case LookupFound:
		return "found"
	case LookupNotFound:
		return "not_found"
	case LookupFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ReplyLookup is the result of looking up the stored reply for a parent.
type ReplyLookup struct {
	Status  LookupStatus
	ReplyID string
	Score   int64
	Err     error
}

// Found returns true if a stored reply exists.
func (l ReplyLookup) Found() bool { return l.Status == LookupFound }

// ReplyFound builds a successful ReplyLookup.
func ReplyFound(replyID string, score int64) ReplyLookup {
	return ReplyLookup{Status: LookupFound, ReplyID: replyID, Score: score}
}

// ReplyNotFound builds an empty ReplyLookup.
func ReplyNotFound() ReplyLookup {
	return ReplyLookup{Status: LookupNotFound}
}

// ReplyFailed builds a failed ReplyLookup.
func ReplyFailed(err error) ReplyLookup {
	return ReplyLookup{Status: LookupFailed, Err: err}
}

// BodyLookup is the result of resolving a parent body by reply ID.
type BodyLookup struct {
	Status LookupStatus
	Body   string
	Err    error
}

// Found returns true if a body was resolved.
func (l BodyLookup) Found() bool { return l.Status == LookupFound }

// BodyFound builds a successful BodyLookup.
func BodyFound(body string) BodyLookup {
	return BodyLookup{Status: LookupFound, Body: body}
}

// BodyNotFound builds an empty BodyLookup.
func BodyNotFound() BodyLookup {
	return BodyLookup{Status: LookupNotFound}
}

// BodyFailed builds a failed BodyLookup.
func BodyFailed(err error) BodyLookup {
	return BodyLookup{Status: LookupFailed, Err: err}
}
