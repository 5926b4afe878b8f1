package domain

// Comment is one record read from a comment dump.
// It lives only long enough to be folded into the pair store or rejected.
type Comment struct {
	// ParentID names the item this comment replies to (e.g. "t1_abc" or "t3_xyz").
	ParentID string

	// ReplyID is the comment's own identifier. Replies to this comment
	// carry it as their ParentID.
	ReplyID string

	// Body is the raw comment text.
	Body string

	// Subreddit is the community the comment was posted in.
	Subreddit string

	// CreatedUTC is the creation time in seconds since the epoch.
	CreatedUTC int64

	// Score is upvotes minus downvotes.
	Score int64
}

// Validate reports whether all required fields are present.
// Score and CreatedUTC are required by the dump reader, not here,
// since zero is a valid value for both.
func (c Comment) Validate() error {
	switch {
	case c.ParentID == "":
		return missingField("parent_id")
	case c.ReplyID == "":
		return missingField("name")
	case c.Subreddit == "":
		return missingField("subreddit")
	}
	return nil
}

// Candidate is a normalised comment ready for best-reply selection.
type Candidate struct {
	Comment

	// ParentBody is the resolved text of the parent comment.
	// Empty with HasParent false when the parent was never stored.
	ParentBody string
	HasParent  bool
}
