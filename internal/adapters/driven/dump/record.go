package dump

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/INASIC/Chatbot/internal/core/domain"
)

// record mirrors the subset of a dump line that ingest consumes. Pointers
// distinguish an absent key from a zero value.
type record struct {
	ParentID   string   `json:"parent_id"`
	Body       *string  `json:"body"`
	CreatedUTC *flexInt `json:"created_utc"`
	Score      *flexInt `json:"score"`
	Name       string   `json:"name"`
	ID         string   `json:"id"`
	Subreddit  string   `json:"subreddit"`
}

// flexInt decodes an integer written either as a JSON number or as a
// string. Older dumps quote created_utc.
type flexInt int64

// UnmarshalJSON implements json.Unmarshaler.
func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		return fmt.Errorf("empty integer")
	}
	if n, err := strconv.ParseInt(string(data), 10, 64); err == nil {
		*f = flexInt(n)
		return nil
	}
	// Some exports write timestamps as floats.
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("parsing integer %q: %w", data, err)
	}
	if math.IsNaN(v) || v < math.MinInt64 || v >= math.MaxInt64 {
		return fmt.Errorf("integer %q out of range", data)
	}
	*f = flexInt(v)
	return nil
}

// parseLine decodes one dump line into a comment.
func parseLine(line []byte) (domain.Comment, error) {
	var r record
	if err := json.Unmarshal(line, &r); err != nil {
		return domain.Comment{}, fmt.Errorf("%w: %w", domain.ErrMalformedRecord, err)
	}

	switch {
	case r.Body == nil:
		return domain.Comment{}, fmt.Errorf("%w: body", domain.ErrMissingField)
	case r.CreatedUTC == nil:
		return domain.Comment{}, fmt.Errorf("%w: created_utc", domain.ErrMissingField)
	case r.Score == nil:
		return domain.Comment{}, fmt.Errorf("%w: score", domain.ErrMissingField)
	}

	name := r.Name
	if name == "" && r.ID != "" {
		name = "t1_" + r.ID
	}

	c := domain.Comment{
		ParentID:   r.ParentID,
		ReplyID:    name,
		Body:       *r.Body,
		Subreddit:  r.Subreddit,
		CreatedUTC: int64(*r.CreatedUTC),
		Score:      int64(*r.Score),
	}
	if err := c.Validate(); err != nil {
		return domain.Comment{}, err
	}
	return c, nil
}
