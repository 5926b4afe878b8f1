package services

import (
	"fmt"

	"github.com/INASIC/Chatbot/internal/core/domain"
	"github.com/INASIC/Chatbot/internal/core/ports/driven"
)

// Decision is the outcome of best-reply selection for one candidate.
type Decision string

// Selection decisions.
const (
	DecisionRejectedScore       Decision = "rejected_score"
	DecisionRejectedBody        Decision = "rejected_body"
	DecisionDiscarded           Decision = "discarded"
	DecisionReplace             Decision = "replace"
	DecisionInsertWithParent    Decision = "insert_with_parent"
	DecisionInsertWithoutParent Decision = "insert_without_parent"
)

// Rejected returns true if the candidate failed the score or body checks.
func (d Decision) Rejected() bool {
	return d == DecisionRejectedScore || d == DecisionRejectedBody
}

// Selection is a decision plus the write it produces, if any.
type Selection struct {
	Decision Decision

	// Write is nil for rejections and discards.
	Write *domain.PairWrite

	// Reason explains a rejection.
	Reason error
}

// Selector keeps the highest-scoring acceptable reply per parent.
type Selector struct {
	minScore int64
	filter   driven.BodyFilter
}

// NewSelector creates a selector rejecting scores below minScore and
// bodies the filter refuses.
func NewSelector(minScore int64, filter driven.BodyFilter) *Selector {
	return &Selector{minScore: minScore, filter: filter}
}

// Screen applies the score threshold and body filter. It returns an empty
// Decision when the comment may proceed to lookup.
func (s *Selector) Screen(c domain.Comment) (Decision, error) {
	if c.Score < s.minScore {
		return DecisionRejectedScore, fmt.Errorf("score %d below %d", c.Score, s.minScore)
	}
	if err := s.filter.Check(c.Body); err != nil {
		return DecisionRejectedBody, err
	}
	return "", nil
}

// Decide chooses between insert, replace and discard for a screened
// candidate. A lookup that did not find a row, including a failed one,
// counts as no existing reply. Ties keep the stored reply.
func (s *Selector) Decide(c domain.Candidate, existing domain.ReplyLookup) Selection {
	pair := domain.Pair{
		ParentID:   c.ParentID,
		ReplyID:    c.ReplyID,
		ParentBody: c.ParentBody,
		HasParent:  c.HasParent,
		ReplyBody:  c.Body,
		Subreddit:  c.Subreddit,
		CreatedUTC: c.CreatedUTC,
		Score:      c.Score,
	}

	if existing.Found() {
		if c.Score <= existing.Score {
			return Selection{Decision: DecisionDiscarded}
		}
		return Selection{
			Decision: DecisionReplace,
			Write: &domain.PairWrite{
				Kind:            domain.WriteReplace,
				Pair:            pair,
				PreviousReplyID: existing.ReplyID,
			},
		}
	}

	if c.HasParent {
		return Selection{
			Decision: DecisionInsertWithParent,
			Write:    &domain.PairWrite{Kind: domain.WriteInsertWithParent, Pair: pair},
		}
	}

	pair.ParentBody = ""
	return Selection{
		Decision: DecisionInsertWithoutParent,
		Write:    &domain.PairWrite{Kind: domain.WriteInsertWithoutParent, Pair: pair},
	}
}

// Select runs Screen then Decide.
func (s *Selector) Select(c domain.Candidate, existing domain.ReplyLookup) Selection {
	if d, err := s.Screen(c.Comment); d != "" {
		return Selection{Decision: d, Reason: err}
	}
	return s.Decide(c, existing)
}
