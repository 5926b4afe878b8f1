package dump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/INASIC/Chatbot/internal/core/domain"
)

func TestParseLine(t *testing.T) {
	line := `{"parent_id":"t1_a","body":"hello","created_utc":1420070400,"score":5,` +
		`"name":"t1_b","subreddit":"AskReddit","gilded":0}`

	c, err := parseLine([]byte(line))

	require.NoError(t, err)
	assert.Equal(t, domain.Comment{
		ParentID:   "t1_a",
		ReplyID:    "t1_b",
		Body:       "hello",
		Subreddit:  "AskReddit",
		CreatedUTC: 1420070400,
		Score:      5,
	}, c)
}

func TestParseLine_Variants(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		created int64
		score   int64
		replyID string
	}{
		{
			name:    "quoted created_utc",
			line:    `{"parent_id":"t1_a","body":"x","created_utc":"1420070400","score":3,"name":"t1_b","subreddit":"s"}`,
			created: 1420070400, score: 3, replyID: "t1_b",
		},
		{
			name:    "float created_utc",
			line:    `{"parent_id":"t1_a","body":"x","created_utc":1420070400.0,"score":3,"name":"t1_b","subreddit":"s"}`,
			created: 1420070400, score: 3, replyID: "t1_b",
		},
		{
			name:    "name derived from id",
			line:    `{"parent_id":"t1_a","body":"x","created_utc":1,"score":-7,"id":"cnas8zv","subreddit":"s"}`,
			created: 1, score: -7, replyID: "t1_cnas8zv",
		},
		{
			name:    "zero score",
			line:    `{"parent_id":"t1_a","body":"x","created_utc":1,"score":0,"name":"t1_b","subreddit":"s"}`,
			created: 1, score: 0, replyID: "t1_b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := parseLine([]byte(tt.line))
			require.NoError(t, err)
			assert.Equal(t, tt.created, c.CreatedUTC)
			assert.Equal(t, tt.score, c.Score)
			assert.Equal(t, tt.replyID, c.ReplyID)
		})
	}
}

func TestParseLine_Skippable(t *testing.T) {
	tests := []struct {
		name string
		line string
		want error
	}{
		{"not json", `{"parent_id":`, domain.ErrMalformedRecord},
		{"array", `[1,2,3]`, domain.ErrMalformedRecord},
		{"bad score", `{"parent_id":"t1_a","body":"x","created_utc":1,"score":"lots","name":"t1_b","subreddit":"s"}`, domain.ErrMalformedRecord},
		{"NaN score", `{"parent_id":"t1_a","body":"x","created_utc":1,"score":"NaN","name":"t1_b","subreddit":"s"}`, domain.ErrMalformedRecord},
		{"infinite score", `{"parent_id":"t1_a","body":"x","created_utc":1,"score":"-Inf","name":"t1_b","subreddit":"s"}`, domain.ErrMalformedRecord},
		{"created beyond int64", `{"parent_id":"t1_a","body":"x","created_utc":1e19,"score":1,"name":"t1_b","subreddit":"s"}`, domain.ErrMalformedRecord},
		{"score below int64", `{"parent_id":"t1_a","body":"x","created_utc":1,"score":-1e19,"name":"t1_b","subreddit":"s"}`, domain.ErrMalformedRecord},
		{"missing body", `{"parent_id":"t1_a","created_utc":1,"score":1,"name":"t1_b","subreddit":"s"}`, domain.ErrMissingField},
		{"missing score", `{"parent_id":"t1_a","body":"x","created_utc":1,"name":"t1_b","subreddit":"s"}`, domain.ErrMissingField},
		{"missing created", `{"parent_id":"t1_a","body":"x","score":1,"name":"t1_b","subreddit":"s"}`, domain.ErrMissingField},
		{"missing parent", `{"body":"x","created_utc":1,"score":1,"name":"t1_b","subreddit":"s"}`, domain.ErrMissingField},
		{"missing name and id", `{"parent_id":"t1_a","body":"x","created_utc":1,"score":1,"subreddit":"s"}`, domain.ErrMissingField},
		{"missing subreddit", `{"parent_id":"t1_a","body":"x","created_utc":1,"score":1,"name":"t1_b"}`, domain.ErrMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseLine([]byte(tt.line))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, domain.IsSkippable(err))
		})
	}
}
