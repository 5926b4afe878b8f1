package driven

// Normaliser cleans a raw comment body for storage and line-oriented export.
// Implementations must be pure and idempotent.
type Normaliser interface {
	Normalise(body string) string
}

// BodyFilter decides whether a normalised body is usable training data.
type BodyFilter interface {
	// Check returns nil for an acceptable body, or an error naming the reason.
	Check(body string) error
}
