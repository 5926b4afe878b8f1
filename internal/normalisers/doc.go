// Package normalisers holds the text cleaners applied to comment bodies
// before they are stored. Package body provides the newline and quote
// normaliser together with the acceptability filter used by ingest.
package normalisers
