// Package body normalises and filters comment bodies.
//
// Bodies are stored one per row and exported one per line, so every line
// break is replaced by a sentinel word before anything else happens.
package body

import (
	"strings"

	"github.com/INASIC/Chatbot/internal/core/ports/driven"
)

// NewlineToken replaces each line break in a normalised body.
const NewlineToken = "newlinechar"

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Order matters: "\r\n" must be replaced before its halves.
var replacer = strings.NewReplacer(
	"\r\n", " "+NewlineToken+" ",
	"\n", " "+NewlineToken+" ",
	"\r", " "+NewlineToken+" ",
)

// Normaliser cleans comment bodies.
type Normaliser struct{}

// New creates a new body normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise replaces line breaks with NewlineToken and collapses each
// doubled double quote into a single quote. The result never contains a
// line break and normalising it again returns it unchanged.
func (n *Normaliser) Normalise(body string) string {
	return Normalise(body)
}

// Normalise is the package-level form of Normaliser.Normalise.
func Normalise(body string) string {
	out := replacer.Replace(body)
	return strings.ReplaceAll(out, `""`, "'")
}
