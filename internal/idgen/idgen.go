// Package idgen provides short, URL-safe IDs for tracker records backed by nanoid.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Record prefixes. Chapters are keyed by ordinal and have no generated ID.
const (
	TaskPrefix       = "task-"
	FeedbackPrefix   = "fb-"
	LiteraturePrefix = "lit-"
)

// Alphabet is the character set of the random part of an ID. Lowercase only
// so IDs are easy to type on the command line.
var Alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Length is the number of random characters (excluding the prefix).
var Length = 8

// Generator produces record IDs. Tests substitute a deterministic one.
type Generator interface {
	NewID(prefix string) (string, error)
}

// NanoID is the production Generator.
type NanoID struct{}

// NewID returns prefix followed by Length random characters.
func (NanoID) NewID(prefix string) (string, error) {
	return GenerateWithPrefix(prefix)
}

// GenerateWithPrefix returns a new unique ID with the given prefix.
func GenerateWithPrefix(prefix string) (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}

// Sequence hands out prefix-1, prefix-2, ... per prefix.
type Sequence struct {
	next map[string]int
}

// NewSequence returns a deterministic Generator.
func NewSequence() *Sequence {
	return &Sequence{next: make(map[string]int)}
}

// NewID returns the next ID for prefix.
func (s *Sequence) NewID(prefix string) (string, error) {
	s.next[prefix]++
	return fmt.Sprintf("%s%d", prefix, s.next[prefix]), nil
}
