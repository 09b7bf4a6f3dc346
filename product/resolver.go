package product

import (
	"errors"
	"strings"
	"unicode"
)

var (
	// ErrEmptyProductID is returned when the provided input normalizes to an empty id.
	ErrEmptyProductID = errors.New("product id cannot be an empty string")
	// ErrCandidatesExhausted is returned when every candidate for an input was rejected.
	ErrCandidatesExhausted = errors.New("no product found with these modifications")
)

// Stage represents a transformation applied to a normalized product id to produce a
// candidate id.
type Stage struct {
	// Description describes the transformation.
	Description string
	// Transform derives the candidate from the normalized id.
	Transform func(id string) string
}

// stages is the ordered candidate table. Every transform is applied to the normalized
// input, never to the output of a previous stage.
var stages = []Stage{
	{Description: "as entered", Transform: func(id string) string { return id }},
	{Description: "item suffix", Transform: suffix("_ITEM")},
	{Description: "ultimate enchantment prefix", Transform: prefix("ENCHANTMENT_ULTIMATE_")},
	{Description: "enchantment prefix", Transform: prefix("ENCHANTMENT_")},
	{Description: "scroll suffix", Transform: suffix("_SCROLL")},
	{Description: "gem suffix", Transform: suffix("_GEM")},
	{Description: "ore suffix", Transform: suffix("_ORE")},
	{Description: "dungeon prefix", Transform: prefix("DUNGEON_")},
}

func prefix(p string) func(string) string {
	return func(id string) string { return p + id }
}

func suffix(s string) func(string) string {
	return func(id string) string { return id + s }
}

// Stages returns the number of candidates generated per input.
func Stages() int {
	return len(stages)
}

// Candidate represents a product id to try against the bazaar.
type Candidate struct {
	// ID is the candidate product id.
	ID string
	// Stage is the index of the stage that produced the candidate.
	Stage int
	// Description describes the stage that produced the candidate.
	Description string
}

// Normalize converts raw user input to the bazaar's product id convention.
func Normalize(raw string) string {
	id := strings.TrimRightFunc(raw, unicode.IsSpace)
	id = strings.ToUpper(id)
	id = strings.ReplaceAll(id, " ", "_")
	id = strings.ReplaceAll(id, "-", "_")

	return id
}

// CandidateIterator lazily produces the candidates for a normalized product id.
type CandidateIterator struct {
	id   string
	next int
}

// Iterate returns an iterator over the candidates for the provided raw input.
func Iterate(raw string) (*CandidateIterator, error) {
	id := Normalize(raw)
	if id == "" {
		return nil, ErrEmptyProductID
	}

	return &CandidateIterator{id: id}, nil
}

// Next returns the next candidate. It returns false once every stage has been tried.
func (it *CandidateIterator) Next() (Candidate, bool) {
	if it.Exhausted() {
		return Candidate{}, false
	}

	stage := stages[it.next]
	candidate := Candidate{
		ID:          stage.Transform(it.id),
		Stage:       it.next,
		Description: stage.Description,
	}
	it.next++

	return candidate, true
}

// Exhausted returns whether every candidate has been produced.
func (it *CandidateIterator) Exhausted() bool {
	return it.next >= len(stages)
}

// Normalized returns the normalized id the candidates are derived from.
func (it *CandidateIterator) Normalized() string {
	return it.id
}

// Candidates returns every candidate for the provided raw input, in stage order.
func Candidates(raw string) ([]Candidate, error) {
	it, err := Iterate(raw)
	if err != nil {
		return nil, err
	}

	set := make([]Candidate, 0, len(stages))
	for {
		candidate, ok := it.Next()
		if !ok {
			break
		}
		set = append(set, candidate)
	}

	return set, nil
}
