package domain

import (
	"time"

	"github.com/google/uuid"
)

// CollectedKind is the kind of a collected item.
type CollectedKind string

const (
	CollectedKindWord     CollectedKind = "word"
	CollectedKindSentence CollectedKind = "sentence"
)

func (k CollectedKind) String() string { return string(k) }

func (k CollectedKind) IsValid() bool {
	return k == CollectedKindWord || k == CollectedKindSentence
}

// CollectedItem is a word or sentence the learner saved for later review.
type CollectedItem struct {
	ID             uuid.UUID     `json:"id"`
	Kind           CollectedKind `json:"kind"`
	Text           string        `json:"text"`
	TextNormalized string        `json:"-"`
	Translation    string        `json:"translation,omitempty"`
	Note           string        `json:"note,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// CollectionFilter narrows a collection listing.
type CollectionFilter struct {
	Kind   CollectedKind
	Limit  int
	Offset int
}
