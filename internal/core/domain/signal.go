package domain

import (
	"fmt"
	"strings"
	"time"
)

// Signal is a curated record capturing a noteworthy observation.
type Signal struct {
	// ID is the store-assigned identifier.
	ID int64 `json:"id"`

	// Title is a short headline for the observation.
	Title string `json:"title"`

	// SourceContext describes where the signal was observed,
	// typically a URL or a free-text description.
	SourceContext string `json:"sourceContext"`

	// WhyItMatters is the curator's rationale.
	WhyItMatters string `json:"whyItMatters"`

	// DateCreated is stamped at creation and never changes.
	DateCreated time.Time `json:"dateCreated"`

	// FollowUpNeeded marks the signal for later review.
	FollowUpNeeded bool `json:"followUpNeeded"`

	// Notes holds free-form review notes.
	Notes string `json:"notes"`

	// CategoryTags classifies the signal. Order is irrelevant;
	// every signal carries at least one tag at creation.
	CategoryTags []string `json:"categoryTags"`
}

// SignalDraft is the mutable field set of a Signal. It is the input to
// both creation and full-replacement update.
type SignalDraft struct {
	Title          string   `json:"title"`
	SourceContext  string   `json:"sourceContext"`
	WhyItMatters   string   `json:"whyItMatters"`
	CategoryTags   []string `json:"categoryTags"`
	FollowUpNeeded bool     `json:"followUpNeeded"`
	Notes          string   `json:"notes"`
}

// Validate checks the draft against the creation invariants: non-empty
// title, non-empty rationale and at least one tag. It runs before any
// store write.
func (d SignalDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(d.WhyItMatters) == "" {
		return fmt.Errorf("%w: rationale is required", ErrValidation)
	}
	if len(d.CategoryTags) == 0 {
		return fmt.Errorf("%w: at least one category tag is required", ErrValidation)
	}
	for _, tag := range d.CategoryTags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("%w: empty category tag", ErrValidation)
		}
	}
	return nil
}

// HasTag reports whether the signal carries the exact tag.
func (s *Signal) HasTag(tag string) bool {
	for _, t := range s.CategoryTags {
		if t == tag {
			return true
		}
	}
	return false
}
