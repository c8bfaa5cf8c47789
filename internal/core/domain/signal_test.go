package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() SignalDraft {
	return SignalDraft{
		Title:         "Rise of local-first software",
		SourceContext: "https://example.com/article",
		WhyItMatters:  "Signals a shift away from cloud-only architectures",
		CategoryTags:  []string{"tech"},
	}
}

func TestSignalDraft_Validate_Valid(t *testing.T) {
	require.NoError(t, validDraft().Validate())
}

func TestSignalDraft_Validate_MissingTitle(t *testing.T) {
	d := validDraft()
	d.Title = "   "
	err := d.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "title")
}

func TestSignalDraft_Validate_MissingRationale(t *testing.T) {
	d := validDraft()
	d.WhyItMatters = ""
	err := d.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "rationale")
}

func TestSignalDraft_Validate_NoTags(t *testing.T) {
	d := validDraft()
	d.CategoryTags = nil
	err := d.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSignalDraft_Validate_EmptyTag(t *testing.T) {
	d := validDraft()
	d.CategoryTags = []string{"tech", " "}
	assert.ErrorIs(t, d.Validate(), ErrValidation)
}

func TestSignal_HasTag(t *testing.T) {
	s := Signal{CategoryTags: []string{"policy", "tech"}}
	assert.True(t, s.HasTag("tech"))
	assert.False(t, s.HasTag("Tech"), "tag match is exact")
	assert.False(t, s.HasTag("consumer trend"))
}
