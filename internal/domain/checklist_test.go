package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerificationChecklist(t *testing.T) {
	c := NewVerificationChecklist()

	assert.False(t, c.AllVerified())
	assert.Len(t, c.Unverified(), 4)

	c.SetVerified(SectionPersonal, true)
	c.SetVerified(SectionBusiness, true)
	c.SetVerified(SectionDocuments, true)
	assert.False(t, c.AllVerified())
	assert.Equal(t, []ChecklistSection{SectionBanking}, c.Unverified())

	c.SetVerified(SectionBanking, true)
	assert.True(t, c.AllVerified())
	assert.Empty(t, c.Unverified())
}

func TestVerificationChecklist_JoinedComments(t *testing.T) {
	c := NewVerificationChecklist()
	assert.Equal(t, "", c.JoinedComments())

	c.SetComment(SectionDocuments, "GST certificate expired")
	c.SetComment(SectionPersonal, "address proof missing")

	// Joined in fixed section order, not insertion order.
	assert.Equal(t, "address proof missing\nGST certificate expired", c.JoinedComments())
}

func TestChecklistFromItems_IgnoresUnknownSections(t *testing.T) {
	c := ChecklistFromItems(map[ChecklistSection]ChecklistItem{
		SectionPersonal: {Verified: true},
		"legal":         {Verified: true},
	})

	assert.True(t, c.Item(SectionPersonal).Verified)
	assert.False(t, c.AllVerified())
	assert.Len(t, c.Unverified(), 3)
}
