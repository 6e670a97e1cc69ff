package handlers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"receiptsplit-backend/models"
)

// Deleting a member must invalidate the cached totals of every split they
// were on; this covers the split-ID collection that drives those calls.
func TestSplitIDsFromMemberships(t *testing.T) {
	splitA := uuid.New()
	splitB := uuid.New()
	member := uuid.New()

	ids := splitIDsFromMemberships([]models.SplitMember{
		{SplitID: splitA, MemberID: member},
		{SplitID: splitB, MemberID: member},
		{SplitID: splitA, MemberID: member},
	})

	assert.Equal(t, []uuid.UUID{splitA, splitB}, ids)
}

func TestSplitIDsFromMembershipsEmpty(t *testing.T) {
	assert.Empty(t, splitIDsFromMemberships(nil))
}
