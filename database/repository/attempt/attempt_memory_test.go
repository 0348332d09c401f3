package attemptRepo

import (
	"context"
	"testing"
	"time"

	"passauth/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAttemptRepo_AppendAssignsID(t *testing.T) {
	repo := NewMemoryAttemptRepo()

	require.NoError(t, repo.Append(context.Background(), &models.ValidationAttempt{
		Email:     "a@b.com",
		Success:   false,
		Reason:    "User not found",
		Timestamp: time.Now(),
	}))

	all := repo.All()
	require.Len(t, all, 1)
	assert.NotEmpty(t, all[0].ID)
}

func TestMemoryAttemptRepo_CountRecentFailures(t *testing.T) {
	repo := NewMemoryAttemptRepo()
	ctx := context.Background()
	now := time.Now()

	entries := []models.ValidationAttempt{
		{Email: "a@b.com", Success: false, Timestamp: now.Add(-1 * time.Minute)},
		{Email: "a@b.com", Success: false, Timestamp: now.Add(-10 * time.Minute)},
		{Email: "a@b.com", Success: false, Timestamp: now.Add(-20 * time.Minute)}, // outside window
		{Email: "a@b.com", Success: true, Timestamp: now},                         // success ignored
		{Email: "other@b.com", Success: false, Timestamp: now},                    // other email
	}
	for i := range entries {
		require.NoError(t, repo.Append(ctx, &entries[i]))
	}

	count, err := repo.CountRecentFailures(ctx, "a@b.com", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
