package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClosed(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	before, after := now.Add(-time.Minute), now.Add(time.Minute)

	assert.False(t, ChallengeModel{}.Closed(now))
	assert.True(t, ChallengeModel{ChallengeDeadline: &before}.Closed(now))
	assert.False(t, ChallengeModel{ChallengeDeadline: &after}.Closed(now))
	assert.False(t, ChallengeModel{ChallengeDeadline: &now}.Closed(now), "deadline instant is still open")
}
