package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestWindowExpired(t *testing.T) {
	now := time.Now()
	window := time.Hour

	assert.False(t, windowExpired(now, now, window))
	assert.False(t, windowExpired(now.Add(-30*time.Minute), now, window))
	assert.True(t, windowExpired(now.Add(-61*time.Minute), now, window))
	assert.True(t, windowExpired(now.Add(-24*time.Hour), now, window))
}

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, isDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateKey(errors.New(`ERROR: duplicate key value violates unique constraint "idx_rate_limits_identity" (SQLSTATE 23505)`)))
	assert.False(t, isDuplicateKey(errors.New("connection refused")))
	assert.False(t, isDuplicateKey(nil))
}
