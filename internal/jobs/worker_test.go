package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryDelayBacksOffAndCaps(t *testing.T) {
	assert.Equal(t, 2*time.Second, retryDelay(1))
	assert.Equal(t, 4*time.Second, retryDelay(2))
	assert.Equal(t, 8*time.Second, retryDelay(3))

	// capped at ten minutes
	assert.Equal(t, 600*time.Second, retryDelay(10))
	assert.Equal(t, 600*time.Second, retryDelay(30))
}
