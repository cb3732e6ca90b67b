package channels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisRepository_RejectsInvalidURL(t *testing.T) {
	_, err := NewRedisRepository("not a url")
	require.Error(t, err)
}

func TestNewRedisRepository_AcceptsStandardURL(t *testing.T) {
	repo, err := NewRedisRepository("redis://localhost:6379/2")
	require.NoError(t, err)
	require.NotNil(t, repo)
	_ = repo.Close()
}

func TestChannelKey(t *testing.T) {
	assert.Equal(t, "channel:abc12345", channelKey("abc12345"))
}
