package idgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWithPrefix(t *testing.T) {
	for _, prefix := range []string{TaskPrefix, FeedbackPrefix, LiteraturePrefix} {
		id, err := GenerateWithPrefix(prefix)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(id, prefix))
		assert.Len(t, id, len(prefix)+Length)
		for _, r := range strings.TrimPrefix(id, prefix) {
			assert.Contains(t, Alphabet, string(r))
		}
	}
}

func TestNanoID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	var gen Generator = NanoID{}
	for i := 0; i < 1000; i++ {
		id, err := gen.NewID(TaskPrefix)
		require.NoError(t, err)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestSequence(t *testing.T) {
	seq := NewSequence()

	a, _ := seq.NewID(TaskPrefix)
	b, _ := seq.NewID(TaskPrefix)
	c, _ := seq.NewID(FeedbackPrefix)

	assert.Equal(t, "task-1", a)
	assert.Equal(t, "task-2", b)
	assert.Equal(t, "fb-1", c)
}
