package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	log := NewLog()
	log.Msg("test message %d", 1)
	log.Dbg("not collected")

	require.Len(t, log.Entries, 1)
	assert.Equal(t, "test message 1", log.Entries[0].Msg)
	assert.False(t, log.Entries[0].IsError)
	assert.False(t, log.HasErrors())

	log.Err("broken %s", "thing")
	require.Len(t, log.Entries, 2)
	assert.True(t, log.Entries[1].IsError)
	assert.True(t, log.HasErrors())
}

func TestDebugLogDoesNotCollect(t *testing.T) {
	log := NewDebugLog(true)
	log.Dbg("debug %d", 2)
	assert.Empty(t, log.Entries)
}
