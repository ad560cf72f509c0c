package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := Open(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	defer c.Close()

	assert.NoError(t, c.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestOpenRejectsEmptyAddr(t *testing.T) {
	_, err := Open(context.Background(), "", "", 0)
	assert.Error(t, err)
}

func TestOpenUnreachable(t *testing.T) {
	_, err := Open(context.Background(), "127.0.0.1:1", "", 0)
	assert.Error(t, err)
}
