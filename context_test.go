package custody

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContextHeight(t *testing.T) {
	bg := context.Background()

	_, ok := GetHeight(bg)
	assert.False(t, ok)

	ctx := WithHeight(bg, 15)
	h, ok := GetHeight(ctx)
	require.True(t, ok)
	assert.EqualValues(t, 15, h)

	// the height cannot be overwritten
	assert.Panics(t, func() { WithHeight(ctx, 16) })
	assert.Panics(t, func() { WithHeight(bg, -1) })
}

func TestContextLogger(t *testing.T) {
	bg := context.Background()
	assert.Equal(t, DefaultLogger, GetLogger(bg))

	var buf bytes.Buffer
	logger := log.NewTMLogger(log.NewSyncWriter(&buf))
	ctx := WithLogInfo(WithLogger(bg, logger), "module", "test")
	GetLogger(ctx).Info("spend", "amount", "1 ETH")

	out := buf.String()
	assert.True(t, strings.Contains(out, "module=test"), out)
	assert.True(t, strings.Contains(out, "spend"), out)
}
