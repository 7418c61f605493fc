package cmd

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepCmdCancelled(t *testing.T) {
	im := testROM(t)
	cfg := DefaultConfig()
	cfg.Entry = EntryBoot
	s := testSession(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	msg, ok := sweepCmd(ctx, s, im, 0x80000000, false)().(listingMsg)
	require.True(t, ok)
	assert.ErrorIs(t, msg.err, context.Canceled)
	assert.Nil(t, msg.res)

	info, ok := reportCmd(ctx, s, im)().(infoMsg)
	require.True(t, ok)
	assert.ErrorIs(t, info.err, context.Canceled)
}

func TestQuitCancelsSweeps(t *testing.T) {
	im := testROM(t)
	s := testSession(t, DefaultConfig())

	m := newModel(context.Background(), s, im, 0x80000000)
	require.NoError(t, m.ctx.Err())

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	require.NotNil(t, cmd)
	assert.ErrorIs(t, m.ctx.Err(), context.Canceled)

	msg, ok := sweepCmd(m.ctx, s, im, 0x80000000, false)().(listingMsg)
	require.True(t, ok)
	assert.ErrorIs(t, msg.err, context.Canceled)
}
