package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/castle-showcase/internal/config"
	"github.com/Faultbox/castle-showcase/internal/engine/audio"
	"github.com/Faultbox/castle-showcase/internal/showcase"
	"github.com/Faultbox/castle-showcase/internal/storage"
)

// bootSequence boots real Apps until fail is set.
type bootSequence struct {
	fail  bool
	boots int
}

func (b *bootSequence) boot() (*showcase.App, error) {
	b.boots++
	if b.fail {
		return nil, errors.New("no audio device")
	}
	store, err := storage.Open(":memory:")
	if err != nil {
		return nil, err
	}
	return showcase.New(config.Default(), showcase.Deps{Audio: audio.NewNull(), Flags: store})
}

func TestSessionReload(t *testing.T) {
	seq := &bootSequence{}
	s, err := newSession(seq.boot)
	require.NoError(t, err)
	first := s.app

	require.NoError(t, s.reload())
	assert.NotSame(t, first, s.app)
	assert.Equal(t, 2, seq.boots)
	require.NoError(t, s.close())
}

func TestSessionFailedReloadLeavesNoApp(t *testing.T) {
	seq := &bootSequence{}
	s, err := newSession(seq.boot)
	require.NoError(t, err)

	seq.fail = true
	err = s.reload()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reload: no audio device")
	assert.Nil(t, s.app)

	// The deferred close in the window loop runs after a failed reload.
	assert.NotPanics(t, func() {
		assert.NoError(t, s.close())
		assert.NoError(t, s.close())
	})
}

func TestNewSessionBootFailure(t *testing.T) {
	seq := &bootSequence{fail: true}
	s, err := newSession(seq.boot)
	require.Error(t, err)
	assert.Nil(t, s)
}
