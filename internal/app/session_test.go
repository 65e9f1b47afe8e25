package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"penplot/internal/core"
	_ "penplot/internal/sketches/eclipse"
	pcore "penplot/pkg/core"
)

func newSession(t *testing.T, doc core.Document) *Session {
	t.Helper()
	s, err := NewSession(context.Background(), doc, core.NewPlayback(0, 60, 1), nil, nil)
	require.NoError(t, err)
	return s
}

func TestSessionPinsSeed(t *testing.T) {
	s := newSession(t, core.Document{Sketch: "eclipse", Params: map[string]string{"points": "10"}})
	seed := s.Document().Seed
	require.NotEmpty(t, seed)
	assert.Equal(t, []int{11, 11, 11}, s.Result().Counts())

	first := s.Result().Paths()
	require.NoError(t, s.Regenerate(context.Background()))
	assert.Equal(t, seed, s.Document().Seed)
	assert.Equal(t, first, s.Result().Paths())

	s.Playback.Finish()
	assert.Equal(t, 33, s.Playback.Shown())
	assert.Len(t, s.Toggles.Hidden(), 3)
}

func TestSessionReseed(t *testing.T) {
	s := newSession(t, core.Document{Sketch: "eclipse", Seed: "1", Params: map[string]string{"points": "10"}})
	s.Playback.Finish()
	require.NoError(t, s.Reseed(context.Background()))
	assert.NotEqual(t, "1", s.Document().Seed)
	assert.Zero(t, s.Playback.Shown())
}

func TestSessionSetParam(t *testing.T) {
	params := map[string]string{"points": "10"}
	s := newSession(t, core.Document{Sketch: "eclipse", Seed: "1", Params: params})

	require.NoError(t, s.SetParam(context.Background(), "points", "12"))
	assert.Equal(t, []int{13, 13, 13}, s.Result().Counts())
	assert.Equal(t, "10", params["points"], "caller's map is not modified")

	err := s.SetParam(context.Background(), "points", "nope")
	assert.ErrorIs(t, err, pcore.ErrInvalidParameter)
	assert.Equal(t, "12", s.Document().Params["points"])
	assert.Equal(t, []int{13, 13, 13}, s.Result().Counts())

	sk, err := s.Sketch()
	require.NoError(t, err)
	assert.Equal(t, "eclipse", sk.Name())
}

func TestSessionQueue(t *testing.T) {
	s := newSession(t, core.Document{Sketch: "eclipse", Seed: "1", Params: map[string]string{"points": "10"}})

	changed, err := s.ApplyPending(context.Background())
	require.NoError(t, err)
	assert.False(t, changed)

	s.Queue(core.Document{Sketch: "eclipse", Seed: "2", Params: map[string]string{"points": "5"}})
	s.Queue(core.Document{Sketch: "eclipse", Seed: "3", Params: map[string]string{"points": "4"}})
	changed, err = s.ApplyPending(context.Background())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "3", s.Document().Seed)
	assert.Equal(t, []int{5, 5, 5}, s.Result().Counts())

	s.Queue(core.Document{Sketch: "nope"})
	_, err = s.ApplyPending(context.Background())
	assert.ErrorIs(t, err, core.ErrUnknownSketch)
	assert.Equal(t, "3", s.Document().Seed)
}

func TestNewSessionError(t *testing.T) {
	_, err := NewSession(context.Background(), core.Document{Sketch: "nope"}, nil, nil, nil)
	assert.ErrorIs(t, err, core.ErrUnknownSketch)
}
