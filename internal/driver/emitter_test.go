package driver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joshua265/procon2d/internal/sink"
	"github.com/Joshua265/procon2d/pkg/procon2"
)

type sinkEvent struct {
	kind    string // "button" or "axis"
	btn     sink.Button
	pressed bool
	axis    sink.Axis
	value   int32
}

// fakeSink records events; when err is set every call fails with it.
type fakeSink struct {
	events []sinkEvent
	syncs  int
	err    error
}

func (f *fakeSink) SetButton(b sink.Button, pressed bool) error {
	f.events = append(f.events, sinkEvent{kind: "button", btn: b, pressed: pressed})
	return f.err
}

func (f *fakeSink) SetAxis(a sink.Axis, value int32) error {
	f.events = append(f.events, sinkEvent{kind: "axis", axis: a, value: value})
	return f.err
}

func (f *fakeSink) Sync() error  { f.syncs++; return f.err }
func (f *fakeSink) Close() error { return nil }

func TestEmitFromInitialState(t *testing.T) {
	s := &fakeSink{}
	e := NewEmitter(s)

	require.NoError(t, e.Emit(procon2.State{
		Buttons: procon2.ButtonA | procon2.ButtonUp,
		LX:      1000,
	}))

	assert.Equal(t, []sinkEvent{
		{kind: "button", btn: sink.BtnEast, pressed: true},
		{kind: "button", btn: sink.BtnDpadUp, pressed: true},
		{kind: "axis", axis: sink.AxisX, value: 1000},
	}, s.events)
	assert.Equal(t, 1, s.syncs)
}

func TestEmitSameStateTwice(t *testing.T) {
	s := &fakeSink{}
	e := NewEmitter(s)
	st := procon2.State{Buttons: procon2.ButtonZR, LX: -5000, RY: 123}

	require.NoError(t, e.Emit(st))
	s.events = nil

	require.NoError(t, e.Emit(st))
	assert.Empty(t, s.events, "identical snapshot must not re-emit")
	assert.Equal(t, 2, s.syncs, "sink is still synchronized every frame")
}

func TestAxisNoiseThreshold(t *testing.T) {
	s := &fakeSink{}
	e := NewEmitter(s)

	// A delta of exactly 32 is suppressed.
	require.NoError(t, e.Emit(procon2.State{LX: 32}))
	assert.Empty(t, s.events)

	// 33 past the committed value emits (and negative deltas count too).
	require.NoError(t, e.Emit(procon2.State{LX: 65}))
	require.NoError(t, e.Emit(procon2.State{LX: 0}))
	assert.Equal(t, []sinkEvent{
		{kind: "axis", axis: sink.AxisX, value: 65},
		{kind: "axis", axis: sink.AxisX, value: 0},
	}, s.events)
}

func TestEmitReleasesEverythingOnZeroState(t *testing.T) {
	s := &fakeSink{}
	e := NewEmitter(s)

	require.NoError(t, e.Emit(procon2.State{
		Buttons: procon2.ButtonA | procon2.ButtonB | procon2.ButtonHome | procon2.ButtonLeft,
	}))
	s.events = nil

	require.NoError(t, e.Emit(procon2.State{}))

	require.Len(t, s.events, 4)
	for _, ev := range s.events {
		assert.Equal(t, "button", ev.kind, "axes were centered, only releases expected")
		assert.False(t, ev.pressed)
	}
}

func TestEmitButtonsBeforeAxes(t *testing.T) {
	s := &fakeSink{}
	e := NewEmitter(s)

	require.NoError(t, e.Emit(procon2.State{
		Buttons: procon2.ButtonCapture | procon2.ButtonDown,
		LX:      100, LY: -100, RX: 200, RY: -200,
	}))

	var lastButton, firstAxis = -1, len(s.events)
	for i, ev := range s.events {
		if ev.kind == "button" {
			lastButton = i
		} else if i < firstAxis {
			firstAxis = i
		}
	}
	assert.Less(t, lastButton, firstAxis)
	assert.Len(t, s.events, 6)
}

func TestEmitCommitsStateDespiteSinkFailure(t *testing.T) {
	s := &fakeSink{err: errors.New("sink went away")}
	e := NewEmitter(s)
	st := procon2.State{Buttons: procon2.ButtonPlus, RX: 9000}

	err := e.Emit(st)
	require.Error(t, err)

	// The snapshot was committed: the same state produces no retries.
	s.err = nil
	s.events = nil
	require.NoError(t, e.Emit(st))
	assert.Empty(t, s.events)
}
