package driver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joshua265/procon2d/internal/sink"
	"github.com/Joshua265/procon2d/pkg/procon2"
)

type readStep struct {
	data []byte
	err  error
}

// scriptReader replays a fixed list of read results.
type scriptReader struct {
	steps []readStep
	pos   int
}

func (r *scriptReader) ReadWithTimeout(p []byte, _ time.Duration) (int, error) {
	if r.pos >= len(r.steps) {
		return 0, errors.New("script exhausted")
	}
	step := r.steps[r.pos]
	r.pos++
	if step.err != nil {
		return 0, step.err
	}
	return copy(p, step.data), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func simpleFrame(buttons uint16) []byte {
	frame := make([]byte, 12)
	frame[0] = procon2.ReportIDSimple
	frame[1] = byte(buttons)
	frame[2] = byte(buttons >> 8)
	return frame
}

func TestSessionStreamsUntilReadError(t *testing.T) {
	readErr := errors.New("device unplugged")
	reader := &scriptReader{steps: []readStep{
		{data: simpleFrame(0x0001)}, // A pressed
		{data: nil},                 // timeout, no data
		{data: []byte{0xAA, 0x00, 0x00, 0x00}}, // unrecognized, dropped
		{data: simpleFrame(0x0000)}, // A released
		{err: readErr},
	}}

	s := &fakeSink{}
	sess := NewSession(reader, NewEmitter(s), 20*time.Millisecond, discardLogger())

	err := sess.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrChannelRead)

	assert.Equal(t, []sinkEvent{
		{kind: "button", btn: sink.BtnEast, pressed: true},
		{kind: "button", btn: sink.BtnEast, pressed: false},
	}, s.events)
	assert.Equal(t, 2, s.syncs, "only decoded frames reach the emitter")
}

func TestSessionDropsShortFrames(t *testing.T) {
	reader := &scriptReader{steps: []readStep{
		{data: make([]byte, 12)}, // 0x00 identifier, dropped
		{data: append([]byte{procon2.ReportIDFull}, make([]byte, 11)...)}, // one byte short
		{err: errors.New("done")},
	}}

	s := &fakeSink{}
	sess := NewSession(reader, NewEmitter(s), time.Millisecond, discardLogger())

	err := sess.Run(context.Background())
	assert.ErrorIs(t, err, ErrChannelRead)
	assert.Empty(t, s.events)
	assert.Zero(t, s.syncs)
}

func TestSessionContinuesAfterEmitError(t *testing.T) {
	reader := &scriptReader{steps: []readStep{
		{data: simpleFrame(0x0002)}, // B pressed, sink fails
		{data: simpleFrame(0x0000)},
		{err: errors.New("done")},
	}}

	s := &fakeSink{err: errors.New("sink rejected event")}
	sess := NewSession(reader, NewEmitter(s), time.Millisecond, discardLogger())

	err := sess.Run(context.Background())
	assert.ErrorIs(t, err, ErrChannelRead)
	// Both frames were processed despite the first emit failing.
	assert.Equal(t, 2, s.syncs)
}

func TestSessionStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sess := NewSession(&scriptReader{}, NewEmitter(&fakeSink{}), time.Millisecond, discardLogger())
	err := sess.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
