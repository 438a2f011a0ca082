// Package driver holds the controller session loop and the diffing layer
// that turns absolute state snapshots into discrete sink events.
package driver

import (
	"github.com/Joshua265/procon2d/internal/sink"
	"github.com/Joshua265/procon2d/pkg/procon2"
)

// axisThreshold suppresses sensor noise: axis deltas of this size or
// smaller are not re-emitted.
const axisThreshold = 32

// buttonMap pairs every canonical button bit with the sink capability it
// drives. It is iterated in order for every frame, buttons first, then
// the d-pad directions.
var buttonMap = []struct {
	mask uint32
	btn  sink.Button
}{
	{procon2.ButtonB, sink.BtnSouth},
	{procon2.ButtonA, sink.BtnEast},
	{procon2.ButtonY, sink.BtnWest},
	{procon2.ButtonX, sink.BtnNorth},
	{procon2.ButtonL, sink.BtnTL},
	{procon2.ButtonR, sink.BtnTR},
	{procon2.ButtonZL, sink.BtnTL2},
	{procon2.ButtonZR, sink.BtnTR2},
	{procon2.ButtonMinus, sink.BtnSelect},
	{procon2.ButtonPlus, sink.BtnStart},
	{procon2.ButtonHome, sink.BtnMode},
	{procon2.ButtonLStick, sink.BtnThumbL},
	{procon2.ButtonRStick, sink.BtnThumbR},
	{procon2.ButtonCapture, sink.BtnC},

	{procon2.ButtonLeft, sink.BtnDpadLeft},
	{procon2.ButtonRight, sink.BtnDpadRight},
	{procon2.ButtonUp, sink.BtnDpadUp},
	{procon2.ButtonDown, sink.BtnDpadDown},
}

// Emitter compares each snapshot against the previously committed one and
// forwards only the changed capabilities to the sink. A fresh Emitter
// starts from the all-released, centered state.
type Emitter struct {
	sink sink.Sink
	prev procon2.State
}

func NewEmitter(s sink.Sink) *Emitter {
	return &Emitter{sink: s}
}

// Emit sends press/release events for changed buttons, axis events for
// deflections that moved more than the noise threshold, then one Sync.
// The new snapshot is committed even when a sink call fails so a stale
// sink does not cause the same events to be retried every frame; the
// first sink error is returned.
func (e *Emitter) Emit(st procon2.State) error {
	var firstErr error
	fail := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	changed := e.prev.Buttons ^ st.Buttons
	for _, m := range buttonMap {
		if changed&m.mask != 0 {
			fail(e.sink.SetButton(m.btn, st.Buttons&m.mask != 0))
		}
	}

	axes := [...]struct {
		axis       sink.Axis
		prev, next int16
	}{
		{sink.AxisX, e.prev.LX, st.LX},
		{sink.AxisY, e.prev.LY, st.LY},
		{sink.AxisRX, e.prev.RX, st.RX},
		{sink.AxisRY, e.prev.RY, st.RY},
	}
	for _, a := range axes {
		if delta := int(a.next) - int(a.prev); delta > axisThreshold || delta < -axisThreshold {
			fail(e.sink.SetAxis(a.axis, int32(a.next)))
		}
	}

	fail(e.sink.Sync())
	e.prev = st
	return firstErr
}
