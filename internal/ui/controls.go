package ui

import (
	"image"
	"math"
	"strconv"

	"penplot/internal/core"
)

// controlState tracks one +/- control and the value it last read from the
// sketch's parameter snapshot.
type controlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

func newControlStates(controls []core.ParameterControl) []controlState {
	out := make([]controlState, len(controls))
	for i, ctrl := range controls {
		out[i] = controlState{control: ctrl, value: "--"}
	}
	return out
}

func refreshControls(states []controlState, snapshot core.ParameterSnapshot) {
	for i := range states {
		state := &states[i]
		param, ok := snapshot.Lookup(state.control.Key)
		if !ok {
			state.clear()
			continue
		}
		switch state.control.Type {
		case core.ParamTypeInt:
			parsed, err := strconv.Atoi(param.Value)
			if err != nil {
				state.clear()
				continue
			}
			state.intValue = parsed
			state.floatValue = float64(parsed)
			state.value = strconv.Itoa(parsed)
			state.hasValue = true
		case core.ParamTypeFloat:
			parsed, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				state.clear()
				continue
			}
			state.floatValue = parsed
			state.value = formatFloat(state.control, parsed)
			state.hasValue = true
		default:
			state.clear()
		}
	}
}

func (s *controlState) clear() {
	s.hasValue = false
	s.value = "--"
}

// step returns the parameter value one step in direction, clamped to the
// control's bounds. ok is false when the value would not change.
func (s *controlState) step(direction int) (value string, ok bool) {
	if !s.hasValue || direction == 0 {
		return "", false
	}
	switch s.control.Type {
	case core.ParamTypeInt:
		step := int(math.Round(s.control.Step))
		if step <= 0 {
			step = 1
		}
		target := s.intValue + direction*step
		if s.control.HasMin {
			target = max(target, int(math.Round(s.control.Min)))
		}
		if s.control.HasMax {
			target = min(target, int(math.Round(s.control.Max)))
		}
		if target == s.intValue {
			return "", false
		}
		return strconv.Itoa(target), true
	case core.ParamTypeFloat:
		step := s.control.Step
		if step <= 0 {
			step = 0.05
		}
		target := s.floatValue + float64(direction)*step
		if s.control.HasMin && target < s.control.Min {
			target = s.control.Min
		}
		if s.control.HasMax && target > s.control.Max {
			target = s.control.Max
		}
		if math.Abs(target-s.floatValue) < 1e-9 {
			return "", false
		}
		return strconv.FormatFloat(target, 'f', -1, 64), true
	}
	return "", false
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

// LayerToggles remembers which pen layers are hidden in the viewer.
type LayerToggles struct {
	hidden []bool
}

// Reset shows all n layers. Hidden flags survive when n is unchanged.
func (t *LayerToggles) Reset(n int) {
	if len(t.hidden) != n {
		t.hidden = make([]bool, n)
	}
}

// Toggle flips layer i. Out of range indexes are ignored.
func (t *LayerToggles) Toggle(i int) {
	if i >= 0 && i < len(t.hidden) {
		t.hidden[i] = !t.hidden[i]
	}
}

// Hidden returns the per-layer hidden flags.
func (t *LayerToggles) Hidden() []bool { return t.hidden }
