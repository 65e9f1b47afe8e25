package core

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	pcore "penplot/pkg/core"
)

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
	// ParamTypeBool denotes boolean parameters.
	ParamTypeBool ParamType = "bool"
	// ParamTypeString denotes free-form or enumerated parameters.
	ParamTypeString ParamType = "string"
)

// Parameter describes a single tunable value exposed by a sketch.
type Parameter struct {
	Key         string
	Label       string
	Type        ParamType
	Value       string
	Description string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name    string
	Params  []Parameter
	Summary string
}

// ParameterSnapshot captures the current set of tunables exposed by a sketch.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// Lookup finds a parameter by key.
func (s ParameterSnapshot) Lookup(key string) (Parameter, bool) {
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p, true
			}
		}
	}
	return Parameter{}, false
}

// Map flattens the snapshot into key=value form. Feeding it back to the
// sketch's factory reproduces the same configuration.
func (s ParameterSnapshot) Map() map[string]string {
	out := map[string]string{}
	for _, g := range s.Groups {
		for _, p := range g.Params {
			out[p.Key] = p.Value
		}
	}
	return out
}

// ParameterControl describes an adjustable parameter that should be exposed on
// the HUD. Steps and bounds are optional and interpreted based on the
// parameter type.
type ParameterControl struct {
	Key   string
	Label string
	Type  ParamType

	Step float64

	Min    float64
	Max    float64
	HasMin bool
	HasMax bool
}

// ParameterControlsProvider exposes the list of HUD-adjustable controls.
type ParameterControlsProvider interface {
	ParameterControls() []ParameterControl
}

// IntParam builds an integer Parameter.
func IntParam(key, label string, value int) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeInt, Value: strconv.Itoa(value)}
}

// FloatParam builds a float Parameter using the shortest exact formatting.
func FloatParam(key, label string, value float64) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeFloat, Value: strconv.FormatFloat(value, 'f', -1, 64)}
}

// BoolParam builds a boolean Parameter.
func BoolParam(key, label string, value bool) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeBool, Value: strconv.FormatBool(value)}
}

// StringParam builds a string Parameter.
func StringParam(key, label, value string) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeString, Value: value}
}

// Values reads typed parameters out of a key=value map. The first parse
// failure is kept and reported by Err, together with any key that no
// reader asked for.
type Values struct {
	m    map[string]string
	used map[string]bool
	err  error
}

// NewValues wraps m. A nil map is valid and yields no values.
func NewValues(m map[string]string) *Values {
	return &Values{m: m, used: make(map[string]bool, len(m))}
}

func (v *Values) lookup(key string) (string, bool) {
	raw, ok := v.m[key]
	if !ok {
		return "", false
	}
	v.used[key] = true
	return strings.TrimSpace(raw), v.err == nil
}

func (v *Values) fail(key, raw, reason string) {
	v.err = &pcore.ParamError{Name: key, Value: raw, Reason: reason}
}

// Int stores the value of key into dst if present.
func (v *Values) Int(key string, dst *int) {
	raw, ok := v.lookup(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		v.fail(key, raw, "not an integer")
		return
	}
	*dst = n
}

// Float stores the value of key into dst if present. Non-finite values
// are rejected.
func (v *Values) Float(key string, dst *float64) {
	raw, ok := v.lookup(key)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		v.fail(key, raw, "not a number")
		return
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		v.fail(key, raw, "must be finite")
		return
	}
	*dst = f
}

// Bool stores the value of key into dst if present.
func (v *Values) Bool(key string, dst *bool) {
	raw, ok := v.lookup(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		v.fail(key, raw, "not a boolean")
		return
	}
	*dst = b
}

// String stores the value of key into dst if present.
func (v *Values) String(key string, dst *string) {
	if raw, ok := v.lookup(key); ok {
		*dst = raw
	}
}

// Err returns the first parse error, or an error naming the first unknown
// key in sorted order.
func (v *Values) Err() error {
	if v.err != nil {
		return v.err
	}
	var unknown []string
	for key := range v.m {
		if !v.used[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return &pcore.ParamError{
		Name:   unknown[0],
		Value:  v.m[unknown[0]],
		Reason: fmt.Sprintf("unknown parameter (%d unknown)", len(unknown)),
	}
}
