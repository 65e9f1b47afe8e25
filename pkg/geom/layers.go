package geom

import (
	"errors"
	"fmt"
	"strconv"

	"penplot/pkg/core"
)

// ErrFinalized is returned when paths are appended to a finalized set.
var ErrFinalized = errors.New("layer set already finalized")

// Layer is an ordered group of paths plotted in one pass. Insertion order
// is plot order.
type Layer struct {
	Name  string
	Paths []Path
}

// LayerSet accumulates paths into a fixed number of layers. Layer 0 is by
// convention the base layer.
type LayerSet struct {
	layers    []Layer
	index     map[string]int
	finalized bool
}

// NewLayerSet returns count layers named "0", "1", ...
func NewLayerSet(count int) (*LayerSet, error) {
	if err := core.AtLeast("layers", count, 1); err != nil {
		return nil, err
	}
	names := make([]string, count)
	for i := range names {
		names[i] = strconv.Itoa(i)
	}
	return NewNamedLayerSet(names...)
}

// NewNamedLayerSet returns one layer per name, in order.
func NewNamedLayerSet(names ...string) (*LayerSet, error) {
	if len(names) == 0 {
		return nil, &core.ParamError{Name: "layers", Value: 0, Reason: "must be >= 1"}
	}
	ls := &LayerSet{
		layers: make([]Layer, len(names)),
		index:  make(map[string]int, len(names)),
	}
	for i, name := range names {
		if _, dup := ls.index[name]; dup {
			return nil, &core.ParamError{Name: "layers", Value: name, Reason: "duplicate layer name"}
		}
		ls.layers[i].Name = name
		ls.index[name] = i
	}
	return ls, nil
}

// Len returns the number of layers.
func (ls *LayerSet) Len() int { return len(ls.layers) }

// Index returns the position of the named layer.
func (ls *LayerSet) Index(name string) (int, bool) {
	i, ok := ls.index[name]
	return i, ok
}

// Append adds path to the layer at index i.
func (ls *LayerSet) Append(i int, path Path) error {
	if ls.finalized {
		return ErrFinalized
	}
	if i < 0 || i >= len(ls.layers) {
		return &core.ParamError{Name: "layer", Value: i, Reason: fmt.Sprintf("out of range [0,%d)", len(ls.layers))}
	}
	ls.layers[i].Paths = append(ls.layers[i].Paths, path)
	return nil
}

// AppendTo adds path to the named layer.
func (ls *LayerSet) AppendTo(name string, path Path) error {
	i, ok := ls.index[name]
	if !ok {
		return &core.ParamError{Name: "layer", Value: name, Reason: "no such layer"}
	}
	return ls.Append(i, path)
}

// AppendPolylines adds each polyline to layer i as its own path.
func (ls *LayerSet) AppendPolylines(i int, lines []Polyline) error {
	for _, pl := range lines {
		if err := ls.Append(i, pl.Path()); err != nil {
			return err
		}
	}
	return nil
}

// Counts returns the number of paths per layer.
func (ls *LayerSet) Counts() []int {
	out := make([]int, len(ls.layers))
	for i, l := range ls.layers {
		out[i] = len(l.Paths)
	}
	return out
}

// RegistrationMark is the zero-length path appended to every layer so that
// separately exported layers can be lined up again.
func RegistrationMark(at Point) Path {
	return Path{MoveTo(at), LineTo(at)}
}

// Finalize closes the set and returns its layers in order, each ending with
// a registration mark at mark. Calling it again returns the same layers.
func (ls *LayerSet) Finalize(mark Point) []Layer {
	if !ls.finalized {
		for i := range ls.layers {
			ls.layers[i].Paths = append(ls.layers[i].Paths, RegistrationMark(mark))
		}
		ls.finalized = true
	}
	out := make([]Layer, len(ls.layers))
	for i, l := range ls.layers {
		out[i] = Layer{Name: l.Name, Paths: append([]Path(nil), l.Paths...)}
	}
	return out
}
