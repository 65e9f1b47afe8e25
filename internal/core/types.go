package core

import (
	"errors"
	"fmt"
	"sort"

	pcore "penplot/pkg/core"
	"penplot/pkg/geom"
	"penplot/pkg/noise"
)

// ErrUnknownSketch is returned when a name is not in the registry.
var ErrUnknownSketch = errors.New("unknown sketch")

// Env is everything a sketch may draw randomness from. Noise and RNG are
// both derived from Seed, so two runs with equal Env draw equal paths.
type Env struct {
	Seed   pcore.Seed
	Canvas Canvas
	Noise  *noise.Field
	RNG    *pcore.RNG
}

// NewEnv seeds a fresh noise field and RNG.
func NewEnv(seed pcore.Seed, canvas Canvas) Env {
	return Env{
		Seed:   seed,
		Canvas: canvas,
		Noise:  noise.New(seed),
		RNG:    pcore.NewRNG(seed),
	}
}

// Sketch defines the contract a drawing must implement.
type Sketch interface {
	Name() string
	Summary() string
	// Canvas is the page the sketch was designed for. Documents may
	// override any part of it.
	Canvas() Canvas
	// Layers names the pen layers, in plot order.
	Layers() []string
	Parameters() ParameterSnapshot
	Generate(env Env, out *geom.LayerSet) error
}

// Factory constructs a Sketch from string parameters. A nil map yields the
// defaults.
type Factory func(params map[string]string) (Sketch, error)

var sketches = map[string]Factory{}

// Register adds a sketch factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sketches[name] = f
}

// Sketches exposes the registry of available sketch factories.
func Sketches() map[string]Factory {
	return sketches
}

// Names lists registered sketches alphabetically.
func Names() []string {
	names := make([]string, 0, len(sketches))
	for name := range sketches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the named sketch.
func New(name string, params map[string]string) (Sketch, error) {
	f, ok := sketches[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSketch, name)
	}
	s, err := f(params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return s, nil
}
