// Package lsystem draws a four-symbol rewriting system: a walks, b drops a
// circle and turns with the noise, c draws a crossbar with circles at both
// ends and d draws a noise-sized double diamond.
package lsystem

import (
	"math"

	"penplot/internal/core"
	"penplot/pkg/geom"
	"penplot/pkg/grammar"
)

const (
	layerLines    = "lines"
	layerCircles  = "circles"
	layerDiamonds = "diamonds"
)

// Config holds the grammar and the drawing constants of each symbol.
type Config struct {
	Axiom       string `key:"axiom" validate:"required"`
	Generations int    `key:"generations" validate:"gte=0,lte=32"`
	RuleA       string `key:"rule_a"`
	RuleB       string `key:"rule_b"`
	RuleC       string `key:"rule_c"`
	RuleD       string `key:"rule_d"`
	Limit       int    `key:"limit" validate:"gte=1"`

	StepLength float64 `key:"step_length" validate:"gte=0"`

	CircleRadius float64 `key:"circle_radius" validate:"gte=0"`
	CircleAge    float64 `key:"circle_age_freq"`
	TurnFreq     float64 `key:"turn_freq"`
	TurnRange    float64 `key:"turn_range"`
	TurnTension  float64 `key:"turn_tension"`

	BarGrowth float64 `key:"bar_growth"`

	DiamondSize float64 `key:"diamond_size"`
	DiamondGap  float64 `key:"diamond_gap"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Axiom:        "adcbabdbac",
		Generations:  3,
		RuleA:        "ab",
		RuleB:        "ca",
		RuleC:        "cb",
		RuleD:        "dbad",
		Limit:        grammar.DefaultLimit,
		StepLength:   0.25,
		CircleRadius: 0.3,
		CircleAge:    0.1,
		TurnFreq:     0.001,
		TurnRange:    math.Pi / 2,
		TurnTension:  15,
		BarGrowth:    0.03,
		DiamondSize:  0.5,
		DiamondGap:   0.07,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(m map[string]string) (Config, error) {
	c := DefaultConfig()
	v := core.NewValues(m)
	v.String("axiom", &c.Axiom)
	v.Int("generations", &c.Generations)
	v.String("rule_a", &c.RuleA)
	v.String("rule_b", &c.RuleB)
	v.String("rule_c", &c.RuleC)
	v.String("rule_d", &c.RuleD)
	v.Int("limit", &c.Limit)
	v.Float("step_length", &c.StepLength)
	v.Float("circle_radius", &c.CircleRadius)
	v.Float("circle_age_freq", &c.CircleAge)
	v.Float("turn_freq", &c.TurnFreq)
	v.Float("turn_range", &c.TurnRange)
	v.Float("turn_tension", &c.TurnTension)
	v.Float("bar_growth", &c.BarGrowth)
	v.Float("diamond_size", &c.DiamondSize)
	v.Float("diamond_gap", &c.DiamondGap)
	if err := v.Err(); err != nil {
		return c, err
	}
	return c, core.Validate(c)
}

// System is the lsystem sketch.
type System struct {
	cfg Config
}

// New returns the sketch for cfg.
func New(cfg Config) *System { return &System{cfg: cfg} }

func (s *System) Name() string    { return "lsystem" }
func (s *System) Summary() string { return "four-symbol grammar of steps, circles, crossbars and diamonds" }

func (s *System) Canvas() core.Canvas {
	return core.Canvas{Preset: "arch-a", Orientation: "portrait", Units: "in", Margin: 0.25}
}

func (s *System) Layers() []string { return []string{layerLines, layerCircles, layerDiamonds} }

func (s *System) Parameters() core.ParameterSnapshot {
	c := s.cfg
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Grammar",
			Params: []core.Parameter{
				core.StringParam("axiom", "Axiom", c.Axiom),
				core.IntParam("generations", "Generations", c.Generations),
				core.StringParam("rule_a", "a ->", c.RuleA),
				core.StringParam("rule_b", "b ->", c.RuleB),
				core.StringParam("rule_c", "c ->", c.RuleC),
				core.StringParam("rule_d", "d ->", c.RuleD),
				core.IntParam("limit", "Expansion limit", c.Limit),
			},
		},
		{
			Name: "Symbols",
			Params: []core.Parameter{
				core.FloatParam("step_length", "a: step", c.StepLength),
				core.FloatParam("circle_radius", "b: radius", c.CircleRadius),
				core.FloatParam("circle_age_freq", "b: age frequency", c.CircleAge),
				core.FloatParam("turn_freq", "b: turn frequency", c.TurnFreq),
				core.FloatParam("turn_range", "b: turn range", c.TurnRange),
				core.FloatParam("turn_tension", "b: turn tension", c.TurnTension),
				core.FloatParam("bar_growth", "c: growth", c.BarGrowth),
				core.FloatParam("diamond_size", "d: size", c.DiamondSize),
				core.FloatParam("diamond_gap", "d: gap", c.DiamondGap),
			},
		},
	}}
}

func (s *System) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "generations", Label: "Generations", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 8, HasMin: true, HasMax: true},
		{Key: "step_length", Label: "Step", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, HasMin: true},
		{Key: "turn_tension", Label: "Turn tension", Type: core.ParamTypeFloat, Step: 1},
		{Key: "bar_growth", Label: "Bar growth", Type: core.ParamTypeFloat, Step: 0.005},
	}
}

// Rules binds the symbols to the noise field of env.
func (s *System) Rules(env core.Env) grammar.Rules {
	c := s.cfg
	return grammar.Rules{
		'a': {Expand: c.RuleA, Execute: func(ctx *grammar.Context, st grammar.State) (grammar.State, error) {
			next := st.Position.Toward(st.Heading, c.StepLength)
			if err := ctx.Emit(layerLines, geom.Segment(st.Position, next)); err != nil {
				return st, err
			}
			st.Position = next
			return st, nil
		}},
		'b': {Expand: c.RuleB, Execute: func(ctx *grammar.Context, st grammar.State) (grammar.State, error) {
			age := float64(st.Age)
			r := c.CircleRadius * math.Abs(math.Sin(age*c.CircleAge))
			if err := ctx.Emit(layerCircles, geom.CirclePath(st.Position, r)); err != nil {
				return st, err
			}
			amp := c.TurnRange + c.TurnTension*math.Sin(age)
			st.Heading += env.Noise.Sample2D(st.Position.X, st.Position.Y, c.TurnFreq, amp)
			return st, nil
		}},
		'c': {Expand: c.RuleC, Execute: func(ctx *grammar.Context, st grammar.State) (grammar.State, error) {
			half := float64(st.Age) * c.BarGrowth
			left := st.Position.Toward(st.Heading-math.Pi/2, half)
			right := st.Position.Toward(st.Heading+math.Pi/2, half)
			if err := ctx.Emit(layerLines, geom.Segment(left, right)); err != nil {
				return st, err
			}
			for _, end := range []geom.Point{left, right} {
				at := st
				at.Position = end
				if _, err := ctx.Invoke('b', at); err != nil {
					return st, err
				}
			}
			return st, nil
		}},
		'd': {Expand: c.RuleD, Execute: func(ctx *grammar.Context, st grammar.State) (grammar.State, error) {
			size := env.Noise.Sample1D(float64(st.Age), 1, c.DiamondSize)
			var p geom.Path
			for _, r := range []float64{size, size + c.DiamondGap} {
				pts := diamond(st.Position, st.Heading, r)
				p.MoveTo(pts[3])
				for _, pt := range pts {
					p.LineTo(pt)
				}
			}
			return st, ctx.Emit(layerDiamonds, p)
		}},
	}
}

// diamond returns the four corners around c at distance r, starting a
// quarter turn from heading.
func diamond(c geom.Point, heading, r float64) [4]geom.Point {
	var out [4]geom.Point
	for i, off := range [4]float64{math.Pi / 2, math.Pi, -math.Pi / 2, 0} {
		out[i] = c.Toward(heading+off, r)
	}
	return out
}

// Program expands the axiom without drawing.
func (s *System) Program(env core.Env) (string, error) {
	e, err := grammar.New(s.Rules(env), grammar.WithLimit(s.cfg.Limit))
	if err != nil {
		return "", err
	}
	return e.Expand(s.cfg.Axiom, s.cfg.Generations)
}

// Generate expands the axiom and walks it from the top margin at the
// horizontal centre, heading down the page.
func (s *System) Generate(env core.Env, out *geom.LayerSet) error {
	e, err := grammar.New(s.Rules(env), grammar.WithLimit(s.cfg.Limit))
	if err != nil {
		return err
	}
	start := grammar.State{Position: geom.Pt(env.Canvas.Mid().X, env.Canvas.Margin)}
	_, err = e.Run(s.cfg.Axiom, s.cfg.Generations, start, out)
	return err
}

func init() {
	core.Register("lsystem", func(m map[string]string) (core.Sketch, error) {
		cfg, err := FromMap(m)
		if err != nil {
			return nil, err
		}
		return New(cfg), nil
	})
}
