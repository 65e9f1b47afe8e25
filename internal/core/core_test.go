package core

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pcore "penplot/pkg/core"
	"penplot/pkg/geom"
)

type dotsConfig struct {
	Count  int     `key:"count" validate:"gte=0"`
	Spread float64 `key:"spread" validate:"gt=0"`
}

type dots struct{ cfg dotsConfig }

func (d *dots) Name() string    { return "test-dots" }
func (d *dots) Summary() string { return "random circles" }
func (d *dots) Canvas() Canvas {
	return Canvas{Width: 10, Height: 10, Units: "in", Margin: 1}
}
func (d *dots) Layers() []string { return []string{"even", "odd"} }
func (d *dots) Parameters() ParameterSnapshot {
	return ParameterSnapshot{Groups: []ParameterGroup{{
		Name: "Dots",
		Params: []Parameter{
			IntParam("count", "Count", d.cfg.Count),
			FloatParam("spread", "Spread", d.cfg.Spread),
		},
	}}}
}

func (d *dots) Generate(env Env, out *geom.LayerSet) error {
	for i := 0; i < d.cfg.Count; i++ {
		p := geom.Pt(env.RNG.Range(0, env.Canvas.Width*d.cfg.Spread), env.RNG.Range(0, env.Canvas.Height*d.cfg.Spread))
		r := 0.05 + math.Abs(env.Noise.Sample2D(p.X, p.Y, 1, 0.1))
		if err := out.Append(i%2, geom.CirclePath(p, r)); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	Register("test-dots", func(params map[string]string) (Sketch, error) {
		cfg := dotsConfig{Count: 20, Spread: 1}
		v := NewValues(params)
		v.Int("count", &cfg.Count)
		v.Float("spread", &cfg.Spread)
		if err := v.Err(); err != nil {
			return nil, err
		}
		if err := Validate(cfg); err != nil {
			return nil, err
		}
		return &dots{cfg: cfg}, nil
	})
}

func TestValues(t *testing.T) {
	var (
		n    int
		f    float64
		b    bool
		name string
	)
	v := NewValues(map[string]string{"n": " 12 ", "f": "0.25", "b": "true", "name": "ring"})
	v.Int("n", &n)
	v.Float("f", &f)
	v.Bool("b", &b)
	v.String("name", &name)
	require.NoError(t, v.Err())
	assert.Equal(t, 12, n)
	assert.Equal(t, 0.25, f)
	assert.True(t, b)
	assert.Equal(t, "ring", name)

	v = NewValues(map[string]string{"n": "twelve"})
	v.Int("n", &n)
	var pe *pcore.ParamError
	require.True(t, errors.As(v.Err(), &pe))
	assert.Equal(t, "n", pe.Name)
	assert.Equal(t, 12, n, "failed parse must not touch the destination")

	v = NewValues(map[string]string{"f": "NaN"})
	v.Float("f", &f)
	assert.ErrorIs(t, v.Err(), pcore.ErrInvalidParameter)

	v = NewValues(map[string]string{"n": "3", "zeta": "1", "alpha": "2"})
	v.Int("n", &n)
	require.True(t, errors.As(v.Err(), &pe))
	assert.Equal(t, "alpha", pe.Name)

	assert.NoError(t, NewValues(nil).Err())
}

func TestValidateNamesKey(t *testing.T) {
	err := Validate(dotsConfig{Count: 1, Spread: 0})
	var pe *pcore.ParamError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "spread", pe.Name)
	assert.Equal(t, "must be > 0", pe.Reason)
	assert.NoError(t, Validate(dotsConfig{Count: 0, Spread: 1}))
}

func TestCanvasResolve(t *testing.T) {
	c, err := Canvas{Preset: "arch-a", Orientation: "portrait", Units: "in", Margin: 0.25}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 9.0, c.Width)
	assert.Equal(t, 12.0, c.Height)

	c, err = Canvas{Preset: "A3", Orientation: "landscape", Units: "cm"}.Resolve()
	require.NoError(t, err)
	assert.InDelta(t, 42.0, c.Width, 1e-9)
	assert.InDelta(t, 29.7, c.Height, 1e-9)

	c, err = Canvas{Preset: "letter"}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "in", c.Units)
	assert.Equal(t, 8.5, c.Width)

	c, err = Canvas{Preset: "8r", Width: 7, Units: "in"}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 7.0, c.Width)
	assert.Equal(t, 10.0, c.Height)

	_, err = Canvas{Preset: "b5", Units: "in"}.Resolve()
	assert.ErrorIs(t, err, pcore.ErrInvalidParameter)
	_, err = Canvas{Width: 1, Height: 1, Units: "in", Margin: 0.5}.Resolve()
	assert.ErrorIs(t, err, pcore.ErrInvalidParameter)
	_, err = Canvas{Width: 1, Height: 1, Units: "px"}.Resolve()
	assert.ErrorIs(t, err, pcore.ErrInvalidParameter)
	_, err = Canvas{Units: "in"}.Resolve()
	assert.ErrorIs(t, err, pcore.ErrInvalidParameter)
}

func TestCanvasOver(t *testing.T) {
	base := Canvas{Preset: "arch-a", Orientation: "portrait", Units: "in", Margin: 0.25}
	c, err := Canvas{Orientation: "landscape"}.Over(base).Resolve()
	require.NoError(t, err)
	assert.Equal(t, 12.0, c.Width)
	assert.Equal(t, 0.25, c.Margin)

	c, err = Canvas{Units: "mm", Margin: 5}.Over(base).Resolve()
	require.NoError(t, err)
	assert.InDelta(t, 228.6, c.Width, 1e-9)
	assert.Equal(t, 5.0, c.Margin)

	explicit := Canvas{Width: 2.5, Height: 3.75, Units: "in", Margin: 0.25}
	c, err = Canvas{Preset: "letter"}.Over(explicit).Resolve()
	require.NoError(t, err)
	assert.Equal(t, 8.5, c.Width)

	assert.Equal(t, explicit, Canvas{}.Over(explicit))
}

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument([]byte(`
sketch: test-dots
seed: 42
canvas:
  preset: letter
  margin: 0.5
params:
  count: 7
  spread: 0.5
`))
	require.NoError(t, err)
	assert.Equal(t, "test-dots", doc.Sketch)
	assert.Equal(t, "42", doc.Seed)
	assert.Equal(t, "letter", doc.Canvas.Preset)
	assert.Equal(t, map[string]string{"count": "7", "spread": "0.5"}, doc.Params)

	_, err = ParseDocument([]byte("sketch: x\ncolour: red\n"))
	assert.Error(t, err)

	doc, err = ParseDocument(nil)
	require.NoError(t, err)
	assert.Empty(t, doc.Sketch)

	out, err := Document{Sketch: "test-dots", Seed: "abcd"}.Marshal()
	require.NoError(t, err)
	back, err := ParseDocument(out)
	require.NoError(t, err)
	assert.Equal(t, "abcd", back.Seed)
}

func TestBindMerge(t *testing.T) {
	file := Document{Sketch: "test-dots", Seed: "1", Params: map[string]string{"count": "4", "spread": "0.5"}}

	var flags Document
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Bind(fs)
	require.NoError(t, fs.Parse([]string{"--seed", "abcd", "--set", "count=9", "--set", "spread=0.25", "--margin", "0.5"}))

	doc, err := flags.Merge(file)
	require.NoError(t, err)
	assert.Equal(t, "test-dots", doc.Sketch)
	assert.Equal(t, "abcd", doc.Seed)
	assert.Equal(t, 0.5, doc.Canvas.Margin)
	assert.Equal(t, map[string]string{"count": "9", "spread": "0.25"}, doc.Params)
	assert.Equal(t, "4", file.Params["count"], "merge must not alias the base params")

	bad := Document{}
	assert.ErrorIs(t, bad.Set("novalue"), pcore.ErrInvalidParameter)
	assert.ErrorIs(t, bad.Set("=1"), pcore.ErrInvalidParameter)
}

func TestRunDeterministic(t *testing.T) {
	doc := Document{Sketch: "test-dots", Seed: "abcd", Params: map[string]string{"count": "9"}}
	a, err := Run(context.Background(), doc, nil)
	require.NoError(t, err)
	b, err := Run(context.Background(), doc, nil)
	require.NoError(t, err)

	require.Equal(t, a.Layers, b.Layers)
	assert.Equal(t, []int{6, 5}, a.Counts())
	assert.False(t, a.Drawn)
	assert.Equal(t, pcore.Seed("abcd"), a.Seed)
	for _, l := range a.Layers {
		assert.Equal(t, geom.RegistrationMark(geom.Pt(1, 1)), l.Paths[len(l.Paths)-1])
	}
	assert.Len(t, a.Paths(), 11)

	p, ok := a.Params.Lookup("count")
	require.True(t, ok)
	assert.Equal(t, "9", p.Value)

	c, err := Run(context.Background(), Document{Sketch: "test-dots", Seed: "abce", Params: doc.Params}, nil)
	require.NoError(t, err)
	assert.NotEqual(t, a.Layers, c.Layers)
}

func TestRunErrors(t *testing.T) {
	_, err := Run(context.Background(), Document{Sketch: "nope"}, nil)
	assert.ErrorIs(t, err, ErrUnknownSketch)

	_, err = Run(context.Background(), Document{Sketch: "test-dots", Params: map[string]string{"count": "-1"}}, nil)
	assert.ErrorIs(t, err, pcore.ErrInvalidParameter)

	_, err = Run(context.Background(), Document{Sketch: "test-dots", Params: map[string]string{"colour": "red"}}, nil)
	assert.ErrorIs(t, err, pcore.ErrInvalidParameter)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, Document{Sketch: "test-dots", Seed: "1"}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunRandomSeed(t *testing.T) {
	res, err := Run(context.Background(), Document{Sketch: "test-dots"}, nil)
	require.NoError(t, err)
	assert.True(t, res.Drawn)
	assert.NotEmpty(t, res.Seed)
}

func TestCoverage(t *testing.T) {
	res, err := Run(context.Background(), Document{Sketch: "test-dots", Seed: "5", Params: map[string]string{"spread": "0.05"}}, nil)
	require.NoError(t, err)
	assert.Zero(t, Coverage(res, geom.DefaultTolerance), "every dot sits in the margin")

	res, err = Run(context.Background(), Document{Sketch: "test-dots", Seed: "5", Params: map[string]string{"count": "0"}}, nil)
	require.NoError(t, err)
	assert.Zero(t, Coverage(res, geom.DefaultTolerance))
}

func TestSweep(t *testing.T) {
	doc := Document{Sketch: "test-dots", Params: map[string]string{"count": "6"}}
	seeds := SeedRange(100, 8)
	require.Len(t, seeds, 8)
	assert.Equal(t, pcore.Seed("100"), seeds[0])

	got, err := Sweep(context.Background(), doc, seeds, 3, nil)
	require.NoError(t, err)
	require.Len(t, got, len(seeds))

	sk, err := New(doc.Sketch, doc.Params)
	require.NoError(t, err)
	canvas, err := sk.Canvas().Resolve()
	require.NoError(t, err)
	want := map[pcore.Seed]float64{}
	for _, s := range seeds {
		res, err := Generate(sk, s, canvas)
		require.NoError(t, err)
		want[s] = Coverage(res, geom.DefaultTolerance)
	}
	for i, c := range got {
		assert.Equal(t, want[c.Seed], c.Coverage)
		assert.Equal(t, 8, c.Paths)
		if i > 0 {
			assert.GreaterOrEqual(t, got[i-1].Coverage, c.Coverage)
		}
	}

	_, err = Sweep(context.Background(), doc, seeds, 0, nil)
	assert.ErrorIs(t, err, pcore.ErrInvalidParameter)
}

func TestNames(t *testing.T) {
	assert.Contains(t, Names(), "test-dots")
	_, ok := Sketches()["test-dots"]
	assert.True(t, ok)
}

func TestPlayback(t *testing.T) {
	now := time.Unix(0, 0)
	clock := newFixedStep(10, func() time.Time { return now })
	p := newPlayback(10, 3, clock)

	assert.Equal(t, 3, p.Advance())
	now = now.Add(250 * time.Millisecond)
	assert.Equal(t, 9, p.Advance())

	p.TogglePause()
	now = now.Add(time.Second)
	assert.Equal(t, 9, p.Advance())
	p.TogglePause()
	assert.False(t, p.Paused())

	now = now.Add(100 * time.Millisecond)
	assert.Equal(t, 10, p.Advance())
	assert.True(t, p.Done())

	p.Restart(4)
	assert.Zero(t, p.Shown())
	p.Finish()
	assert.Equal(t, 4, p.Shown())
}
