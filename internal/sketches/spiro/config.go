package spiro

import (
	"penplot/internal/core"
)

// Config controls the spirograph. The rotators themselves are drawn from
// the seed at generate time; Config only holds their count and
// distributions.
type Config struct {
	Mode  string `key:"mode" validate:"oneof=ring tube"`
	Glyph string `key:"glyph" validate:"oneof=circle triangle"`

	Steps     int     `key:"steps" validate:"gte=1,lte=200000"`
	Rotators  int     `key:"rotators" validate:"gte=1,lte=16"`
	BaseSize  float64 `key:"base_size"`
	CenterY   float64 `key:"center_y" validate:"gt=0,lt=1"`
	Colors    int     `key:"colors" validate:"gte=1,lte=9"`
	Nudge     float64 `key:"nudge"`
	NudgeFrom int     `key:"nudge_from" validate:"gte=0"`

	NoiseFreq float64 `key:"noise_freq"`
	NoiseAmp  float64 `key:"noise_amp" validate:"gte=0"`

	Curtain    bool    `key:"curtain"`
	CurtainGap float64 `key:"curtain_gap" validate:"gt=0"`
}

// DefaultConfig returns the standard configuration: seven pens of rings
// around a four-term harmonograph.
func DefaultConfig() Config {
	return Config{
		Mode:       "ring",
		Glyph:      "circle",
		Steps:      400,
		Rotators:   4,
		BaseSize:   2,
		CenterY:    0.5,
		Colors:     7,
		Nudge:      0.015,
		NudgeFrom:  2,
		NoiseFreq:  1,
		CurtainGap: 0.05,
	}
}

// TubeConfig is the single-pen tube drawing: rings swell with distance
// from the centre of a five-term figure.
func TubeConfig() Config {
	c := DefaultConfig()
	c.Mode = "tube"
	c.Steps = 1000
	c.Rotators = 5
	c.BaseSize = 0.5
	c.Colors = 1
	return c
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). The mode is read first since it picks the defaults.
func FromMap(m map[string]string) (Config, error) {
	c := DefaultConfig()
	if m["mode"] == "tube" {
		c = TubeConfig()
	}
	v := core.NewValues(m)
	v.String("mode", &c.Mode)
	v.String("glyph", &c.Glyph)
	v.Int("steps", &c.Steps)
	v.Int("rotators", &c.Rotators)
	v.Float("base_size", &c.BaseSize)
	v.Float("center_y", &c.CenterY)
	v.Int("colors", &c.Colors)
	v.Float("nudge", &c.Nudge)
	v.Int("nudge_from", &c.NudgeFrom)
	v.Float("noise_freq", &c.NoiseFreq)
	v.Float("noise_amp", &c.NoiseAmp)
	v.Bool("curtain", &c.Curtain)
	v.Float("curtain_gap", &c.CurtainGap)
	if err := v.Err(); err != nil {
		return c, err
	}
	return c, core.Validate(c)
}

// Parameters reports the configuration.
func (s *Spiro) Parameters() core.ParameterSnapshot {
	c := s.cfg
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Figure",
			Params: []core.Parameter{
				core.StringParam("mode", "Mode", c.Mode),
				core.StringParam("glyph", "Glyph", c.Glyph),
				core.IntParam("steps", "Steps", c.Steps),
				core.IntParam("rotators", "Rotators", c.Rotators),
				core.FloatParam("base_size", "Base size", c.BaseSize),
				core.FloatParam("center_y", "Centre height", c.CenterY),
			},
		},
		{
			Name:    "Pens",
			Summary: "each pen nudges the rotators from nudge_from on",
			Params: []core.Parameter{
				core.IntParam("colors", "Pens", c.Colors),
				core.FloatParam("nudge", "Nudge", c.Nudge),
				core.IntParam("nudge_from", "Nudge from", c.NudgeFrom),
			},
		},
		{
			Name: "Radius noise",
			Params: []core.Parameter{
				core.FloatParam("noise_freq", "Frequency", c.NoiseFreq),
				core.FloatParam("noise_amp", "Amplitude", c.NoiseAmp),
			},
		},
		{
			Name: "Curtain",
			Params: []core.Parameter{
				core.BoolParam("curtain", "Curtain", c.Curtain),
				core.FloatParam("curtain_gap", "Gap", c.CurtainGap),
			},
		},
	}}
}

func (s *Spiro) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "steps", Label: "Steps", Type: core.ParamTypeInt, Step: 50, Min: 50, HasMin: true},
		{Key: "colors", Label: "Pens", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 9, HasMin: true, HasMax: true},
		{Key: "nudge", Label: "Nudge", Type: core.ParamTypeFloat, Step: 0.005},
		{Key: "noise_amp", Label: "Radius noise", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, HasMin: true},
	}
}
