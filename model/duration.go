package model

import (
	"fmt"
	"math"
)

// durations by type name, in quarter lengths
var typeToQuarterLength = map[string]float64{
	"maxima":  32,
	"longa":   16,
	"breve":   8,
	"whole":   4,
	"half":    2,
	"quarter": 1,
	"eighth":  0.5,
	"16th":    0.25,
	"32nd":    0.125,
	"64th":    0.0625,
	"128th":   0.03125,
}

var typeOrder = []string{"maxima", "longa", "breve", "whole", "half", "quarter", "eighth", "16th", "32nd", "64th", "128th"}

type Duration struct {
	QuarterLength float64 `json:"quarterLength"`
}

func NewDuration(quarterLength float64) Duration {
	return Duration{QuarterLength: quarterLength}
}

// DurationFromType builds a duration from a type name ("quarter", "16th") and a dot count.
func DurationFromType(typ string, dots int) (Duration, error) {
	base, ok := typeToQuarterLength[typ]
	if !ok {
		return Duration{}, fmt.Errorf("unknown duration type %q", typ)
	}
	if dots < 0 {
		return Duration{}, fmt.Errorf("negative dot count %d", dots)
	}
	return Duration{QuarterLength: base * (2 - 1/math.Pow(2, float64(dots)))}, nil
}

func (d Duration) Validate() error {
	ql := d.QuarterLength
	if math.IsNaN(ql) || math.IsInf(ql, 0) {
		return fmt.Errorf("quarterLength is not a number: %v", ql)
	}
	if ql < 0 {
		return fmt.Errorf("quarterLength is negative: %v", ql)
	}
	return nil
}

// TypeAndDots returns the notated type and dots, or "complex" when no
// single notehead with up to three dots can express the length.
func (d Duration) TypeAndDots() (string, int) {
	if d.QuarterLength == 0 {
		return "zero", 0
	}
	for dots := 0; dots <= 3; dots++ {
		for _, typ := range typeOrder {
			ql := typeToQuarterLength[typ] * (2 - 1/math.Pow(2, float64(dots)))
			if math.Abs(ql-d.QuarterLength) < 1e-9 {
				return typ, dots
			}
		}
	}
	return "complex", 0
}

func (d Duration) Type() string {
	t, _ := d.TypeAndDots()
	return t
}

func (d Duration) Dots() int {
	_, dots := d.TypeAndDots()
	return dots
}

func (d Duration) String() string {
	return fmt.Sprintf("<Duration %v>", d.QuarterLength)
}
