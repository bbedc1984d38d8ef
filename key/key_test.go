package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccidentalStepsForSharpsAndFlats(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]string{"F", "C"}, AccidentalSteps(2))
	assert.Equal([]string{"B", "E", "A"}, AccidentalSteps(-3))
	assert.Empty(AccidentalSteps(0))
}

func TestAlterationForStep(t *testing.T) {
	cases := []struct {
		sharps int
		step   string
		want   float64
	}{
		{2, "F", 1},
		{2, "C", 1},
		{2, "G", 0},
		{-1, "B", -1},
		{-1, "E", 0},
		{0, "F", 0},
	}
	for _, c := range cases {
		t.Run(c.step, func(t *testing.T) {
			assert.Equal(t, c.want, AlterationForStep(c.sharps, c.step))
		})
	}
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	assert.Error(t, Validate(8))
	assert.NoError(t, Validate(-7))
	assert.Equal(t, "D", MajorTonic(2))
}
