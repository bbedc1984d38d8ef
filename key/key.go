package key

import "fmt"

var sharpOrder = []string{"F", "C", "G", "D", "A", "E", "B"}

var majorTonics = map[int]string{
	-7: "C-", -6: "G-", -5: "D-", -4: "A-", -3: "E-", -2: "B-", -1: "F",
	0: "C", 1: "G", 2: "D", 3: "A", 4: "E", 5: "B", 6: "F#", 7: "C#",
}

// AccidentalSteps lists the altered steps in signature order.
func AccidentalSteps(sharps int) []string {
	var res []string
	if sharps >= 0 {
		for i := 0; i < sharps && i < len(sharpOrder); i++ {
			res = append(res, sharpOrder[i])
		}
		return res
	}
	for i := 0; i < -sharps && i < len(sharpOrder); i++ {
		res = append(res, sharpOrder[len(sharpOrder)-1-i])
	}
	return res
}

// AlterationForStep returns the alteration the signature applies to step.
func AlterationForStep(sharps int, step string) float64 {
	alter := 1.0
	if sharps < 0 {
		alter = -1.0
	}
	for _, s := range AccidentalSteps(sharps) {
		if s == step {
			return alter
		}
	}
	return 0
}

func Validate(sharps int) error {
	if sharps < -7 || sharps > 7 {
		return fmt.Errorf("key signature must have between -7 and 7 sharps, got %v", sharps)
	}
	return nil
}

func MajorTonic(sharps int) string {
	return majorTonics[sharps]
}
