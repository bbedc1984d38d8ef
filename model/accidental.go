package model

import "fmt"

type DisplayStatus int

const (
	DisplayUnset DisplayStatus = iota
	DisplayShown
	DisplayHidden
)

type Accidental struct {
	Name          string        `json:"name"`
	Alter         float64       `json:"alter"`
	DisplayStatus DisplayStatus `json:"displayStatus,omitempty"`
}

var accidentalAlters = map[string]float64{
	"natural":              0,
	"sharp":                1,
	"double-sharp":         2,
	"triple-sharp":         3,
	"flat":                 -1,
	"double-flat":          -2,
	"triple-flat":          -3,
	"half-sharp":           0.5,
	"half-flat":            -0.5,
	"one-and-a-half-sharp": 1.5,
	"one-and-a-half-flat":  -1.5,
}

var accidentalModifiers = map[string]string{
	"natural":              "n",
	"sharp":                "#",
	"double-sharp":         "##",
	"triple-sharp":         "###",
	"flat":                 "-",
	"double-flat":          "--",
	"triple-flat":          "---",
	"half-sharp":           "~",
	"half-flat":            "`",
	"one-and-a-half-sharp": "#~",
	"one-and-a-half-flat":  "-`",
}

func NewAccidental(name string) (*Accidental, error) {
	alter, ok := accidentalAlters[name]
	if !ok {
		for n, m := range accidentalModifiers {
			if m == name {
				return &Accidental{Name: n, Alter: accidentalAlters[n]}, nil
			}
		}
		return nil, fmt.Errorf("unknown accidental %q", name)
	}
	return &Accidental{Name: name, Alter: alter}, nil
}

// AccidentalFromAlter returns nil for unsupported alterations.
func AccidentalFromAlter(alter float64) *Accidental {
	for name, a := range accidentalAlters {
		if a == alter {
			return &Accidental{Name: name, Alter: alter}
		}
	}
	return nil
}

func (a *Accidental) Modifier() string {
	if a == nil {
		return ""
	}
	return accidentalModifiers[a.Name]
}

func (a *Accidental) Displayed() bool {
	return a != nil && a.DisplayStatus == DisplayShown
}

func (a *Accidental) Clone() *Accidental {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}
