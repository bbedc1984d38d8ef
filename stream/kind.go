package stream

import "fmt"

// Kind is the closed set of element variants.
type Kind int

const (
	KindNote Kind = iota
	KindChord
	KindRest
	KindClef
	KindKeySignature
	KindTimeSignature
	KindStream
	KindVoice
	KindMeasure
	KindPart
	KindScore
	numKinds
)

var kindNames = [numKinds]string{
	"Note", "Chord", "Rest", "Clef", "KeySignature", "TimeSignature",
	"Stream", "Voice", "Measure", "Part", "Score",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown element kind %q", name)
}

type kindSet uint32

func (ks kindSet) has(k Kind) bool {
	return ks&(1<<uint(k)) != 0
}

func setOf(kinds ...Kind) kindSet {
	var ks kindSet
	for _, k := range kinds {
		ks |= 1 << uint(k)
	}
	return ks
}

// capability groups, most specific first
var classGroups = []struct {
	name  string
	kinds kindSet
}{
	{"NotRest", setOf(KindNote, KindChord)},
	{"GeneralNote", setOf(KindNote, KindChord, KindRest)},
	{"Stream", setOf(KindStream, KindVoice, KindMeasure, KindPart, KindScore)},
	{"Music21Object", (1 << uint(numKinds)) - 1},
}

var (
	capabilities = map[string]kindSet{}
	kindClasses  [numKinds][]string
)

func init() {
	for i, n := range kindNames {
		capabilities[n] |= setOf(Kind(i))
	}
	for _, g := range classGroups {
		capabilities[g.name] |= g.kinds
	}
	for k := Kind(0); k < numKinds; k++ {
		classes := []string{k.String()}
		for _, g := range classGroups {
			if g.kinds.has(k) && g.name != k.String() {
				classes = append(classes, g.name)
			}
		}
		kindClasses[k] = classes
	}
}

// Classes lists the class names an element answers to, most specific first.
func Classes(el Element) []string {
	k := el.Kind()
	if k < 0 || k >= numKinds {
		return nil
	}
	return append([]string(nil), kindClasses[k]...)
}

func IsClassOrSubclass(el Element, names ...string) bool {
	k := el.Kind()
	for _, n := range names {
		if capabilities[n].has(k) {
			return true
		}
	}
	return false
}
