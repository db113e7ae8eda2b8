package quiz

import "strings"

// Label is one of the enumerated answer choices.
type Label string

const (
	LabelA Label = "A"
	LabelB Label = "B"
	LabelC Label = "C"
	LabelD Label = "D"
)

// Labels returns the enumerated label set in display order.
func Labels() []Label {
	return []Label{LabelA, LabelB, LabelC, LabelD}
}

// Valid reports whether l belongs to the enumerated set.
func (l Label) Valid() bool {
	switch l {
	case LabelA, LabelB, LabelC, LabelD:
		return true
	}
	return false
}

// String returns the label symbol.
func (l Label) String() string {
	return string(l)
}

// ParseLabel converts a raw value to a Label.
// Values outside the set fail with *InvalidLabelError.
func ParseLabel(raw string) (Label, error) {
	l := Label(raw)
	if !l.Valid() {
		return "", &InvalidLabelError{Value: raw}
	}
	return l, nil
}

// LabelSetString renders the set as "A, B, C, D".
func LabelSetString() string {
	labels := Labels()
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = string(l)
	}
	return strings.Join(parts, ", ")
}

func labelEnum() []string {
	labels := Labels()
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = string(l)
	}
	return out
}
