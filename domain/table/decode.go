package table

import "strings"

// Mode selects how a raw cell is split into display segments
type Mode int

const (
	// FixedTriplet decodes "name\nfast, charged" into exactly three segments
	FixedTriplet Mode = iota
	// VariableList decodes a newline-delimited list of any length
	VariableList
)

// TripletWidth is the segment count of every FixedTriplet cell
const TripletWidth = 3

func (m Mode) String() string {
	switch m {
	case FixedTriplet:
		return "fixed-triplet"
	case VariableList:
		return "variable-list"
	default:
		return "unknown"
	}
}

// Decode splits a raw cell into ordered display segments. It never fails:
// FixedTriplet always yields three strings, VariableList at least one.
func Decode(raw string, mode Mode) []string {
	if mode == VariableList {
		return strings.Split(raw, "\n")
	}
	return decodeTriplet(raw)
}

func decodeTriplet(raw string) []string {
	head, tail, _ := strings.Cut(raw, "\n")

	// Only the first comma splits; later commas stay in the charged move.
	fast, charged, _ := strings.Cut(tail, ",")

	return []string{
		strings.TrimSpace(head),
		strings.TrimSpace(fast),
		strings.TrimSpace(charged),
	}
}
