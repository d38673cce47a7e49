package mode

// Mode is the scoring strategy applied to a candidate set.
type Mode string

// Scoring mode constants.
const (
	// Fast scores exact substring matches only.
	Fast Mode = "fast"
	// Full adds approximate (edit-distance) contributions for unmatched tokens.
	Full Mode = "full"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Fast || m == Full
}

// Parse converts user input to a Mode. "" and "auto" return ok=true with an
// empty Mode, meaning the engine picks by candidate-set size.
func Parse(s string) (m Mode, ok bool) {
	switch s {
	case "", "auto":
		return "", true
	case string(Fast):
		return Fast, true
	case string(Full):
		return Full, true
	}
	return "", false
}
