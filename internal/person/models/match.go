package models

// Confidence ranks how certain the matcher is that a registry candidate is
// the same person as the query. The order is total: exact beats high beats
// medium.
type Confidence string

const (
	ConfidenceExact  Confidence = "exact"
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
)

// Rank returns the sort rank of the tier; lower is stronger.
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceExact:
		return 0
	case ConfidenceHigh:
		return 1
	case ConfidenceMedium:
		return 2
	default:
		return 3
	}
}

// Match is a transient pairing of a registry candidate with a confidence
// tier and a human-readable reason. It is never persisted.
type Match struct {
	Person     *DeceasedPerson
	Confidence Confidence
	Reason     string
}
