package sentiment

import "strings"

// Label is the sentiment attached to a journal entry
type Label string

const (
	Positive Label = "positive"
	Neutral  Label = "neutral"
	Negative Label = "negative"
	// Default marks an entry that has not been classified yet. A successful
	// classification never produces it.
	Default Label = "default"
)

// ParseLabel maps a string to a Label, returning false for unknown values
func ParseLabel(s string) (Label, bool) {
	switch l := Label(strings.ToLower(strings.TrimSpace(s))); l {
	case Positive, Neutral, Negative, Default:
		return l, true
	}
	return "", false
}

func (l Label) String() string {
	return string(l)
}
