package assistant

import "strings"

// Classifier decides whether an assistant answer reads as unsatisfying
// enough to offer creative fallbacks. It is an interface so the
// substring heuristic can be swapped without touching routing.
type Classifier interface {
	IsLowConfidence(text string) bool
}

// defaultKeywords are substrings that signal apology, confusion or
// uncertainty in an answer.
var defaultKeywords = []string{
	"i'm sorry",
	"i am sorry",
	"i apologize",
	"not sure",
	"i don't understand",
	"i do not understand",
	"i'm unable",
	"i am unable",
	"i cannot help",
	"i can't help",
	"i don't know",
	"i do not know",
	"unclear to me",
}

// KeywordClassifier flags answers containing any of a fixed keyword
// set, case-insensitively.
type KeywordClassifier struct {
	keywords []string
}

// NewKeywordClassifier builds a classifier over the given keywords,
// or the default set when none are passed.
func NewKeywordClassifier(keywords ...string) *KeywordClassifier {
	if len(keywords) == 0 {
		keywords = defaultKeywords
	}
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}
	return &KeywordClassifier{keywords: lowered}
}

func (c *KeywordClassifier) IsLowConfidence(text string) bool {
	lowered := strings.ToLower(text)
	for _, k := range c.keywords {
		if strings.Contains(lowered, k) {
			return true
		}
	}
	return false
}
