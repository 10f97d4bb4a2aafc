package emotion

import "strings"

// Unknown is the bucket for emotions that are empty or unclassifiable.
const Unknown = "unknown"

// canonicalLabels is the ordered vocabulary used to bucket free-text emotion
// descriptions. Order matters: the first label contained in the raw text wins,
// even when a later label also appears.
var canonicalLabels = []string{
	"기쁨", "행복", "설렘", "사랑", "감동", "감사", "그리움", "기대",
	"슬픔", "우울", "불안", "걱정", "화남", "짜증", "답답함",
}

// Labels returns the canonical vocabulary in priority order.
func Labels() []string {
	return append([]string(nil), canonicalLabels...)
}

// Canonicalize maps a free-text emotion onto the first matching canonical
// label by substring containment. Text matching no label falls back to its
// first whitespace-delimited token, and empty text maps to Unknown.
func Canonicalize(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Unknown
	}

	for _, label := range canonicalLabels {
		if strings.Contains(text, label) {
			return label
		}
	}

	if fields := strings.Fields(text); len(fields) > 0 {
		return fields[0]
	}
	return Unknown
}

// Histogram counts canonicalized emotions.
func Histogram(raw []string) map[string]int {
	counts := make(map[string]int, len(raw))
	for _, text := range raw {
		counts[Canonicalize(text)]++
	}
	return counts
}
