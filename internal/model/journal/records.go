package journal

// DateLayout is the calendar-date key format used across all journal tables.
const DateLayout = "2006-01-02"

// MemoryRecord is one saved memory. Records are immutable once written and
// duplicates on (date, title) are permitted.
type MemoryRecord struct {
	Date      string `json:"date"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Summary   string `json:"summary"`
	Emotion   string `json:"emotion"`
	Empathy   string `json:"empathy"`
	ImagePath string `json:"imagePath,omitempty"`
}

// EmotionRecord is the single emotion row kept per calendar date.
type EmotionRecord struct {
	Date    string `json:"date"`
	Emotion string `json:"emotion"`
	Reason  string `json:"reason"`
}

// TodayNote is the single "word of the day". Saving replaces the prior value
// unconditionally; there is no history.
type TodayNote struct {
	Date string `json:"date"`
	Word string `json:"word"`
}
