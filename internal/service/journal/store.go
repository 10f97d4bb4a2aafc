package journal

import (
	"encoding/csv"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mindtone-labs/mindtone/backend/internal/analysis/emotion"
	"github.com/mindtone-labs/mindtone/backend/internal/model/journal"
)

const (
	memoriesFile  = "memories.csv"
	emotionsFile  = "emotions.csv"
	todayWordFile = "today_word.json"
	imagesDir     = "images"

	// upsertReason is recorded when a memory save derives the daily emotion.
	upsertReason = "대화 기반 감정 분석"
)

var memoriesHeader = []string{"date", "title", "content", "summary", "emotion", "empathy", "image_path"}
var emotionsHeader = []string{"date", "emotion", "reason"}

// Store is the flat-file journal: a memories table, a one-row-per-date
// emotions table and a single today-note, all under one data directory.
// Reads degrade to empty results; writes report success as a boolean and
// never panic past this boundary. All file access is serialized because
// every write rewrites a whole table.
type Store struct {
	mu  sync.Mutex
	dir string
}

// NewStore returns a Store rooted at dataDir. Call EnsureInitialized (or any
// operation, which does so itself) before first use.
func NewStore(dataDir string) *Store {
	return &Store{dir: dataDir}
}

// EnsureInitialized idempotently creates the data directory, the image blob
// area and an empty table per record kind. Safe to call before every
// operation.
func (s *Store) EnsureInitialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureInitializedLocked()
}

func (s *Store) ensureInitializedLocked() bool {
	if err := os.MkdirAll(filepath.Join(s.dir, imagesDir), 0o755); err != nil {
		log.Printf("[journal] failed to create data directory %s: %v", s.dir, err)
		return false
	}

	if err := s.createCSVIfAbsent(memoriesFile, memoriesHeader); err != nil {
		log.Printf("[journal] failed to initialize memories table: %v", err)
		return false
	}
	if err := s.createCSVIfAbsent(emotionsFile, emotionsHeader); err != nil {
		log.Printf("[journal] failed to initialize emotions table: %v", err)
		return false
	}

	notePath := filepath.Join(s.dir, todayWordFile)
	if _, err := os.Stat(notePath); os.IsNotExist(err) {
		note := journal.TodayNote{Date: today(), Word: ""}
		if err := s.writeTodayNoteLocked(note); err != nil {
			log.Printf("[journal] failed to initialize today note: %v", err)
			return false
		}
	}

	return true
}

func (s *Store) createCSVIfAbsent(name string, header []string) error {
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	return writeCSV(path, header, nil)
}

// AppendMemory appends a memory record, rewriting the whole table, then
// upserts the daily emotion derived from the record. The record's date
// defaults to today when empty.
func (s *Store) AppendMemory(record journal.MemoryRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ensureInitializedLocked() {
		return false
	}

	if record.Date == "" {
		record.Date = today()
	}

	records := s.loadMemoriesLocked()
	records = append(records, record)
	if err := writeCSV(filepath.Join(s.dir, memoriesFile), memoriesHeader, memoryRows(records)); err != nil {
		log.Printf("[journal] failed to save memory %q: %v", record.Title, err)
		return false
	}

	return s.upsertEmotionLocked(record.Date, record.Emotion, upsertReason)
}

// UpsertEmotion records the emotion for a date, overwriting the existing row
// for that date when present. Idempotent for identical inputs.
func (s *Store) UpsertEmotion(date, emotionText, reason string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ensureInitializedLocked() {
		return false
	}
	return s.upsertEmotionLocked(date, emotionText, reason)
}

func (s *Store) upsertEmotionLocked(date, emotionText, reason string) bool {
	records := s.loadEmotionsLocked()

	found := false
	for i := range records {
		if records[i].Date == date {
			records[i].Emotion = emotionText
			records[i].Reason = reason
			found = true
		}
	}
	if !found {
		records = append(records, journal.EmotionRecord{Date: date, Emotion: emotionText, Reason: reason})
	}

	if err := writeCSV(filepath.Join(s.dir, emotionsFile), emotionsHeader, emotionRows(records)); err != nil {
		log.Printf("[journal] failed to save emotion for %s: %v", date, err)
		return false
	}
	return true
}

// SetTodayNote replaces the single today-note with {today, word},
// unconditionally discarding any prior value.
func (s *Store) SetTodayNote(word string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ensureInitializedLocked() {
		return false
	}

	if err := s.writeTodayNoteLocked(journal.TodayNote{Date: today(), Word: word}); err != nil {
		log.Printf("[journal] failed to save today note: %v", err)
		return false
	}
	return true
}

// GetTodayNote returns the stored note, or an empty note dated today when the
// store is missing or unreadable.
func (s *Store) GetTodayNote() journal.TodayNote {
	s.mu.Lock()
	defer s.mu.Unlock()

	fallback := journal.TodayNote{Date: today(), Word: ""}
	if !s.ensureInitializedLocked() {
		return fallback
	}

	raw, err := os.ReadFile(filepath.Join(s.dir, todayWordFile))
	if err != nil {
		log.Printf("[journal] failed to read today note: %v", err)
		return fallback
	}

	var note journal.TodayNote
	if err := json.Unmarshal(raw, &note); err != nil {
		log.Printf("[journal] corrupt today note, using empty value: %v", err)
		return fallback
	}
	return note
}

func (s *Store) writeTodayNoteLocked(note journal.TodayNote) error {
	raw, err := json.Marshal(note)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, todayWordFile), raw, 0o644)
}

// ListMemories returns stored memories in descending date order, most recent
// first. A positive limit caps the result from the head. Missing or corrupt
// tables yield an empty slice.
func (s *Store) ListMemories(limit int) []journal.MemoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ensureInitializedLocked() {
		return nil
	}

	records := s.loadMemoriesLocked()
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})

	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records
}

// MemoriesByDate returns the memories saved on one calendar date.
func (s *Store) MemoriesByDate(date string) []journal.MemoryRecord {
	var matched []journal.MemoryRecord
	for _, record := range s.ListMemories(0) {
		if record.Date == date {
			matched = append(matched, record)
		}
	}
	return matched
}

// ListEmotions returns all emotion rows in ascending date order. Missing or
// corrupt tables yield an empty slice.
func (s *Store) ListEmotions() []journal.EmotionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ensureInitializedLocked() {
		return nil
	}

	records := s.loadEmotionsLocked()
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date < records[j].Date
	})
	return records
}

// EmotionHistogram buckets every stored emotion into its canonical label and
// counts occurrences.
func (s *Store) EmotionHistogram() map[string]int {
	records := s.ListEmotions()
	raw := make([]string, 0, len(records))
	for _, record := range records {
		raw = append(raw, record.Emotion)
	}
	return emotion.Histogram(raw)
}

func (s *Store) loadMemoriesLocked() []journal.MemoryRecord {
	rows := s.readCSVLocked(memoriesFile, len(memoriesHeader))
	records := make([]journal.MemoryRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, journal.MemoryRecord{
			Date:      row[0],
			Title:     row[1],
			Content:   row[2],
			Summary:   row[3],
			Emotion:   row[4],
			Empathy:   row[5],
			ImagePath: row[6],
		})
	}
	return records
}

func (s *Store) loadEmotionsLocked() []journal.EmotionRecord {
	rows := s.readCSVLocked(emotionsFile, len(emotionsHeader))
	records := make([]journal.EmotionRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, journal.EmotionRecord{Date: row[0], Emotion: row[1], Reason: row[2]})
	}
	return records
}

// readCSVLocked reads all data rows of a table, skipping the header. A
// missing or unparsable file is treated as an empty table.
func (s *Store) readCSVLocked(name string, fields int) [][]string {
	path := filepath.Join(s.dir, name)
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[journal] failed to open %s: %v", name, err)
		}
		return nil
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		log.Printf("[journal] corrupt table %s, treating as empty: %v", name, err)
		return nil
	}

	var data [][]string
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < fields {
			continue
		}
		data = append(data, row[:fields])
	}
	return data
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		f.Close()
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			f.Close()
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func memoryRows(records []journal.MemoryRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.Date, r.Title, r.Content, r.Summary, r.Emotion, r.Empathy, r.ImagePath})
	}
	return rows
}

func emotionRows(records []journal.EmotionRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.Date, r.Emotion, r.Reason})
	}
	return rows
}

func today() string {
	return time.Now().Format(journal.DateLayout)
}

// sanitizeTitle keeps image filenames filesystem-safe.
func sanitizeTitle(title string) string {
	return strings.ReplaceAll(strings.TrimSpace(title), " ", "_")
}
