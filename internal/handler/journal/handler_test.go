package journal_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	journalHandler "github.com/mindtone-labs/mindtone/backend/internal/handler/journal"
	journalService "github.com/mindtone-labs/mindtone/backend/internal/service/journal"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	store := journalService.NewStore(t.TempDir())

	r := chi.NewRouter()
	// nil AI service: analysis fields degrade to placeholders
	journalHandler.New(store, nil).RegisterRoutes(r)
	return r
}

func TestSaveMemoryRequiresTitle(t *testing.T) {
	router := newRouter(t)

	body := `{"content":"제목이 없는 기록"}`
	req := httptest.NewRequest(http.MethodPost, "/memories", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without title, got %d", rec.Code)
	}
}

func TestSaveMemoryFillsAnalysisPlaceholders(t *testing.T) {
	router := newRouter(t)

	body := `{"date":"2024-03-01","title":"봄 산책","content":"공원을 걸었다"}`
	req := httptest.NewRequest(http.MethodPost, "/memories", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	var record struct {
		Summary string `json:"summary"`
		Emotion string `json:"emotion"`
		Empathy string `json:"empathy"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &record); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	for name, field := range map[string]string{"summary": record.Summary, "emotion": record.Emotion, "empathy": record.Empathy} {
		if field == "" {
			t.Fatalf("expected placeholder %s when AI is unavailable", name)
		}
	}
}

func TestListMemoriesWithLimit(t *testing.T) {
	router := newRouter(t)

	for _, body := range []string{
		`{"date":"2024-01-01","title":"하나","content":"내용","summary":"요약","emotion":"기쁨","empathy":"공감"}`,
		`{"date":"2024-02-01","title":"둘","content":"내용","summary":"요약","emotion":"감사","empathy":"공감"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/memories", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("save failed: %d %s", rec.Code, rec.Body.String())
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/memories?limit=1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var records []struct {
		Date  string `json:"date"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(records) != 1 || records[0].Date != "2024-02-01" {
		t.Fatalf("expected only the most recent record, got %+v", records)
	}
}

func TestListMemoriesRejectsInvalidLimit(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/memories?limit=abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid limit, got %d", rec.Code)
	}
}

func TestEmotionHistogramEndpoint(t *testing.T) {
	router := newRouter(t)

	body := `{"date":"2024-03-01","title":"기록","content":"내용","summary":"요약","emotion":"오늘은 기쁨과 감사","empathy":"공감"}`
	req := httptest.NewRequest(http.MethodPost, "/memories", strings.NewReader(body))
	router.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/emotions/histogram", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var counts map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &counts); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if counts["기쁨"] != 1 {
		t.Fatalf("unexpected histogram: %v", counts)
	}
}

func TestTodayWordRoundTrip(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/today-word", strings.NewReader(`{"word":"사랑해"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/today-word", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var note struct {
		Word string `json:"word"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &note); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if note.Word != "사랑해" {
		t.Fatalf("unexpected word: %q", note.Word)
	}
}

func TestImageNotFound(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/images/missing.jpg", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing image, got %d", rec.Code)
	}
}
