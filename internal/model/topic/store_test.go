package topic_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mindtone-labs/mindtone/backend/internal/model/topic"
)

func TestSeedContainsDefaultEmotions(t *testing.T) {
	store := topic.NewMemoryStore(topic.Seed())

	if len(store.List()) != 8 {
		t.Fatalf("expected 8 seed topics, got %d", len(store.List()))
	}
	for _, name := range []string{"기쁨", "슬픔", "화남", "불안", "지침", "혼란", "희망", "감사"} {
		if _, ok := store.FindByName(name); !ok {
			t.Fatalf("seed catalogue missing %s", name)
		}
	}
}

func TestFindByNameUnknown(t *testing.T) {
	store := topic.NewMemoryStore(topic.Seed())
	if _, ok := store.FindByName("심심함"); ok {
		t.Fatal("expected lookup miss for unlisted topic")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.yaml")
	content := `topics:
  - name: 설렘
    emoji: "💓"
    description: 두근거리는 상태
  - name: 평온
    emoji: "🍃"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	topics, err := topic.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile err: %v", err)
	}
	if len(topics) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(topics))
	}
	if topics[0].Name != "설렘" || topics[0].Emoji != "💓" {
		t.Fatalf("unexpected first topic: %+v", topics[0])
	}
}

func TestLoadFileRejectsEmptyCatalogue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.yaml")
	if err := os.WriteFile(path, []byte("topics: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := topic.LoadFile(path); err == nil {
		t.Fatal("expected error for empty catalogue")
	}
}

func TestLoadFileRejectsNamelessEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.yaml")
	if err := os.WriteFile(path, []byte("topics:\n  - emoji: \"🌊\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := topic.LoadFile(path); err == nil {
		t.Fatal("expected error for entry without a name")
	}
}
