package emotion

import "testing"

func TestCanonicalizeSubstringFirstMatch(t *testing.T) {
	// 기쁨 precedes 감사 in the vocabulary, so a phrase containing both maps
	// to 기쁨.
	if got := Canonicalize("오늘은 기쁨과 감사"); got != "기쁨" {
		t.Fatalf("expected 기쁨, got %s", got)
	}
}

func TestCanonicalizeExactLabel(t *testing.T) {
	if got := Canonicalize("슬픔"); got != "슬픔" {
		t.Fatalf("expected 슬픔, got %s", got)
	}
}

func TestCanonicalizeEmptyFallsBackToUnknown(t *testing.T) {
	if got := Canonicalize(""); got != Unknown {
		t.Fatalf("expected %s, got %s", Unknown, got)
	}
	if got := Canonicalize("   "); got != Unknown {
		t.Fatalf("expected %s for whitespace, got %s", Unknown, got)
	}
}

func TestCanonicalizeUnlistedUsesFirstToken(t *testing.T) {
	if got := Canonicalize("뿌듯함 그리고 성취감"); got != "뿌듯함" {
		t.Fatalf("expected first token 뿌듯함, got %s", got)
	}
}

func TestHistogram(t *testing.T) {
	counts := Histogram([]string{"오늘은 기쁨과 감사", "슬픔", ""})

	want := map[string]int{"기쁨": 1, "슬픔": 1, Unknown: 1}
	if len(counts) != len(want) {
		t.Fatalf("unexpected histogram size: %v", counts)
	}
	for label, n := range want {
		if counts[label] != n {
			t.Fatalf("label %s: got %d want %d", label, counts[label], n)
		}
	}
}
