package intent

import "testing"

func TestDetectKeywords(t *testing.T) {
	cases := []struct {
		message string
		want    Tag
	}{
		{"Tell me about your life story", Life},
		{"What's your STORY?", Life},
		{"What is your number one superpower?", Superpower},
		{"What's your biggest strength", Superpower},
		{"Where would you like to grow?", Growth},
		{"What do you want to improve", Growth},
		{"Any misconception coworkers have?", Misconception},
		{"How do you push your boundary", Boundaries},
		{"Do you test your limits?", Boundaries},
		{"What's the weather like", None},
		{"   ", None},
	}

	for _, tc := range cases {
		if got := Detect(tc.message); got != tc.want {
			t.Fatalf("Detect(%q) = %s, want %s", tc.message, got, tc.want)
		}
	}
}

func TestDetectFirstRuleWins(t *testing.T) {
	if got := Detect("Is your superpower part of your life?"); got != Life {
		t.Fatalf("expected life to win over superpower, got %s", got)
	}
	if got := Detect("How do you improve beyond your limits"); got != Growth {
		t.Fatalf("expected growth to win over boundaries, got %s", got)
	}
}

func TestTagsExcludesNone(t *testing.T) {
	tags := Tags()
	if len(tags) != 5 {
		t.Fatalf("expected 5 tags, got %d", len(tags))
	}
	for _, tag := range tags {
		if tag == None {
			t.Fatal("Tags must not include None")
		}
	}
}
