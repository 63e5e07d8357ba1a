package aurora

import "testing"

func TestDetectEmotion(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"This is AMAZING", EmotionExcited},
		{"wow!!", EmotionExcited},
		{"can you help me with this", EmotionThinking},
		{"what is LUX", EmotionThinking},
		{"I have a problem with my wallet", EmotionConfused},
		{"I'm worried about the price", EmotionConfused},
		{"thanks a lot", EmotionPositive},
		{"the weather today", EmotionNeutral},
		{"", EmotionNeutral},
	}

	for _, tc := range cases {
		if got := Detect_Emotion(tc.text); got != tc.want {
			t.Errorf("Detect_Emotion(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestDetectEmotion_PriorityOrder(t *testing.T) {
	// Matches several categories; excited wins.
	if got := Detect_Emotion("I love this, but how does it work? I'm worried"); got != EmotionExcited {
		t.Errorf("Expected excited to take priority, got %q", got)
	}
	// Thinking outranks confused.
	if got := Detect_Emotion("how do I fix this problem"); got != EmotionThinking {
		t.Errorf("Expected thinking to outrank confused, got %q", got)
	}
}

func TestDetectFlirty(t *testing.T) {
	flirty := []string{
		"hey gorgeous",
		"You are so CUTE",
		"want to go on a date?",
		"😘",
	}
	for _, text := range flirty {
		if !Detect_Flirty(text) {
			t.Errorf("Detect_Flirty(%q) = false, want true", text)
		}
	}

	plain := []string{
		"how do I buy LUX tokens",
		"tell me about quantum computing",
		"",
	}
	for _, text := range plain {
		if Detect_Flirty(text) {
			t.Errorf("Detect_Flirty(%q) = true, want false", text)
		}
	}
}
