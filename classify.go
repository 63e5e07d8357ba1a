package aurora

import (
	"regexp"
	"strings"
)

// Emotion labels attached to each reply. The UI maps these onto
// avatar animations, so the set is fixed.
const (
	EmotionExcited  = "excited"
	EmotionThinking = "thinking"
	EmotionConfused = "confused"
	EmotionPositive = "positive"
	EmotionNeutral  = "neutral"
)

var (
	excitedPattern  = regexp.MustCompile(`[!]{2,}|amazing|awesome|excited|love|wow`)
	thinkingPattern = regexp.MustCompile(`help|please|how|what|can you`)
	confusedPattern = regexp.MustCompile(`sad|worried|concerned|problem|issue`)
	positivePattern = regexp.MustCompile(`thanks|thank you|great|good`)
)

// Detect_Emotion classifies a user message into one of the five emotion
// labels. Categories are checked in priority order and the first match
// wins, so "I love this, how does it work?" is excited, not thinking.
func Detect_Emotion(text string) string {
	lowerText := strings.ToLower(text)

	switch {
	case excitedPattern.MatchString(lowerText):
		return EmotionExcited
	case thinkingPattern.MatchString(lowerText):
		return EmotionThinking
	case confusedPattern.MatchString(lowerText):
		return EmotionConfused
	case positivePattern.MatchString(lowerText):
		return EmotionPositive
	}
	return EmotionNeutral
}

var flirtyKeywords = []string{
	"sexy", "flirt", "hot", "gorgeous", "beautiful", "handsome",
	"attractive", "cute", "romantic", "intimate", "kiss", "date",
	"adventurous", "naughty", "tease", "seduce", "desire", "passionate",
	"dirty", "kinky", "horny", "turn on", "turn me on", "spicy",
	"steamy", "fantasy", "bedroom", "love", "babe", "baby", "honey",
	"darling", "sweetheart", "😏", "😘", "😍", "🔥", "💋",
}

// Detect_Flirty reports whether the message reads as flirty or romantic.
// A flirty conversation flips the provider order so the more playful
// model answers first.
func Detect_Flirty(text string) bool {
	lowerText := strings.ToLower(text)
	for _, keyword := range flirtyKeywords {
		if strings.Contains(lowerText, keyword) {
			return true
		}
	}
	return false
}
