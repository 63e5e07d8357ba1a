// Package learning runs autonomous knowledge acquisition cycles: the
// assistant periodically searches the web for a topic it has not
// covered recently, synthesizes the results through a chat-completion
// provider, and stores the outcome for the system prompt to pick up.
package learning

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/luxbin-chain/aurora/common_tools"
	models "github.com/luxbin-chain/aurora/models"
	"github.com/luxbin-chain/aurora/stores"
)

// Topics the assistant is curious about.
var LearningTopics = []string{
	"latest AI breakthroughs 2026",
	"quantum computing advances",
	"blockchain innovations",
	"Hermetic philosophy applications",
	"sacred geometry discoveries",
	"consciousness research",
	"cryptocurrency trends",
	"spiritual awakening practices",
	"neural network improvements",
	"diamond quantum computers",
}

const (
	// DefaultSchedule runs one learning cycle per hour.
	DefaultSchedule = "@hourly"

	synthesisSystemPrompt = `You are an autonomous learning AI. You search for knowledge, analyze it, and synthesize key insights.

Your job:
1. Analyze the search results
2. Extract key insights and facts
3. Identify the category (technology, spirituality, science, philosophy, etc.)

Be curious, thorough, and always eager to learn more.`
)

// Synthesizer is the provider that turns search results into knowledge.
type Synthesizer interface {
	Generate(ctx context.Context, conversation []models.Chat_Message, tools []models.FunctionDeclaration) (models.Provider_Response, error)
}

// Learned is the structured knowledge one cycle produces. This is also
// the JSON shape stored in the knowledge table.
type Learned struct {
	Topic    string   `json:"topic"`
	Insights string   `json:"insights"`
	Category string   `json:"category"`
	KeyFacts []string `json:"keyFacts"`
}

// Learner runs learning cycles against a store.
type Learner struct {
	Store       stores.MessageStore
	Synthesizer Synthesizer
	Search      func(ctx context.Context, query string, numResults int) common_tools.Search_Response
	Topics      []string

	cron *cron.Cron
}

// NewLearner builds a learner over the default topic list.
func NewLearner(store stores.MessageStore, synthesizer Synthesizer) *Learner {
	return &Learner{
		Store:       store,
		Synthesizer: synthesizer,
		Search:      common_tools.Search_Web,
		Topics:      LearningTopics,
	}
}

// Start schedules learning cycles with the given cron expression
// (DefaultSchedule when empty). Call Stop to shut the scheduler down.
func (l *Learner) Start(schedule string) error {
	if schedule == "" {
		schedule = DefaultSchedule
	}

	l.cron = cron.New()
	_, err := l.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if _, err := l.Learn_Cycle(ctx); err != nil {
			log.Printf("[LEARNER] Learning cycle error: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule learning cycle: %w", err)
	}

	l.cron.Start()
	log.Printf("[LEARNER] Scheduled learning cycles (%s)", schedule)
	return nil
}

// Stop halts the scheduler, waiting for a running cycle to finish.
func (l *Learner) Stop() {
	if l.cron != nil {
		<-l.cron.Stop().Done()
	}
}

// Learn_Cycle picks the next unexplored topic and learns about it.
func (l *Learner) Learn_Cycle(ctx context.Context) (Learned, error) {
	return l.Learn(ctx, l.Next_Topic())
}

// Next_Topic returns the first topic not covered by recent knowledge.
// With everything covered, the least recently learned topic comes up
// again, so rotation stays deterministic.
func (l *Learner) Next_Topic() string {
	topics := l.Topics
	if len(topics) == 0 {
		topics = LearningTopics
	}

	recent, err := l.Store.RecentKnowledge(10)
	if err != nil {
		log.Printf("[LEARNER] Could not load recent knowledge: %v", err)
		return topics[0]
	}

	covered := func(topic string) bool {
		head := strings.ToLower(strings.SplitN(topic, " ", 2)[0])
		for _, entry := range recent {
			if strings.Contains(strings.ToLower(entry.Topic), head) {
				return true
			}
		}
		return false
	}

	for _, topic := range topics {
		if !covered(topic) {
			return topic
		}
	}

	// All covered: refresh the oldest of the recent entries' topics.
	oldest := recent[len(recent)-1].Topic
	for _, topic := range topics {
		if strings.Contains(strings.ToLower(oldest), strings.ToLower(strings.SplitN(topic, " ", 2)[0])) {
			return topic
		}
	}
	return topics[0]
}

// Learn searches the web for a topic, synthesizes the results, and
// stores the outcome.
func (l *Learner) Learn(ctx context.Context, topic string) (Learned, error) {
	log.Printf("[LEARNER] Autonomously learning about: %s", topic)

	search := l.Search
	if search == nil {
		search = common_tools.Search_Web
	}

	results := search(ctx, topic, 5)
	if len(results.Results) == 0 {
		return Learned{}, fmt.Errorf("no results found for topic %q", topic)
	}

	knowledge := l.synthesize(ctx, topic, results)

	source := "web"
	if len(results.Results) > 0 {
		source = results.Results[0].URL
	}

	content, err := json.Marshal(knowledge)
	if err != nil {
		return Learned{}, fmt.Errorf("failed to encode learned knowledge: %w", err)
	}

	entry := stores.Knowledge{
		Topic:      knowledge.Topic,
		Category:   knowledge.Category,
		Content:    string(content),
		Source:     source,
		Confidence: 0.8,
	}
	if err := l.Store.SaveKnowledge(entry); err != nil {
		return Learned{}, fmt.Errorf("failed to store learned knowledge: %w", err)
	}

	log.Printf("[LEARNER] Knowledge learned and stored: %s (%s)", knowledge.Topic, knowledge.Category)
	return knowledge, nil
}

// synthesize asks the provider to distill search results into
// structured knowledge. When the provider is missing or returns
// something unparseable, the raw reply is wrapped instead of dropped.
func (l *Learner) synthesize(ctx context.Context, topic string, results common_tools.Search_Response) Learned {
	fallback := Learned{
		Topic:    topic,
		Insights: common_tools.Format_Search_Results(results),
		Category: "general",
		KeyFacts: []string{},
	}

	if l.Synthesizer == nil {
		return fallback
	}

	var listing strings.Builder
	for i, r := range results.Results {
		fmt.Fprintf(&listing, "%d. %s\n   %s\n   Source: %s\n\n", i+1, r.Title, r.Snippet, r.URL)
	}

	conversation := []models.Chat_Message{
		{Role: "system", Content: synthesisSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("I searched for %q and found these results:\n\n%s"+
			`Synthesize this into useful knowledge I should remember. Format as JSON with: { "topic", "insights", "category", "keyFacts" }`,
			topic, listing.String())},
	}

	response, err := l.Synthesizer.Generate(ctx, conversation, nil)
	if err != nil {
		log.Printf("[LEARNER] Synthesis failed, storing raw results: %v", err)
		return fallback
	}

	var knowledge Learned
	text := strings.TrimSpace(response.Text())
	if err := json.Unmarshal([]byte(text), &knowledge); err != nil {
		// Provider replied in prose, keep it as the insight body.
		fallback.Insights = text
		return fallback
	}

	if knowledge.Topic == "" {
		knowledge.Topic = topic
	}
	if knowledge.Category == "" {
		knowledge.Category = "general"
	}
	if knowledge.KeyFacts == nil {
		knowledge.KeyFacts = []string{}
	}
	return knowledge
}
