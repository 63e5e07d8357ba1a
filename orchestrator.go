package aurora

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/luxbin-chain/aurora/chain"
	"github.com/luxbin-chain/aurora/common_tools"
	models "github.com/luxbin-chain/aurora/models"
	"github.com/luxbin-chain/aurora/stores"
)

// DefaultBudget bounds one whole Respond call: state aggregation,
// every provider attempt, and the tool round trip. When it expires the
// pipeline falls through to the deterministic template generator.
const DefaultBudget = 120 * time.Second

var (
	deployPattern = regexp.MustCompile(`(?i)deploy|create|generate.*contract|smart contract`)
	imagePattern  = regexp.MustCompile(`(?i)generate.*image|create.*image|draw.*image`)
)

// SearchFunc runs the web search tool.
type SearchFunc func(ctx context.Context, query string, numResults int) common_tools.Search_Response

// ContractFunc generates code from a prompt, e.g. via the Anthropic
// Messages API.
type ContractFunc func(ctx context.Context, prompt string) (string, error)

// ImageFunc generates an image and returns a URL or path to it.
type ImageFunc func(ctx context.Context, prompt string) (string, error)

// Chat_Result is what one pipeline run produces.
type Chat_Result struct {
	Reply    string               `json:"reply"`
	Source   string               `json:"source"`
	State    chain.AI_State       `json:"blockchain_state"`
	Metadata models.Chat_Metadata `json:"metadata"`
}

// Pipeline wires the whole response flow together: quantum state
// aggregation, intent classification, the provider chain with its one
// bounded tool round trip, and the deterministic fallback.
type Pipeline struct {
	// Grok answers first for flirty conversations, OpenAI otherwise.
	// Either may be nil when its API key is not configured.
	Grok   Provider
	OpenAI Provider

	// Contract and Images serve the smart-contract and image-request
	// branches. Nil disables the branch.
	Contract ContractFunc
	Images   ImageFunc

	Chain      *chain.Client
	Store      stores.MessageStore
	Search     SearchFunc
	Tools      []models.FunctionDeclaration
	Characters []Character
	Budget     time.Duration
}

// Respond runs the full pipeline for one chat request.
func (p *Pipeline) Respond(ctx context.Context, request models.Chat_Request) (Chat_Result, error) {
	if len(request.Messages) == 0 {
		return Chat_Result{}, fmt.Errorf("request has no messages")
	}
	// Empty content is still a valid turn: it classifies as neutral and
	// runs through the normal provider chain.
	userMessage := models.Latest_User_Content(request.Messages)

	budget := p.Budget
	if budget <= 0 {
		budget = DefaultBudget
	}
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	chainClient := p.Chain
	if chainClient == nil {
		chainClient = chain.NewClient("")
	}
	state := chainClient.AI_State(ctx)
	emotion := Detect_Emotion(userMessage)
	flirty := Detect_Flirty(userMessage)

	conversationID := request.Conversation_ID
	if conversationID == "" {
		conversationID = newConversationID()
	}

	if result, ok := p.tryContract(ctx, userMessage, state); ok {
		return result, nil
	}
	if result, ok := p.tryImage(ctx, userMessage, state); ok {
		return result, nil
	}

	knowledge := p.recentKnowledge()
	systemPrompt := Build_System_Prompt(state, knowledge)
	if character, ok := p.findCharacter(request.Character_ID); ok {
		systemPrompt = Apply_Character(systemPrompt, character)
	}

	conversation := make([]models.Chat_Message, 0, len(request.Messages)+1)
	conversation = append(conversation, models.Chat_Message{Role: "system", Content: systemPrompt})
	conversation = append(conversation, request.Messages...)

	for _, provider := range p.providerOrder(flirty) {
		if ctx.Err() != nil {
			log.Printf("[PIPELINE] Budget exhausted before trying %s", provider.Name())
			break
		}

		// Each provider starts from the original conversation; a failed
		// attempt leaves no trace for the next one.
		reply, toolMessages, err := p.attempt(ctx, provider, conversation)
		if err != nil {
			log.Printf("[PIPELINE] %s error, falling back: %v", provider.Name(), err)
			continue
		}
		usedSearch := len(toolMessages) > 0

		p.recordThread(conversationID, userMessage, reply, state, emotion, provider.Model_ID())
		p.persistTurn(conversationID, userMessage, toolMessages, reply)

		metadata := models.Chat_Metadata{
			Emotion_Detected: emotion,
			Model:            provider.Model_ID(),
			Web_Search_Used:  usedSearch,
			Conversation_ID:  conversationID,
			On_Chain:         p.Chain != nil, // recordThread only submits with a configured chain
		}
		if flirty {
			metadata.Personality = "flirty"
		}

		return Chat_Result{
			Reply:    reply,
			Source:   provider.Name(),
			State:    state,
			Metadata: metadata,
		}, nil
	}

	// Every provider failed or was skipped. The template generator
	// always answers.
	reply := Mock_Response(userMessage)
	p.persistTurn(conversationID, userMessage, nil, reply)

	return Chat_Result{
		Reply:  reply,
		Source: "fallback",
		State:  state,
		Metadata: models.Chat_Metadata{
			Emotion_Detected: emotion,
			Model:            "template",
			Conversation_ID:  conversationID,
		},
	}, nil
}

// attempt runs one provider: an initial generation with tools offered,
// and if the provider asks for the search tool, one round trip followed
// by a re-invocation without tools. The returned messages are the tool
// request and result appended during the round trip, empty when the
// provider answered directly.
func (p *Pipeline) attempt(ctx context.Context, provider Provider, conversation []models.Chat_Message) (string, []models.Chat_Message, error) {
	response, err := provider.Generate(ctx, conversation, p.Tools)
	if err != nil {
		return "", nil, err
	}

	call := Select_Tool_Call(response.Function_Calls())
	if call == nil {
		return replyText(response), nil, nil
	}

	formatted := p.executeTool(ctx, *call)

	// Exactly two messages join the conversation: the assistant's tool
	// request and the tool result, linked by the call ID.
	toolMessages := []models.Chat_Message{
		{
			Role:       "assistant",
			Content:    response.Text(),
			Tool_Calls: []models.FunctionCall{*call},
		},
		{
			Role:         "tool",
			Content:      formatted,
			Tool_Call_ID: call.ID,
		},
	}

	withTool := make([]models.Chat_Message, 0, len(conversation)+2)
	withTool = append(withTool, conversation...)
	withTool = append(withTool, toolMessages...)

	// No tools on the second call, so one round trip is the ceiling.
	response, err = provider.Generate(ctx, withTool, nil)
	if err != nil {
		return "", nil, err
	}

	return replyText(response), toolMessages, nil
}

// executeTool runs the selected tool call. Failures never surface as
// errors: an unknown tool or a failed search both come back as an empty
// result sentence the model can work with.
func (p *Pipeline) executeTool(ctx context.Context, call models.FunctionCall) string {
	query, _ := call.Args["query"].(string)

	if call.Name != "search_web" {
		log.Printf("[PIPELINE] Ignoring unknown tool %q", call.Name)
		return common_tools.Format_Search_Results(common_tools.Search_Response{Query: query})
	}

	numResults := common_tools.DefaultNumResults
	if n, ok := call.Args["num_results"].(float64); ok {
		numResults = int(n)
	}

	search := p.Search
	if search == nil {
		search = p.registeredSearch(call.Name)
	}

	log.Printf("[PIPELINE] Executing web search: %q (%d results)", query, numResults)
	return common_tools.Format_Search_Results(search(ctx, query, numResults))
}

// registeredSearch resolves the function bound to a tool declaration at
// registration time. The package-level executor backs any declaration
// without one.
func (p *Pipeline) registeredSearch(name string) SearchFunc {
	for _, tool := range p.Tools {
		if tool.Name != name {
			continue
		}
		if fn, ok := tool.Callable.(func(ctx context.Context, query string, numResults int) common_tools.Search_Response); ok {
			return fn
		}
	}
	return common_tools.Search_Web
}

func (p *Pipeline) providerOrder(flirty bool) []Provider {
	ordered := []Provider{p.OpenAI, p.Grok}
	if flirty {
		// Grok is more playful, let it answer first
		ordered = []Provider{p.Grok, p.OpenAI}
	}
	providers := make([]Provider, 0, len(ordered))
	for _, provider := range ordered {
		if provider != nil {
			providers = append(providers, provider)
		}
	}
	return providers
}

// tryContract handles smart-contract requests through the code
// generation model. A failure falls through to the normal chat flow.
func (p *Pipeline) tryContract(ctx context.Context, userMessage string, state chain.AI_State) (Chat_Result, bool) {
	if p.Contract == nil || !deployPattern.MatchString(userMessage) {
		return Chat_Result{}, false
	}

	contractPrompt := fmt.Sprintf(`You are a smart contract expert. Generate a Solidity contract based on this user request: %q

Requirements:
- Use OpenZeppelin standards
- Include light/temporal encoding comments (e.g., // Temporal key: block.timestamp)
- Make it deployable on Luxbin/Base
- Add security features

Provide only the complete Solidity code, no explanations.`, userMessage)

	contractCode, err := p.Contract(ctx, contractPrompt)
	if err != nil {
		log.Printf("[PIPELINE] Contract generation error, falling back to chat: %v", err)
		return Chat_Result{}, false
	}

	reply := fmt.Sprintf("I've generated a light-encoded smart contract for you! Here's the code:\n\n```solidity\n%s\n```\n\n"+
		"**Deploy for FREE on Base:**\n"+
		"1. Copy the code above\n"+
		"2. Go to https://remix.ethereum.org/\n"+
		"3. Paste and compile\n"+
		"4. Connect your wallet to Base network\n"+
		"5. Deploy (gas-free with your credits!)\n\n"+
		"Or tell me to modify it.", contractCode)

	return Chat_Result{
		Reply:  reply,
		Source: "claude-contract",
		State:  state,
		Metadata: models.Chat_Metadata{
			Contract_Code: contractCode,
		},
	}, true
}

// tryImage handles image generation requests. A failure falls through
// to the normal chat flow.
func (p *Pipeline) tryImage(ctx context.Context, userMessage string, state chain.AI_State) (Chat_Result, bool) {
	if p.Images == nil || !imagePattern.MatchString(userMessage) {
		return Chat_Result{}, false
	}

	prompt := strings.TrimSpace(imagePattern.ReplaceAllString(userMessage, ""))

	imageURL, err := p.Images(ctx, prompt)
	if err != nil {
		log.Printf("[PIPELINE] Image generation error, falling back to chat: %v", err)
		return Chat_Result{}, false
	}

	return Chat_Result{
		Reply:  fmt.Sprintf("I've generated an AI image for you! [View Image](%s)", imageURL),
		Source: "image-gen",
		State:  state,
		Metadata: models.Chat_Metadata{
			Image_URL: imageURL,
		},
	}, true
}

func (p *Pipeline) recentKnowledge() []stores.Knowledge {
	if p.Store == nil {
		return nil
	}
	knowledge, err := p.Store.RecentKnowledge(10)
	if err != nil {
		log.Printf("[PIPELINE] Could not load learned knowledge: %v", err)
		return nil
	}
	return knowledge
}

func (p *Pipeline) findCharacter(id string) (Character, bool) {
	if id == "" {
		return Character{}, false
	}
	for _, c := range p.Characters {
		if c.ID == id {
			return c, true
		}
	}
	return Character{}, false
}

// recordThread writes the turn to the chain in the background; requests
// never wait on chain submission.
func (p *Pipeline) recordThread(conversationID, userMessage, reply string, state chain.AI_State, emotion, model string) {
	if p.Chain == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		metadata := chain.Thread_Metadata{State: state, Emotion: emotion, Model: model}
		if err := p.Chain.Record_Conversation_Thread(ctx, conversationID, userMessage, reply, metadata); err != nil {
			log.Printf("Blockchain recording failed: %v", err)
		}
	}()
}

// persistTurn saves the full turn: the user message, any tool round
// trip, and the reply. Storage errors only log.
func (p *Pipeline) persistTurn(conversationID, userMessage string, toolMessages []models.Chat_Message, reply string) {
	if p.Store == nil {
		return
	}
	if err := p.Store.SaveMessage(conversationID, "user", userMessage, "", ""); err != nil {
		log.Printf("[PIPELINE] Failed to save user message: %v", err)
		return
	}
	for _, msg := range toolMessages {
		if err := p.Store.SaveMessage(conversationID, msg.Role, msg.Content, Marshal_Tool_Calls(msg.Tool_Calls), msg.Tool_Call_ID); err != nil {
			log.Printf("[PIPELINE] Failed to save %s message: %v", msg.Role, err)
		}
	}
	if err := p.Store.SaveMessage(conversationID, "assistant", reply, "", ""); err != nil {
		log.Printf("[PIPELINE] Failed to save reply: %v", err)
	}
}

func replyText(response models.Provider_Response) string {
	text := response.Text()
	if text == "" {
		return "Sorry, I could not generate a response."
	}
	return text
}

func newConversationID() string {
	return fmt.Sprintf("conv_%d_%s", time.Now().UnixMilli(), strings.ReplaceAll(uuid.New().String(), "-", "")[:9])
}

// Marshal_Tool_Calls serializes tool calls for storage on an assistant
// message row.
func Marshal_Tool_Calls(calls []models.FunctionCall) string {
	if len(calls) == 0 {
		return ""
	}
	data, err := json.Marshal(calls)
	if err != nil {
		return ""
	}
	return string(data)
}
