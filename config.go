package aurora

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/luxbin-chain/aurora/chain"
	"github.com/luxbin-chain/aurora/common_tools"
	models "github.com/luxbin-chain/aurora/models"
	"github.com/luxbin-chain/aurora/models/anthropic"
	"github.com/luxbin-chain/aurora/models/grok"
	"github.com/luxbin-chain/aurora/models/openai"
	"github.com/luxbin-chain/aurora/stores"
)

func init() {
	godotenv.Load()
}

// Config holds configuration for building a Pipeline
type Config struct {
	RPCURL     string
	Store      stores.MessageStore
	Budget     time.Duration
	Characters []Character
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		RPCURL: chain.DefaultRPCURL,
		Budget: DefaultBudget,
	}
}

// WithRPCURL sets the chain RPC endpoint
func (c *Config) WithRPCURL(url string) *Config {
	c.RPCURL = url
	return c
}

// WithStore sets the message store for the configuration
func (c *Config) WithStore(store stores.MessageStore) *Config {
	c.Store = store
	return c
}

// WithSQLiteStore sets a SQLite store with the specified database path
func (c *Config) WithSQLiteStore(dbPath string) *Config {
	store, err := stores.NewSQLiteStoreSimple(dbPath)
	if err != nil {
		panic("Failed to create SQLite store: " + err.Error())
	}
	c.Store = store
	return c
}

// WithPostgresStore sets a PostgreSQL store with the specified connection parameters
func (c *Config) WithPostgresStore(host, user, password, dbname string, port int) *Config {
	store, err := stores.NewPostgresStoreDefault(host, user, password, dbname, port)
	if err != nil {
		panic("Failed to create PostgreSQL store: " + err.Error())
	}
	c.Store = store
	return c
}

// WithBudget sets the overall per-request time budget
func (c *Config) WithBudget(budget time.Duration) *Config {
	c.Budget = budget
	return c
}

// WithCharacters sets the custom character overlays
func (c *Config) WithCharacters(characters []Character) *Config {
	c.Characters = characters
	return c
}

// New_Pipeline builds a Pipeline from the configuration and the
// environment. Providers without an API key in the environment stay
// nil and their slot in the fallback chain is skipped.
func New_Pipeline(config *Config) (*Pipeline, error) {
	if config == nil {
		config = NewConfig()
	}

	searchTool, err := Create_Tool(common_tools.Search_Web)
	if err != nil {
		return nil, fmt.Errorf("failed to load search tool schema: %w", err)
	}

	pipeline := &Pipeline{
		Chain:      chain.NewClient(config.RPCURL),
		Store:      config.Store,
		Tools:      []models.FunctionDeclaration{searchTool},
		Characters: config.Characters,
		Budget:     config.Budget,
	}

	if os.Getenv("GROK_API_KEY") != "" {
		pipeline.Grok = &grok.Grok_Model{}
	} else {
		log.Println("GROK_API_KEY not set, Grok provider disabled")
	}

	if os.Getenv("OPENAI_API_KEY") != "" {
		pipeline.OpenAI = &openai.OpenAI_Model{}
	} else {
		log.Println("OPENAI_API_KEY not set, OpenAI provider disabled")
	}

	if os.Getenv("ANTHROPIC_API_KEY") != "" {
		contractModel := &anthropic.Anthropic_Model{}
		pipeline.Contract = contractModel.Complete
	}

	if os.Getenv("GEMINI_API_KEY") != "" {
		pipeline.Images = common_tools.Generate_Image
	}

	if pipeline.Characters == nil {
		pipeline.Characters = Characters_From_Env()
	}

	return pipeline, nil
}

// Characters_From_Env loads custom character overlays from the
// LUXBIN_CHARACTERS environment variable (a JSON array).
func Characters_From_Env() []Character {
	raw := os.Getenv("LUXBIN_CHARACTERS")
	if raw == "" {
		return nil
	}
	var characters []Character
	if err := json.Unmarshal([]byte(raw), &characters); err != nil {
		log.Printf("Could not parse LUXBIN_CHARACTERS: %v", err)
		return nil
	}
	return characters
}
