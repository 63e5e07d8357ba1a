package aurora

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"

	models "github.com/luxbin-chain/aurora/models"
)

//go:embed schemas/cached_schemas/*.json
var schemaFiles embed.FS

// Provider is a chat-completion backend. Generate sends the conversation,
// plus any tool declarations the provider may call, and returns the model's
// reply. An error means the provider was unavailable for this attempt
// (missing key, network failure, non-2xx status, malformed reply) and the
// pipeline should move on to the next provider.
type Provider interface {
	Name() string
	Model_ID() string
	Generate(ctx context.Context, conversation []models.Chat_Message, tools []models.FunctionDeclaration) (models.Provider_Response, error)
}

// Create_Tool takes a function, finds its generated JSON schema in the
// embedded cache, and returns a FunctionDeclaration wired to that function.
func Create_Tool(fn interface{}) (models.FunctionDeclaration, error) {
	fnValue := reflect.ValueOf(fn)
	if fnValue.Kind() != reflect.Func {
		return models.FunctionDeclaration{}, errors.New("input must be a function")
	}

	// Get the function name, e.g. "Search_Web" from "package.Search_Web"
	fullName := runtime.FuncForPC(fnValue.Pointer()).Name()
	lastDot := strings.LastIndex(fullName, ".")
	funcName := fullName
	if lastDot != -1 {
		funcName = fullName[lastDot+1:]
	}

	schemaPath := filepath.Join("schemas", "cached_schemas", funcName+".json")

	schemaBytes, err := schemaFiles.ReadFile(schemaPath)
	if err != nil {
		return models.FunctionDeclaration{}, fmt.Errorf("failed to read embedded schema file '%s': %w", schemaPath, err)
	}

	// The gen_schema tool outputs the schema for one function per file.
	var funcDecl models.FunctionDeclaration
	err = json.Unmarshal(schemaBytes, &funcDecl)
	if err != nil {
		return models.FunctionDeclaration{}, fmt.Errorf("failed to unmarshal schema from '%s': %w", schemaPath, err)
	}

	tool := models.FunctionDeclaration{
		Name:        funcDecl.Name,
		Description: funcDecl.Description,
		Parameters:  funcDecl.Parameters,
		Callable:    fn,
	}

	return tool, nil
}

func Create_Tools(fns []interface{}) ([]models.FunctionDeclaration, error) {
	tools := []models.FunctionDeclaration{}
	for _, fn := range fns {
		tool, err := Create_Tool(fn)
		if err != nil {
			return nil, err
		}
		tools = append(tools, tool)
	}
	return tools, nil
}
