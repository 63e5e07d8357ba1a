package common_tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"google.golang.org/genai"
)

//go:generate ../../gen_schema -func=Generate_Image -file=generate_image.go -out=../schemas/cached_schemas

// Generate_Image generates an image themed for the Luxbin dashboard using
// Gemini's image generation model. The image is saved under images/ and a
// markdown link to it is returned.
func Generate_Image(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		prompt = "quantum particles forming blockchain blocks"
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	themed := fmt.Sprintf("Create an image related to Luxbin blockchain and AI: %s. Make it futuristic, quantum-themed, with elements of light and code.", prompt)

	result, err := client.Models.GenerateContent(
		ctx,
		"gemini-2.5-flash-image",
		genai.Text(themed),
		nil, // config
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate image: %w", err)
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", fmt.Errorf("no image generated in response")
	}

	for _, part := range result.Candidates[0].Content.Parts {
		if part.InlineData == nil {
			continue
		}

		imageBytes := part.InlineData.Data
		mimeType := part.InlineData.MIMEType

		extension := "png"
		if strings.Contains(mimeType, "jpeg") || strings.Contains(mimeType, "jpg") {
			extension = "jpg"
		} else if strings.Contains(mimeType, "webp") {
			extension = "webp"
		}

		timestamp := time.Now().Format("20060102_150405")
		filename := fmt.Sprintf("generated_image_%s.%s", timestamp, extension)

		imagesDir := "images"
		if err := os.MkdirAll(imagesDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create images directory: %w", err)
		}

		filePath := filepath.Join(imagesDir, filename)
		if err := os.WriteFile(filePath, imageBytes, 0644); err != nil {
			return "", fmt.Errorf("failed to save image: %w", err)
		}

		return fmt.Sprintf("/%s", filePath), nil
	}

	return "", fmt.Errorf("no image data in response")
}
