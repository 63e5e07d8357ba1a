// Package common_tools provides the tools the chat pipeline can invoke.
//
// Available tools:
//   - Search_Web: Search the web using DuckDuckGo's HTML endpoint
//   - Generate_Image: Generate images using Gemini's image generation model
//
// Each tool is defined in its own file for better organization and maintainability.
package common_tools
