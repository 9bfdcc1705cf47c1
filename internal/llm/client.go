// Package llm talks to the external model services: an Ollama instance for
// the anti-doping chat assistant and the Hugging Face inference API for
// image generation.
package llm

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client defines the interface for the chat assistant backend.
type Client interface {
	GenerateResponse(prompt string) (string, error)
}

type ollamaClient struct {
	url    string
	client *http.Client
}

// NewClient initializes an Ollama-backed client. An empty URL yields the
// mock client so the API keeps answering without a model server.
func NewClient(url string) Client {
	if url == "" {
		return &mockClient{}
	}
	return &ollamaClient{
		url: url,
		client: &http.Client{
			Timeout: 600 * time.Second, // model responses can take a while
		},
	}
}

func (c *ollamaClient) GenerateResponse(prompt string) (string, error) {
	requestBody, _ := json.Marshal(map[string]interface{}{
		"model":  "mistral",
		"prompt": prompt,
		"stream": true,
	})

	req, err := http.NewRequest("POST", c.url, bytes.NewBuffer(requestBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	// Ollama streams one JSON object per line; concatenate the fragments.
	var full bytes.Buffer
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var chunk struct {
			Response string `json:"response"`
			Done     bool   `json:"done"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &chunk); err != nil {
			continue
		}
		full.WriteString(chunk.Response)
		if chunk.Done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return full.String(), nil
}

// mockClient answers with a canned response. Used when no Ollama URL is
// configured and in tests.
type mockClient struct{}

func (m *mockClient) GenerateResponse(prompt string) (string, error) {
	return fmt.Sprintf("This is a placeholder assistant response to: %q. "+
		"Configure an Ollama endpoint to enable real answers.", prompt), nil
}
