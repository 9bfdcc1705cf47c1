package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const stableDiffusionURL = "https://api-inference.huggingface.co/models/stabilityai/stable-diffusion-2"

// ImageGenerator produces illustration images for blog posts and
// infographics via the Hugging Face inference API.
type ImageGenerator struct {
	AccessToken string
	UploadsDir  string
}

// GenerateImage renders the prompt and stores the PNG under the uploads
// directory. It returns the public path relative to the uploads root.
func (g *ImageGenerator) GenerateImage(prompt string) (string, error) {
	if g.AccessToken == "" {
		return "", fmt.Errorf("missing Hugging Face API token")
	}

	payload, err := json.Marshal(map[string]interface{}{"inputs": prompt})
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequest("POST", stableDiffusionURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 120 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if resp.StatusCode != http.StatusOK || !strings.HasPrefix(contentType, "image") {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("image generation failed (status %d): %s", resp.StatusCode, body)
	}

	dir := filepath.Join(g.UploadsDir, "generated")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}

	name := fmt.Sprintf("image_%d.png", time.Now().UnixNano())
	imagePath := filepath.Join(dir, name)
	file, err := os.Create(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	return "generated/" + name, nil
}
