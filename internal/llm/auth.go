package llm

import (
	"fmt"
	"net/http"

	"lapados-backend/internal/config"
	logger "lapados-backend/pkg/logging"
)

// AuthenticateHuggingFace verifies the configured token with a whoami call.
// Startup continues without image generation when it fails.
func AuthenticateHuggingFace(cfg *config.APIConfig) error {
	req, err := http.NewRequest("GET", "https://huggingface.co/api/whoami", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+cfg.THIRD_PARTY.HFToken)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach Hugging Face API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("authentication failed: status %d", resp.StatusCode)
	}

	logger.Info("authenticated with Hugging Face API")
	return nil
}
