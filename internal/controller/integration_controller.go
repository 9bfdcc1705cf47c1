package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lapados-backend/internal/llm"
	"lapados-backend/internal/mail"
)

// IntegrationController exposes the external-service endpoints: file
// upload, assistant chat, outbound mail and image generation.
type IntegrationController struct {
	llmClient  llm.Client
	imageGen   *llm.ImageGenerator
	mailer     mail.Mailer
	uploadsDir string
	maxSizeMB  int
}

func NewIntegrationController(llmClient llm.Client, imageGen *llm.ImageGenerator,
	mailer mail.Mailer, uploadsDir string, maxSizeMB int) *IntegrationController {
	return &IntegrationController{
		llmClient:  llmClient,
		imageGen:   imageGen,
		mailer:     mailer,
		uploadsDir: uploadsDir,
		maxSizeMB:  maxSizeMB,
	}
}

func (ctl *IntegrationController) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if ctl.maxSizeMB > 0 && file.Size > int64(ctl.maxSizeMB)*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("file exceeds %d MB", ctl.maxSizeMB)})
		return
	}

	// Client filenames are untrusted; keep only the extension.
	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := uuid.New().String() + ext
	if err := os.MkdirAll(ctl.uploadsDir, 0o755); err != nil {
		respondError(c, err)
		return
	}
	if err := c.SaveUploadedFile(file, filepath.Join(ctl.uploadsDir, name)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"file_url": "/uploads/" + name})
}

func (ctl *IntegrationController) InvokeLLM(c *gin.Context) {
	var req struct {
		Prompt             string          `json:"prompt"`
		ResponseJSONSchema json.RawMessage `json:"response_json_schema"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	prompt := req.Prompt
	if len(req.ResponseJSONSchema) > 0 {
		prompt = fmt.Sprintf("%s\n\nRespond with a single JSON object matching this schema:\n%s",
			req.Prompt, req.ResponseJSONSchema)
	}

	response, err := ctl.llmClient.GenerateResponse(prompt)
	if err != nil {
		respondError(c, err)
		return
	}

	if len(req.ResponseJSONSchema) > 0 {
		var obj map[string]interface{}
		if err := json.Unmarshal([]byte(response), &obj); err == nil {
			c.JSON(http.StatusOK, gin.H{"response": obj})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"response": response})
}

func (ctl *IntegrationController) SendEmail(c *gin.Context) {
	var req struct {
		To      string `json:"to"`
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.To == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to is required"})
		return
	}
	if err := ctl.mailer.Send(req.To, req.Subject, req.Body); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "email sent"})
}

func (ctl *IntegrationController) GenerateImage(c *gin.Context) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}
	path, err := ctl.imageGen.GenerateImage(req.Prompt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": "/uploads/" + path})
}
