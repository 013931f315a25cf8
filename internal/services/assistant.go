package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/virtual-defence/vds-backend/internal/models"
	"github.com/virtual-defence/vds-backend/internal/repository"
)

// AssistantFailureReply is appended as the assistant's turn whenever the
// completion service fails or times out. The failure never surfaces to the
// caller as an error.
const AssistantFailureReply = "❌ Failed to get response."

// CompletionClient is the remote text-completion service: one prompt in,
// one reply out, over an authenticated request/response call.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CohereClient calls the Cohere chat endpoint.
type CohereClient struct {
	apiKey     string
	url        string
	model      string
	httpClient *http.Client
}

func NewCohereClient(apiKey, url, model string, timeout time.Duration) *CohereClient {
	return &CohereClient{
		apiKey: apiKey,
		url:    url,
		model:  model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type cohereRequest struct {
	Model   string `json:"model"`
	Message string `json:"message"`
}

type cohereResponse struct {
	Text string `json:"text"`
}

func (c *CohereClient) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(cohereRequest{Model: c.model, Message: prompt})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion service returned status %d", resp.StatusCode)
	}

	var out cohereResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.Text == "" {
		out.Text = "No response"
	}
	return out.Text, nil
}

// AssistantService runs the session-scoped chat log: append the user's turn,
// ask the completion service, append the assistant's turn.
type AssistantService struct {
	messages repository.ChatMessageRepository
	client   CompletionClient
	timeout  time.Duration
}

func NewAssistantService(messages repository.ChatMessageRepository, client CompletionClient, timeout time.Duration) *AssistantService {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &AssistantService{messages: messages, client: client, timeout: timeout}
}

// NewSession generates a fresh session identifier. Identifiers must not
// collide within a process lifetime; the uuid suffix covers calls landing
// on the same nanosecond.
func (s *AssistantService) NewSession() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixNano(), uuid.NewString()[:8])
}

// Send appends the user's message, then asks the completion service and
// appends its reply. A completion failure or timeout appends the fixed
// failure string instead; only store-write failures are returned.
func (s *AssistantService) Send(ctx context.Context, sessionID, userEmail, text string) (*models.ChatMessage, error) {
	userMsg := &models.ChatMessage{
		SessionID: sessionID,
		UserEmail: userEmail,
		Role:      models.RoleUser,
		Text:      text,
	}
	if err := s.messages.Append(ctx, userMsg); err != nil {
		return nil, err
	}

	completionCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.client.Complete(completionCtx, text)
	if err != nil {
		log.Printf("completion call failed for session %s: %v", sessionID, err)
		reply = AssistantFailureReply
	}

	assistantMsg := &models.ChatMessage{
		SessionID: sessionID,
		UserEmail: userEmail,
		Role:      models.RoleAssistant,
		Text:      reply,
	}
	if err := s.messages.Append(ctx, assistantMsg); err != nil {
		return nil, err
	}
	return assistantMsg, nil
}

// History returns one session's messages in render order.
func (s *AssistantService) History(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	return s.messages.BySession(ctx, sessionID)
}
