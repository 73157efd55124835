package services

import (
  "bytes"
  "context"
  "encoding/json"
  "fmt"
  "io"
  "net/http"
  "time"

  "github.com/chadfit/chad-backend/internal/logger"
  "github.com/chadfit/chad-backend/internal/utils"
)

// AIClient is the process-wide handle on the completion service. It is
// constructed once in main and passed to every service that needs it. A turn
// makes at most two calls: the conversational reply and the detached
// preference extraction.
type AIClient interface {
  Chat(ctx context.Context, systemPrompt string, history []AIMessage, opts AIOptions) (string, error)
}

type AIMessage struct {
  Role    string `json:"role"`
  Content string `json:"content"`
}

type AIOptions struct {
  Temperature float64
  MaxTokens   int
  JSONMode    bool
}

type aiClient struct {
  log        *logger.Logger
  httpClient *http.Client
  apiKey     string
  baseURL    string
  chatModel  string
}

func NewAIClient(log *logger.Logger) (AIClient, error) {
  serviceLog := log.With("service", "AIClient")
  apiKey := utils.GetEnv("OPENAI_API_KEY", "", log)
  if apiKey == "" {
    return nil, fmt.Errorf("OPENAI_API_KEY is not set")
  }
  baseURL := utils.GetEnv("OPENAI_BASE_URL", "https://api.openai.com/v1", log)
  chatModel := utils.GetEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini", log)
  timeoutSec := utils.GetEnvAsInt("OPENAI_TIMEOUT_SECONDS", 60, log)
  return &aiClient{
    log:        serviceLog,
    httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
    apiKey:     apiKey,
    baseURL:    baseURL,
    chatModel:  chatModel,
  }, nil
}

type aiHTTPError struct {
  StatusCode int
  Body       string
}

func (e *aiHTTPError) Error() string {
  return fmt.Sprintf("openai http %d: %s", e.StatusCode, e.Body)
}

type chatCompletionRequest struct {
  Model          string           `json:"model"`
  Messages       []AIMessage      `json:"messages"`
  Temperature    float64          `json:"temperature"`
  MaxTokens      int              `json:"max_tokens,omitempty"`
  ResponseFormat *responseFormat  `json:"response_format,omitempty"`
}

type responseFormat struct {
  Type string `json:"type"`
}

type chatCompletionResponse struct {
  Choices []struct {
    Message struct {
      Content string `json:"content"`
    } `json:"message"`
  } `json:"choices"`
}

// Chat performs exactly one request; a failed completion is surfaced to the
// caller, never retried here.
func (c *aiClient) Chat(ctx context.Context, systemPrompt string, history []AIMessage, opts AIOptions) (string, error) {
  messages := make([]AIMessage, 0, len(history)+1)
  messages = append(messages, AIMessage{Role: "system", Content: systemPrompt})
  messages = append(messages, history...)

  reqBody := chatCompletionRequest{
    Model:       c.chatModel,
    Messages:    messages,
    Temperature: opts.Temperature,
    MaxTokens:   opts.MaxTokens,
  }
  if opts.JSONMode {
    reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
  }

  var buf bytes.Buffer
  if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
    return "", err
  }

  req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", &buf)
  if err != nil {
    return "", err
  }
  req.Header.Set("Authorization", "Bearer "+c.apiKey)
  req.Header.Set("Content-Type", "application/json")

  resp, err := c.httpClient.Do(req)
  if err != nil {
    return "", err
  }
  raw, readErr := io.ReadAll(resp.Body)
  _ = resp.Body.Close()
  if readErr != nil {
    return "", readErr
  }
  if resp.StatusCode < 200 || resp.StatusCode >= 300 {
    return "", &aiHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
  }

  var parsed chatCompletionResponse
  if err := json.Unmarshal(raw, &parsed); err != nil {
    return "", fmt.Errorf("openai decode error: %w", err)
  }
  if len(parsed.Choices) == 0 {
    return "", fmt.Errorf("openai returned no choices")
  }
  return parsed.Choices[0].Message.Content, nil
}
