package services

import (
  "context"
  "sync"

  "github.com/chadfit/chad-backend/internal/logger"
)

func loggerForTest() (*logger.Logger, error) {
  return logger.New("production")
}

type chatCall struct {
  systemPrompt string
  history      []AIMessage
  opts         AIOptions
}

// stubAIClient replays canned replies. When more calls arrive than replies
// were queued, the last reply repeats. Safe for the detached preference
// goroutine to hit concurrently.
type stubAIClient struct {
  mu      sync.Mutex
  replies []string
  err     error
  calls   []chatCall
}

func (s *stubAIClient) Chat(ctx context.Context, systemPrompt string, history []AIMessage, opts AIOptions) (string, error) {
  s.mu.Lock()
  defer s.mu.Unlock()
  s.calls = append(s.calls, chatCall{systemPrompt: systemPrompt, history: history, opts: opts})
  if s.err != nil {
    return "", s.err
  }
  if len(s.replies) == 0 {
    return "", nil
  }
  reply := s.replies[0]
  if len(s.replies) > 1 {
    s.replies = s.replies[1:]
  }
  return reply, nil
}

func (s *stubAIClient) callCount() int {
  s.mu.Lock()
  defer s.mu.Unlock()
  return len(s.calls)
}
