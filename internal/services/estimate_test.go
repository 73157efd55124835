package services

import (
  "context"
  "errors"
  "strings"
  "testing"
)

func newEstimateService(t *testing.T, client AIClient) EstimateService {
  t.Helper()
  log, err := loggerForTest()
  if err != nil {
    t.Fatalf("logger: %v", err)
  }
  return NewEstimateService(log, client)
}

func TestEstimateMacros(t *testing.T) {
  client := &stubAIClient{replies: []string{`{"calories": 249.6, "protein": 30.55, "carbs": 0.04, "fats": 12.0}`}}
  svc := newEstimateService(t, client)

  est, err := svc.EstimateMacros(context.Background(), "chicken breast", 8, "oz")
  if err != nil {
    t.Fatalf("EstimateMacros: %v", err)
  }
  if est.Calories != 250 {
    t.Fatalf("calories = %d, want 250", est.Calories)
  }
  if est.Protein != 30.6 || est.Carbs != 0.0 || est.Fats != 12.0 {
    t.Fatalf("rounding off: %+v", est)
  }

  if len(client.calls) != 1 {
    t.Fatalf("expected exactly one completion call, got %d", len(client.calls))
  }
  opts := client.calls[0].opts
  if opts.Temperature != 0.3 || opts.MaxTokens != 150 {
    t.Fatalf("unexpected call options: %+v", opts)
  }
}

func TestEstimateMacrosStripsCodeFences(t *testing.T) {
  client := &stubAIClient{replies: []string{"```json\n{\"calories\": 100, \"protein\": 10, \"carbs\": 5, \"fats\": 2}\n```"}}
  svc := newEstimateService(t, client)

  est, err := svc.EstimateMacros(context.Background(), "apple", 1, "unit")
  if err != nil {
    t.Fatalf("EstimateMacros: %v", err)
  }
  if est.Calories != 100 || est.Protein != 10 {
    t.Fatalf("got %+v", est)
  }
}

func TestEstimateMacrosRejectsBadPayloads(t *testing.T) {
  cases := []struct {
    name  string
    reply string
  }{
    {"not json", "about 250 calories I'd say"},
    {"missing field", `{"calories": 100, "protein": 10, "carbs": 5}`},
    {"non-numeric field", `{"calories": "a lot", "protein": 10, "carbs": 5, "fats": 2}`},
  }
  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      svc := newEstimateService(t, &stubAIClient{replies: []string{tc.reply}})
      if _, err := svc.EstimateMacros(context.Background(), "mystery", 1, "unit"); err == nil {
        t.Fatalf("expected error for %q", tc.reply)
      }
    })
  }
}

func TestEstimateMacrosValidatesInput(t *testing.T) {
  client := &stubAIClient{replies: []string{`{"calories": 1, "protein": 1, "carbs": 1, "fats": 1}`}}
  svc := newEstimateService(t, client)

  cases := []struct {
    food string
    wt   float64
    unit string
  }{
    {"", 8, "oz"},
    {"chicken", 0, "oz"},
    {"chicken", -2, "oz"},
    {"chicken", 8, ""},
  }
  for _, tc := range cases {
    if _, err := svc.EstimateMacros(context.Background(), tc.food, tc.wt, tc.unit); err == nil {
      t.Fatalf("expected validation error for %+v", tc)
    }
  }
  if client.callCount() != 0 {
    t.Fatalf("invalid input should not reach the completion service")
  }
}

func TestEstimateMacrosDoesNotRetry(t *testing.T) {
  client := &stubAIClient{err: errors.New("upstream 500")}
  svc := newEstimateService(t, client)
  _, err := svc.EstimateMacros(context.Background(), "chicken", 8, "oz")
  if err == nil || !strings.Contains(err.Error(), "upstream 500") {
    t.Fatalf("expected upstream error, got %v", err)
  }
  if client.callCount() != 1 {
    t.Fatalf("expected a single attempt, got %d", client.callCount())
  }
}
