package sse

import (
  "encoding/json"
  "fmt"
  "net/http"
  "sync"
  "time"

  "github.com/google/uuid"

  "github.com/chadfit/chad-backend/internal/logger"
)

type Event string

const (
  EventChatBubble  Event = "ChatBubble"
  EventMealLogged  Event = "MealLogged"
  EventStatsUpdate Event = "StatsUpdate"
)

type Message struct {
  Event Event `json:"event"`
  Data  any   `json:"data,omitempty"`
}

type Client struct {
  ID       uuid.UUID
  UserID   uuid.UUID
  Outbound chan Message
  done     chan struct{}
}

// Hub fans events out to the connected clients of a user. Single-process:
// each backend instance only knows its own connections.
type Hub struct {
  mu      sync.RWMutex
  log     *logger.Logger
  clients map[uuid.UUID]map[*Client]bool
}

func NewHub(log *logger.Logger) *Hub {
  return &Hub{
    log:     log.With("component", "SSEHub"),
    clients: make(map[uuid.UUID]map[*Client]bool),
  }
}

func (h *Hub) Register(userID uuid.UUID) *Client {
  client := &Client{
    ID:       uuid.New(),
    UserID:   userID,
    Outbound: make(chan Message, 16),
    done:     make(chan struct{}),
  }
  h.mu.Lock()
  defer h.mu.Unlock()
  set, ok := h.clients[userID]
  if !ok {
    set = make(map[*Client]bool)
    h.clients[userID] = set
  }
  set[client] = true
  h.log.Debug("SSE client registered", "clientID", client.ID, "userID", userID)
  return client
}

func (h *Hub) Unregister(client *Client) {
  h.mu.Lock()
  defer h.mu.Unlock()
  if set, ok := h.clients[client.UserID]; ok {
    if _, present := set[client]; !present {
      return
    }
    delete(set, client)
    if len(set) == 0 {
      delete(h.clients, client.UserID)
    }
  }
  close(client.done)
  h.log.Debug("SSE client unregistered", "clientID", client.ID)
}

func (h *Hub) Publish(userID uuid.UUID, msg Message) {
  h.mu.RLock()
  defer h.mu.RUnlock()
  for client := range h.clients[userID] {
    select {
    case client.Outbound <- msg:
    default:
      h.log.Warn("Dropping SSE message; outbound buffer full", "clientID", client.ID)
    }
  }
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request, client *Client) {
  w.Header().Set("Content-Type", "text/event-stream")
  w.Header().Set("Cache-Control", "no-cache")
  w.Header().Set("Connection", "keep-alive")
  w.Header().Set("X-Accel-Buffering", "no")

  flusher, ok := w.(http.Flusher)
  if !ok {
    http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
    return
  }
  ctx := r.Context()

  heartbeat := time.NewTicker(15 * time.Second)
  defer heartbeat.Stop()

  for {
    select {
    case <-ctx.Done():
      return
    case <-client.done:
      return
    case <-heartbeat.C:
      fmt.Fprint(w, ": ping\n\n")
      flusher.Flush()
    case msg := <-client.Outbound:
      payload, err := json.Marshal(msg)
      if err != nil {
        h.log.Warn("Failed to marshal SSE message", "error", err)
        continue
      }
      fmt.Fprintf(w, "event: message\ndata: %s\n\n", payload)
      flusher.Flush()
    }
  }
}
