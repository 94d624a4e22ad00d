package websocket

import (
	"encoding/json"
	"time"

	"github.com/jbrusey/llm-council/internal/council"
	"github.com/jbrusey/llm-council/internal/pkg/logger"
)

// envelope is the wire form of a progress notification.
type envelope struct {
	ConversationID string        `json:"conversation_id"`
	Event          council.Event `json:"event"`
	Timestamp      string        `json:"timestamp"`
}

// Notify implements council.Notifier: it broadcasts a progress event to the
// clients watching the conversation. Conversations nobody is watching are a
// no-op.
func (r *Registry) Notify(conversationID string, event council.Event) {
	handler := r.lookup(conversationID)
	if handler == nil || handler.ClientCount() == 0 {
		return
	}

	data, err := json.Marshal(envelope{
		ConversationID: conversationID,
		Event:          event,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		logger.Error("Failed to marshal council event for WebSocket broadcast",
			logger.String("error", err.Error()))
		return
	}
	handler.Broadcast(data)
}
