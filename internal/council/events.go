package council

// Progress event types streamed to the front-end while a council run is in
// flight.
const (
	EventStageStarted     = "stage_started"
	EventModelCompleted   = "model_completed"
	EventStageCompleted   = "stage_completed"
	EventCouncilCompleted = "council_completed"
	EventTitleGenerated   = "title_generated"
)

// Event is a single progress notification for a conversation.
type Event struct {
	Type          string   `json:"type"`
	Stage         int      `json:"stage,omitempty"`
	Model         string   `json:"model,omitempty"`
	Title         string   `json:"title,omitempty"`
	ResponseTime  *float64 `json:"response_time,omitempty"`
	FormattedTime *string  `json:"formatted_time,omitempty"`
}

// Notifier receives progress events for a conversation. Implementations must
// be safe for concurrent use; stage-1 and stage-2 model completions arrive
// from parallel goroutines.
type Notifier interface {
	Notify(conversationID string, event Event)
}
