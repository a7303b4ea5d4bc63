package amigo

import "encoding/json"

// EventType discriminates the NDJSON events emitted while creating or
// interacting with a conversation.
type EventType string

const (
	EventTypeConversationCreated  EventType = "conversation-created"
	EventTypeNewMessage           EventType = "new-message"
	EventTypeInteractionComplete  EventType = "interaction-complete"
	EventTypeUserMessageAvailable EventType = "user-message-available"
	EventTypeCurrentAgentAction   EventType = "current-agent-action"
	EventTypeError                EventType = "error"
)

// ConversationEvent is the decoded form of one NDJSON line. Which fields
// are populated depends on Type:
//
//   - conversation-created: ConversationID
//   - new-message: Message (an incremental text fragment)
//   - interaction-complete: InteractionID, MessageID, FullMessage
//   - user-message-available: MessageID, UserMessage
//   - current-agent-action: Action
//   - error: ErrorCode, ErrorMessage
type ConversationEvent struct {
	Type           EventType `json:"type"`
	ConversationID string    `json:"conversation_id,omitempty"`
	InteractionID  string    `json:"interaction_id,omitempty"`
	MessageID      string    `json:"message_id,omitempty"`
	Message        string    `json:"message,omitempty"`
	FullMessage    string    `json:"full_message,omitempty"`
	UserMessage    string    `json:"user_message,omitempty"`
	Action         string    `json:"action,omitempty"`
	ErrorCode      string    `json:"error_code,omitempty"`
	ErrorMessage   string    `json:"error_message,omitempty"`

	// Raw preserves the undecoded line for callers that need fields the
	// typed view does not carry.
	Raw json.RawMessage `json:"-"`
}

func parseConversationEvent(line []byte) (ConversationEvent, error) {
	var event ConversationEvent
	if err := json.Unmarshal(line, &event); err != nil {
		return ConversationEvent{}, err
	}
	event.Raw = append(json.RawMessage(nil), line...)
	return event, nil
}
