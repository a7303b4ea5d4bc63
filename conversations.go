package amigo

import (
	"context"
	"net/http"
)

// ConversationsClient exposes the conversation lifecycle: create and
// interact stream NDJSON events, the rest are plain JSON calls.
type ConversationsClient struct {
	client *Client
}

// Create starts a conversation against a service and returns the event
// stream. The first useful event is conversation-created; the opening
// agent message streams as new-message fragments.
func (c *ConversationsClient) Create(ctx context.Context, body CreateConversationRequest, params ConversationCreateParams) (*EventStream, error) {
	path := appendQuery(c.client.orgPath("/conversation/"), params.values())
	req, err := c.client.newJSONRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	return c.client.openEventStream(req)
}

// Interact sends a user message and returns the event stream of the
// agent's reply, terminated by interaction-complete.
func (c *ConversationsClient) Interact(ctx context.Context, conversationID string, body InteractWithConversationRequest, params ConversationInteractParams) (*EventStream, error) {
	path := appendQuery(c.client.orgPath("/conversation/%s/interact", conversationID), params.values())
	req, err := c.client.newJSONRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	return c.client.openEventStream(req)
}

// Finish closes a conversation. The service converges asynchronously, so
// callers finishing a just-completed conversation should tolerate
// IsConflict / IsNotFound errors.
func (c *ConversationsClient) Finish(ctx context.Context, conversationID string) error {
	req, err := c.client.newJSONRequest(ctx, http.MethodPost, c.client.orgPath("/conversation/%s/finish/", conversationID), nil)
	if err != nil {
		return err
	}
	resp, err := c.client.send(req)
	if err != nil {
		return err
	}
	drainAndClose(resp.Body)
	return nil
}

// List returns the organization's conversations.
func (c *ConversationsClient) List(ctx context.Context, params ConversationListParams) (*GetConversationsResponse, error) {
	path := appendQuery(c.client.orgPath("/conversation/"), params.values())
	req, err := c.client.newJSONRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.send(req)
	if err != nil {
		return nil, err
	}
	var payload GetConversationsResponse
	if err := decodeJSON(resp, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Messages returns the messages of one conversation.
func (c *ConversationsClient) Messages(ctx context.Context, conversationID string, params MessageListParams) (*GetConversationMessagesResponse, error) {
	path := appendQuery(c.client.orgPath("/conversation/%s/messages/", conversationID), params.values())
	req, err := c.client.newJSONRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.send(req)
	if err != nil {
		return nil, err
	}
	var payload GetConversationMessagesResponse
	if err := decodeJSON(resp, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// RecommendResponses suggests user replies for an interaction.
func (c *ConversationsClient) RecommendResponses(ctx context.Context, conversationID, interactionID string) (*RecommendResponsesResponse, error) {
	path := c.client.orgPath("/conversation/%s/interaction/%s/recommend_responses", conversationID, interactionID)
	req, err := c.client.newJSONRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.send(req)
	if err != nil {
		return nil, err
	}
	var payload RecommendResponsesResponse
	if err := decodeJSON(resp, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// InteractionInsights returns the analysis of one interaction.
func (c *ConversationsClient) InteractionInsights(ctx context.Context, conversationID, interactionID string) (*InteractionInsightsResponse, error) {
	path := c.client.orgPath("/conversation/%s/interaction/%s/insights", conversationID, interactionID)
	req, err := c.client.newJSONRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.send(req)
	if err != nil {
		return nil, err
	}
	var payload InteractionInsightsResponse
	if err := decodeJSON(resp, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// MessageSource returns a short-lived URL for a voice message's audio.
func (c *ConversationsClient) MessageSource(ctx context.Context, conversationID, messageID string) (*GetMessageSourceResponse, error) {
	path := c.client.orgPath("/conversation/%s/messages/%s/source", conversationID, messageID)
	req, err := c.client.newJSONRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.send(req)
	if err != nil {
		return nil, err
	}
	var payload GetMessageSourceResponse
	if err := decodeJSON(resp, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GenerateStarters asks the service for conversation openers.
func (c *ConversationsClient) GenerateStarters(ctx context.Context, body GenerateConversationStarterRequest) (*GenerateConversationStarterResponse, error) {
	req, err := c.client.newJSONRequest(ctx, http.MethodPost, c.client.orgPath("/conversation/conversation_starter"), body)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.send(req)
	if err != nil {
		return nil, err
	}
	var payload GenerateConversationStarterResponse
	if err := decodeJSON(resp, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
