package amigo

import (
	"net/url"
	"strconv"
)

// Query parameter types for list endpoints. These stay hand-written (the
// generator only emits body/response models); the values methods produce
// the wire encoding.

// PageParams are the shared pagination controls.
type PageParams struct {
	Limit             int
	ContinuationToken string
	// SortBy entries use the +field / -field convention, e.g. "+created_at".
	SortBy []string
}

func (p PageParams) values() url.Values {
	v := url.Values{}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.ContinuationToken != "" {
		v.Set("continuation_token", p.ContinuationToken)
	}
	for _, s := range p.SortBy {
		v.Add("sort_by", s)
	}
	return v
}

// AgentListParams filter the agent listing.
type AgentListParams struct {
	PageParams
}

// AgentVersionListParams filter the agent-version listing.
type AgentVersionListParams struct {
	PageParams
}

// ConversationCreateParams select the response modality for a new
// conversation's event stream.
type ConversationCreateParams struct {
	ResponseFormat MessageFormat
}

func (p ConversationCreateParams) values() url.Values {
	v := url.Values{}
	if p.ResponseFormat != "" {
		v.Set("response_format", string(p.ResponseFormat))
	}
	return v
}

// ConversationInteractParams select the request and response modalities for
// one interaction.
type ConversationInteractParams struct {
	RequestFormat  MessageFormat
	ResponseFormat MessageFormat
}

func (p ConversationInteractParams) values() url.Values {
	v := url.Values{}
	if p.RequestFormat != "" {
		v.Set("request_format", string(p.RequestFormat))
	}
	if p.ResponseFormat != "" {
		v.Set("response_format", string(p.ResponseFormat))
	}
	return v
}

// ConversationListParams filter the conversation listing.
type ConversationListParams struct {
	PageParams
	ServiceID []string
}

func (p ConversationListParams) values() url.Values {
	v := p.PageParams.values()
	for _, id := range p.ServiceID {
		v.Add("service_id", id)
	}
	return v
}

// MessageListParams filter the message listing of one conversation.
type MessageListParams struct {
	PageParams
}

// UserListParams filter the user listing.
type UserListParams struct {
	PageParams
	UserID []string
	Email  []string
}

func (p UserListParams) values() url.Values {
	v := p.PageParams.values()
	for _, id := range p.UserID {
		v.Add("user_id", id)
	}
	for _, email := range p.Email {
		v.Add("email", email)
	}
	return v
}
