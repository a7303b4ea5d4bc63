package amigo

import (
	"context"
	"net/http"
)

// OrganizationClient exposes the organization and agent endpoints.
type OrganizationClient struct {
	client *Client
}

// Get returns the details of the configured organization.
func (c *OrganizationClient) Get(ctx context.Context) (*Organization, error) {
	req, err := c.client.newJSONRequest(ctx, http.MethodGet, c.client.orgPath("/organization/"), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.send(req)
	if err != nil {
		return nil, err
	}
	var org Organization
	if err := decodeJSON(resp, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

// Agents returns the organization's agents.
func (c *OrganizationClient) Agents(ctx context.Context, params AgentListParams) (*GetAgentsResponse, error) {
	path := appendQuery(c.client.orgPath("/organization/agent"), params.values())
	req, err := c.client.newJSONRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.send(req)
	if err != nil {
		return nil, err
	}
	var payload GetAgentsResponse
	if err := decodeJSON(resp, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// AgentVersions returns the published versions of one agent.
func (c *OrganizationClient) AgentVersions(ctx context.Context, agentID string, params AgentVersionListParams) (*GetAgentVersionsResponse, error) {
	path := appendQuery(c.client.orgPath("/organization/agent/%s/version", agentID), params.values())
	req, err := c.client.newJSONRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.send(req)
	if err != nil {
		return nil, err
	}
	var payload GetAgentVersionsResponse
	if err := decodeJSON(resp, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
