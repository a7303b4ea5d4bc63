package amigo

import (
	"context"
	"net/http"
)

// RolesClient exposes the role endpoints.
type RolesClient struct {
	client *Client
}

// List returns the organization's roles.
func (c *RolesClient) List(ctx context.Context) (*GetRolesResponse, error) {
	req, err := c.client.newJSONRequest(ctx, http.MethodGet, c.client.orgPath("/role/"), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.send(req)
	if err != nil {
		return nil, err
	}
	var payload GetRolesResponse
	if err := decodeJSON(resp, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Create adds a new role to the organization.
func (c *RolesClient) Create(ctx context.Context, body CreateRoleRequest) (*CreateRoleResponse, error) {
	req, err := c.client.newJSONRequest(ctx, http.MethodPost, c.client.orgPath("/role/"), body)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.send(req)
	if err != nil {
		return nil, err
	}
	var payload CreateRoleResponse
	if err := decodeJSON(resp, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
