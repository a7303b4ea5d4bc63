package amigo

import (
	"context"
	"net/http"
)

// UsersClient exposes the user-management endpoints.
type UsersClient struct {
	client *Client
}

// CreateInvited invites a new user into the organization.
func (c *UsersClient) CreateInvited(ctx context.Context, body CreateInvitedUserRequest) (*CreateInvitedUserResponse, error) {
	req, err := c.client.newJSONRequest(ctx, http.MethodPost, c.client.orgPath("/user/invited"), body)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.send(req)
	if err != nil {
		return nil, err
	}
	var payload CreateInvitedUserResponse
	if err := decodeJSON(resp, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Update changes a user's profile fields.
func (c *UsersClient) Update(ctx context.Context, userID string, body UpdateUserInfoRequest) error {
	req, err := c.client.newJSONRequest(ctx, http.MethodPost, c.client.orgPath("/user/%s", userID), body)
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

// List returns the organization's users, optionally filtered by id or email.
func (c *UsersClient) List(ctx context.Context, params UserListParams) (*GetUsersResponse, error) {
	path := appendQuery(c.client.orgPath("/user/"), params.values())
	req, err := c.client.newJSONRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.send(req)
	if err != nil {
		return nil, err
	}
	var payload GetUsersResponse
	if err := decodeJSON(resp, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Delete removes a user from the organization.
func (c *UsersClient) Delete(ctx context.Context, userID string) error {
	req, err := c.client.newJSONRequest(ctx, http.MethodDelete, c.client.orgPath("/user/%s", userID), nil)
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
