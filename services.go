package amigo

import (
	"context"
	"net/http"
)

// ServicesClient exposes the service endpoints.
type ServicesClient struct {
	client *Client
}

// List returns the organization's services.
func (c *ServicesClient) List(ctx context.Context) (*GetServicesResponse, error) {
	req, err := c.client.newJSONRequest(ctx, http.MethodGet, c.client.orgPath("/service/"), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.send(req)
	if err != nil {
		return nil, err
	}
	var payload GetServicesResponse
	if err := decodeJSON(resp, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
