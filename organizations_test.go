package amigo

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

func TestOrganizationGet(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/v1/"+testOrgID+"/organization/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Organization{ID: testOrgID, Name: "acme"})
	})
	client := newTestClient(t, srv)

	org, err := client.Organization.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if org.ID != testOrgID || org.Name != "acme" {
		t.Fatalf("unexpected organization: %+v", org)
	}
}

func TestOrganizationAgents(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/"+testOrgID+"/organization/agent" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("continuation_token"); got != "tok-abc" {
			t.Errorf("continuation_token = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(GetAgentsResponse{
			Agents:  []Agent{{ID: "agent-1", Name: "support"}},
			HasMore: true,
		})
	})
	client := newTestClient(t, srv)

	page, err := client.Organization.Agents(context.Background(), AgentListParams{
		PageParams: PageParams{ContinuationToken: "tok-abc"},
	})
	if err != nil {
		t.Fatalf("agents: %v", err)
	}
	if len(page.Agents) != 1 || !page.HasMore {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestOrganizationAgentVersions(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/"+testOrgID+"/organization/agent/agent-1/version" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(GetAgentVersionsResponse{
			Versions: []AgentVersion{{AgentID: "agent-1", Version: 3}},
		})
	})
	client := newTestClient(t, srv)

	page, err := client.Organization.AgentVersions(context.Background(), "agent-1", AgentVersionListParams{})
	if err != nil {
		t.Fatalf("agent versions: %v", err)
	}
	if len(page.Versions) != 1 || page.Versions[0].Version != 3 {
		t.Fatalf("unexpected page: %+v", page)
	}
}
