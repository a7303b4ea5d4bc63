package amigo

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

func TestUserCreateInvited(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/"+testOrgID+"/user/invited" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body CreateInvitedUserRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body.Email != "ada@example.com" || body.RoleName != "DefaultUserRole" {
			t.Errorf("body = %+v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(CreateInvitedUserResponse{UserID: "user-9"})
	})
	client := newTestClient(t, srv)

	created, err := client.Users.CreateInvited(context.Background(), CreateInvitedUserRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		RoleName:  "DefaultUserRole",
	})
	if err != nil {
		t.Fatalf("create invited: %v", err)
	}
	if created.UserID != "user-9" {
		t.Fatalf("user id = %q", created.UserID)
	}
}

func TestUserUpdate(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/"+testOrgID+"/user/user-9" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body UpdateUserInfoRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.FirstName != "Augusta" {
			t.Errorf("body = %+v (%v)", body, err)
		}
	})
	client := newTestClient(t, srv)

	if err := client.Users.Update(context.Background(), "user-9", UpdateUserInfoRequest{FirstName: "Augusta"}); err != nil {
		t.Fatalf("update: %v", err)
	}
}

func TestUserListFilters(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/"+testOrgID+"/user/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if len(q["user_id"]) != 2 || q["user_id"][0] != "user-1" || q["user_id"][1] != "user-2" {
			t.Errorf("user_id = %v", q["user_id"])
		}
		if q.Get("email") != "ada@example.com" || q.Get("limit") != "25" {
			t.Errorf("query = %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(GetUsersResponse{
			Users: []User{{UserID: "user-1", Email: "ada@example.com"}},
		})
	})
	client := newTestClient(t, srv)

	page, err := client.Users.List(context.Background(), UserListParams{
		PageParams: PageParams{Limit: 25},
		UserID:     []string{"user-1", "user-2"},
		Email:      []string{"ada@example.com"},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Users) != 1 || page.Users[0].UserID != "user-1" {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestUserDelete(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/v1/"+testOrgID+"/user/user-9" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})
	client := newTestClient(t, srv)

	if err := client.Users.Delete(context.Background(), "user-9"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestUserDeleteMissing(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"User not found"}`))
	})
	client := newTestClient(t, srv)

	err := client.Users.Delete(context.Background(), "user-gone")
	if !IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}
