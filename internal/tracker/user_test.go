package tracker

import (
	"context"
	"strings"
	"testing"
)

func TestCreateUser_RoundTrip(t *testing.T) {
	tr := newTestEnv(t).tr

	resp, err := tr.Users.CreateUser(context.Background(), CreateUserRequest{Name: "alice", DisplayName: "Alice A."})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	user, err := tr.Users.DescribeUser(resp.ID)
	if err != nil {
		t.Fatalf("DescribeUser: %v", err)
	}
	if user.ID != resp.ID || user.Name != "alice" || user.DisplayName != "Alice A." {
		t.Errorf("DescribeUser returned %+v", user)
	}
}

func TestCreateUser_Validation(t *testing.T) {
	tr := newTestEnv(t).tr
	mustCreateUser(t, tr, "alice")

	tests := []struct {
		name string
		req  CreateUserRequest
	}{
		{"duplicate name", CreateUserRequest{Name: "alice"}},
		{"name too long", CreateUserRequest{Name: strings.Repeat("a", 65)}},
		{"display name too long", CreateUserRequest{Name: "bob", DisplayName: strings.Repeat("b", 65)}},
		{"empty name", CreateUserRequest{DisplayName: "nobody"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tr.Users.CreateUser(context.Background(), tt.req)
			assertErrorKind(t, err, &ValidationError{})
		})
	}
	if got := len(tr.Users.ListUsers()); got != 1 {
		t.Errorf("want 1 user, got %d", got)
	}
}

func TestUpdateUser(t *testing.T) {
	tr := newTestEnv(t).tr
	ctx := context.Background()
	id := mustCreateUser(t, tr, "alice")

	if _, err := tr.Users.UpdateUser(ctx, id, UpdateUserRequest{DisplayName: "Al"}); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	user, _ := tr.Users.DescribeUser(id)
	if user.DisplayName != "Al" || user.Name != "alice" {
		t.Errorf("after update: %+v", user)
	}

	_, err := tr.Users.UpdateUser(ctx, id, UpdateUserRequest{DisplayName: strings.Repeat("x", 65)})
	assertErrorKind(t, err, &ValidationError{})

	_, err = tr.Users.UpdateUser(ctx, "missing", UpdateUserRequest{DisplayName: "x"})
	assertErrorKind(t, err, &NotFoundError{})
}

func TestDescribeUser_NotFound(t *testing.T) {
	tr := newTestEnv(t).tr
	_, err := tr.Users.DescribeUser("missing")
	assertErrorKind(t, err, &NotFoundError{})
}

func TestGetUserTeams(t *testing.T) {
	tr := newTestEnv(t).tr
	ctx := context.Background()
	alice := mustCreateUser(t, tr, "alice")
	bob := mustCreateUser(t, tr, "bob")

	eng := mustCreateTeam(t, tr, "Eng", alice)
	mustCreateTeam(t, tr, "Ops", bob)
	design := mustCreateTeam(t, tr, "Design", bob)
	if _, err := tr.Teams.AddUsersToTeam(ctx, design, MembershipRequest{Users: []string{alice}}); err != nil {
		t.Fatalf("AddUsersToTeam: %v", err)
	}

	teams, err := tr.Users.GetUserTeams(alice)
	if err != nil {
		t.Fatalf("GetUserTeams: %v", err)
	}
	if len(teams) != 2 || teams[0].ID != eng || teams[1].ID != design {
		t.Errorf("GetUserTeams = %+v", teams)
	}
	if teams[0].Name != "Eng" || teams[0].Description != "Eng team" {
		t.Errorf("team summary = %+v", teams[0])
	}

	// Membership changes are visible without reloading.
	if _, err := tr.Teams.RemoveUsersFromTeam(ctx, design, MembershipRequest{Users: []string{alice}}); err != nil {
		t.Fatalf("RemoveUsersFromTeam: %v", err)
	}
	teams, _ = tr.Users.GetUserTeams(alice)
	if len(teams) != 1 {
		t.Errorf("want 1 team after removal, got %d", len(teams))
	}

	carol := mustCreateUser(t, tr, "carol")
	teams, err = tr.Users.GetUserTeams(carol)
	if err != nil {
		t.Fatalf("GetUserTeams: %v", err)
	}
	if teams == nil || len(teams) != 0 {
		t.Errorf("want empty non-nil list, got %#v", teams)
	}

	_, err = tr.Users.GetUserTeams("missing")
	assertErrorKind(t, err, &NotFoundError{})
}
