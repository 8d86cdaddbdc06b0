package database

import (
	"context"
	"errors"
	"testing"

	"github.com/akyairhashvil/cohortops/internal/models"
)

func TestEnsureMemberCreatesOnce(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)

	first, err := db.EnsureMember(ctx, MemberSeed{ExternalID: "gh|42", DisplayName: "Ada"})
	if err != nil {
		t.Fatalf("EnsureMember failed: %v", err)
	}
	if first.Role != models.RoleMember {
		t.Fatalf("expected default role member, got %q", first.Role)
	}
	again, err := db.EnsureMember(ctx, MemberSeed{ExternalID: "gh|42"})
	if err != nil {
		t.Fatalf("EnsureMember (again) failed: %v", err)
	}
	if again.ID != first.ID || again.DisplayName != "Ada" {
		t.Fatalf("expected same member with kept name, got %+v", again)
	}
	promoted, err := db.EnsureMember(ctx, MemberSeed{ExternalID: "gh|42", DisplayName: "Ada L.", Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("EnsureMember (promote) failed: %v", err)
	}
	if promoted.ID != first.ID || promoted.DisplayName != "Ada L." || !promoted.IsAdmin() {
		t.Fatalf("expected refreshed identity, got %+v", promoted)
	}
	members, err := db.ListMembers(ctx)
	if err != nil {
		t.Fatalf("ListMembers failed: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(members))
	}
}

func TestUpdateMemberProfile(t *testing.T) {
	db, members, _, _ := NewTestDataBuilder(t).WithMembers(1).Build()
	ctx := context.Background()

	tz := "Europe/Berlin"
	m, err := db.UpdateMemberProfile(ctx, members[0], MemberProfile{DisplayName: "Grace", Timezone: &tz})
	if err != nil {
		t.Fatalf("UpdateMemberProfile failed: %v", err)
	}
	if m.DisplayName != "Grace" || m.Timezone == nil || *m.Timezone != tz || m.Location != nil {
		t.Fatalf("unexpected profile %+v", m)
	}
	if _, err := db.UpdateMemberProfile(ctx, 999, MemberProfile{DisplayName: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := db.GetMember(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound from GetMember, got %v", err)
	}
	byExternal, err := db.GetMemberByExternalID(ctx, "member-1")
	if err != nil || byExternal.ID != members[0] {
		t.Fatalf("GetMemberByExternalID = %+v, %v", byExternal, err)
	}
}
