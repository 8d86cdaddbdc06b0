package service

import (
	"context"
	"strings"

	"github.com/akyairhashvil/cohortops/internal/database"
	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/akyairhashvil/cohortops/internal/util"
	"go.uber.org/zap"
)

// Identity is what the auth collaborator asserts about the caller.
type Identity struct {
	ExternalID  string
	DisplayName string
	Role        models.Role
}

type ProfileInput struct {
	DisplayName string
	Location    *string
	Timezone    *string
}

// Members is the membership collaborator boundary.
type Members struct {
	repo database.MemberRepository
	log  *zap.Logger
}

func NewMembers(repo database.MemberRepository, log *zap.Logger) *Members {
	return &Members{repo: repo, log: named(log, "members")}
}

// EnsureMember resolves the caller to a member, creating it on first access.
func (s *Members) EnsureMember(ctx context.Context, id Identity) (models.Member, error) {
	ext := strings.TrimSpace(id.ExternalID)
	if ext == "" {
		return models.Member{}, invalid("external_id", "is required")
	}
	if id.Role != "" && !id.Role.Valid() {
		return models.Member{}, invalid("role", "unknown role %q", id.Role)
	}
	name := strings.TrimSpace(id.DisplayName)
	m, err := s.repo.EnsureMember(ctx, database.MemberSeed{ExternalID: ext, DisplayName: name, Role: id.Role})
	if err != nil {
		return models.Member{}, err
	}
	if m.DisplayName == "" {
		// First access without a name: fall back to the external id.
		m, err = s.repo.UpdateMemberProfile(ctx, m.ID, database.MemberProfile{
			DisplayName: ext, Location: m.Location, Timezone: m.Timezone,
		})
	}
	return m, err
}

func (s *Members) UpdateProfile(ctx context.Context, memberID int64, in ProfileInput) (models.Member, error) {
	name := strings.TrimSpace(in.DisplayName)
	if name == "" {
		return models.Member{}, invalid("display_name", "must not be empty")
	}
	m, err := s.repo.UpdateMemberProfile(ctx, memberID, database.MemberProfile{
		DisplayName: name,
		Location:    util.OptionalText(in.Location),
		Timezone:    util.OptionalText(in.Timezone),
	})
	if err != nil {
		return models.Member{}, err
	}
	s.log.Debug("profile updated", zap.Int64("member_id", memberID))
	return m, nil
}

func (s *Members) List(ctx context.Context) ([]models.Member, error) {
	return s.repo.ListMembers(ctx)
}

func (s *Members) Get(ctx context.Context, id int64) (models.Member, error) {
	return s.repo.GetMember(ctx, id)
}

// IDs returns the ids of every cohort member, in list order.
func (s *Members) IDs(ctx context.Context) ([]int64, error) {
	members, err := s.repo.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	return ids, nil
}

func named(log *zap.Logger, name string) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log.Named(name)
}
