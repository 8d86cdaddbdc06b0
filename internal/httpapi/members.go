package httpapi

import (
	"net/http"

	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/akyairhashvil/cohortops/internal/service"
	"github.com/akyairhashvil/cohortops/internal/util"
	"github.com/gin-gonic/gin"
)

type profileRequest struct {
	DisplayName string  `json:"display_name" binding:"required"`
	Location    *string `json:"location"`
	Timezone    *string `json:"timezone"`
}

func (s *Server) getMe(g *gin.Context) {
	g.JSON(http.StatusOK, currentMember(g))
}

func (s *Server) updateMe(g *gin.Context) {
	var req profileRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		badRequest(g, "invalid request format")
		return
	}
	m, err := s.svc.Members.UpdateProfile(g.Request.Context(), currentMember(g).ID, service.ProfileInput{
		DisplayName: util.StripMarkup(req.DisplayName),
		Location:    util.StripMarkupPtr(req.Location),
		Timezone:    util.StripMarkupPtr(req.Timezone),
	})
	if err != nil {
		s.fail(g, err)
		return
	}
	g.JSON(http.StatusOK, m)
}

func (s *Server) listMembers(g *gin.Context) {
	members, err := s.svc.Members.List(g.Request.Context())
	if err != nil {
		s.fail(g, err)
		return
	}
	if members == nil {
		members = []models.Member{}
	}
	g.JSON(http.StatusOK, members)
}

func (s *Server) getStreak(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	ctx := g.Request.Context()
	if _, err := s.svc.Members.Get(ctx, id); err != nil {
		s.fail(g, err)
		return
	}
	streak, err := s.svc.Submissions.ComputeStreak(ctx, id)
	if err != nil {
		s.fail(g, err)
		return
	}
	g.JSON(http.StatusOK, gin.H{"member_id": id, "streak": streak})
}

func (s *Server) getEngagement(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	ctx := g.Request.Context()
	if _, err := s.svc.Members.Get(ctx, id); err != nil {
		s.fail(g, err)
		return
	}
	e, err := s.svc.Submissions.Engagement(ctx, id)
	if err != nil {
		s.fail(g, err)
		return
	}
	g.JSON(http.StatusOK, e)
}

func (s *Server) getMood(g *gin.Context) {
	memberID, ok := queryID(g, "member_id")
	if !ok {
		return
	}
	sprintID, ok := queryID(g, "sprint_id")
	if !ok {
		return
	}
	avg, err := s.svc.Submissions.AverageMood(g.Request.Context(), service.MoodScope{MemberID: memberID, SprintID: sprintID})
	if err != nil {
		s.fail(g, err)
		return
	}
	g.JSON(http.StatusOK, avg)
}
