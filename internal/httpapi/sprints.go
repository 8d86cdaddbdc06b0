package httpapi

import (
	"net/http"
	"time"

	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/akyairhashvil/cohortops/internal/service"
	"github.com/akyairhashvil/cohortops/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type sprintRequest struct {
	Name      string     `json:"name" binding:"required"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

type submissionRequest struct {
	Goals        string   `json:"goals"`
	Deliverables string   `json:"deliverables"`
	Blockers     *string  `json:"blockers"`
	Reflection   *string  `json:"reflection"`
	Mood         *int     `json:"mood"`
	Hours        *float64 `json:"hours"`
}

func (s *Server) listSprints(g *gin.Context) {
	sprints, err := s.svc.Sprints.List(g.Request.Context())
	if err != nil {
		s.fail(g, err)
		return
	}
	if sprints == nil {
		sprints = []models.Sprint{}
	}
	g.JSON(http.StatusOK, sprints)
}

// getActiveSprint replies with a null sprint when none exists yet.
func (s *Server) getActiveSprint(g *gin.Context) {
	sprint, err := s.svc.Sprints.GetActive(g.Request.Context())
	if err != nil {
		s.fail(g, err)
		return
	}
	g.JSON(http.StatusOK, gin.H{"sprint": sprint})
}

func (s *Server) getSprint(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	sprint, err := s.svc.Sprints.Get(g.Request.Context(), id)
	if err != nil {
		s.fail(g, err)
		return
	}
	g.JSON(http.StatusOK, sprint)
}

func (s *Server) createSprint(g *gin.Context) {
	var req sprintRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		badRequest(g, "invalid request format")
		return
	}
	sprint, err := s.svc.Sprints.Create(g.Request.Context(), service.SprintInput{
		Name:      util.StripMarkup(req.Name),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		s.fail(g, err)
		return
	}
	g.JSON(http.StatusCreated, sprint)
}

func (s *Server) activateSprint(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	sprint, err := s.svc.Sprints.Activate(g.Request.Context(), id)
	if err != nil {
		s.fail(g, err)
		return
	}
	s.log.Info("sprint activated", zap.Int64("sprint_id", id), zap.Int64("by", currentMember(g).ID))
	g.JSON(http.StatusOK, sprint)
}

func (s *Server) putSubmission(g *gin.Context) {
	sprintID, ok := pathID(g, "id")
	if !ok {
		return
	}
	var req submissionRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		badRequest(g, "invalid request format")
		return
	}
	sub, err := s.svc.Submissions.Submit(g.Request.Context(), currentMember(g).ID, sprintID, service.SubmissionInput{
		Goals:        util.StripMarkup(req.Goals),
		Deliverables: util.StripMarkup(req.Deliverables),
		Blockers:     util.StripMarkupPtr(req.Blockers),
		Reflection:   util.StripMarkupPtr(req.Reflection),
		Mood:         req.Mood,
		Hours:        req.Hours,
	})
	if err != nil {
		s.fail(g, err)
		return
	}
	g.JSON(http.StatusOK, sub)
}

func (s *Server) getSubmission(g *gin.Context) {
	sprintID, ok := pathID(g, "id")
	if !ok {
		return
	}
	sub, err := s.svc.Submissions.Get(g.Request.Context(), currentMember(g).ID, sprintID)
	if err != nil {
		s.fail(g, err)
		return
	}
	g.JSON(http.StatusOK, sub)
}

type statusResponse struct {
	SprintID       int64                    `json:"sprint_id"`
	Members        []models.SubmissionState `json:"members"`
	Submitted      int                      `json:"submitted"`
	Missing        []models.Member          `json:"missing"`
	CompletionRate float64                  `json:"completion_rate"`
}

func (s *Server) getSprintStatus(g *gin.Context) {
	sprintID, ok := pathID(g, "id")
	if !ok {
		return
	}
	report, err := s.svc.Submissions.StatusForSprint(g.Request.Context(), sprintID)
	if err != nil {
		s.fail(g, err)
		return
	}
	missing := report.Missing()
	if missing == nil {
		missing = []models.Member{}
	}
	g.JSON(http.StatusOK, statusResponse{
		SprintID:       report.SprintID,
		Members:        report.Members,
		Submitted:      report.Submitted(),
		Missing:        missing,
		CompletionRate: report.CompletionRate(),
	})
}
