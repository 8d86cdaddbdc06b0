package httpapi

import (
	"fmt"
	"net/http"

	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/akyairhashvil/cohortops/internal/report"
	"github.com/akyairhashvil/cohortops/internal/util"
	"github.com/gin-gonic/gin"
)

type highFiveRequest struct {
	ToMemberID int64  `json:"to_member_id" binding:"required"`
	Message    string `json:"message" binding:"required"`
}

type noteRequest struct {
	Content string `json:"content" binding:"required"`
}

func (s *Server) giveHighFive(g *gin.Context) {
	sprintID, ok := pathID(g, "id")
	if !ok {
		return
	}
	var req highFiveRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		badRequest(g, "invalid request format")
		return
	}
	h, err := s.svc.Recognition.GiveHighFive(g.Request.Context(), currentMember(g).ID, req.ToMemberID, sprintID, util.StripMarkup(req.Message))
	if err != nil {
		s.fail(g, err)
		return
	}
	g.JSON(http.StatusCreated, h)
}

func (s *Server) listHighFives(g *gin.Context) {
	sprintID, ok := pathID(g, "id")
	if !ok {
		return
	}
	list, err := s.svc.Recognition.HighFives(g.Request.Context(), sprintID)
	if err != nil {
		s.fail(g, err)
		return
	}
	if list == nil {
		list = []models.HighFive{}
	}
	g.JSON(http.StatusOK, list)
}

func (s *Server) addOneOnOneNote(g *gin.Context) {
	sprintID, ok := pathID(g, "id")
	if !ok {
		return
	}
	var req noteRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		badRequest(g, "invalid request format")
		return
	}
	n, err := s.svc.Recognition.AddOneOnOneNote(g.Request.Context(), currentMember(g).ID, sprintID, util.StripMarkup(req.Content))
	if err != nil {
		s.fail(g, err)
		return
	}
	g.JSON(http.StatusCreated, n)
}

// listOneOnOneNotes only ever returns the caller's own notes.
func (s *Server) listOneOnOneNotes(g *gin.Context) {
	sprintID, ok := pathID(g, "id")
	if !ok {
		return
	}
	notes, err := s.svc.Recognition.OneOnOneNotes(g.Request.Context(), currentMember(g).ID, sprintID)
	if err != nil {
		s.fail(g, err)
		return
	}
	if notes == nil {
		notes = []models.OneOnOneNote{}
	}
	g.JSON(http.StatusOK, notes)
}

func (s *Server) sprintReport(g *gin.Context) {
	sprintID, ok := pathID(g, "id")
	if !ok {
		return
	}
	r, err := report.Build(g.Request.Context(), s.svc, sprintID)
	if err != nil {
		s.fail(g, err)
		return
	}
	g.Header("Content-Type", "application/pdf")
	g.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", util.ReportFileName(r.Sprint.ID, r.Sprint.Name)))
	if err := report.WritePDF(g.Writer, r); err != nil {
		s.fail(g, err)
	}
}
