package httpapi

import (
	"net/http"
	"time"

	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/akyairhashvil/cohortops/internal/util"
	"github.com/gin-gonic/gin"
)

type scheduleRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

type completeRequest struct {
	Notes string `json:"notes"`
}

// requestPairing is "Get New Match" for the caller.
func (s *Server) requestPairing(g *gin.Context) {
	sprintID, ok := pathID(g, "id")
	if !ok {
		return
	}
	ctx := g.Request.Context()
	ids, err := s.svc.Members.IDs(ctx)
	if err != nil {
		s.fail(g, err)
		return
	}
	p, err := s.svc.Pairing.Request(ctx, sprintID, currentMember(g).ID, ids)
	if err != nil {
		s.fail(g, err)
		return
	}
	g.JSON(http.StatusCreated, p)
}

func (s *Server) generateRound(g *gin.Context) {
	sprintID, ok := pathID(g, "id")
	if !ok {
		return
	}
	ctx := g.Request.Context()
	ids, err := s.svc.Members.IDs(ctx)
	if err != nil {
		s.fail(g, err)
		return
	}
	round, err := s.svc.Pairing.GenerateRound(ctx, sprintID, ids)
	if err != nil {
		s.fail(g, err)
		return
	}
	g.JSON(http.StatusCreated, round)
}

func (s *Server) currentPairing(g *gin.Context) {
	sprintID, ok := pathID(g, "id")
	if !ok {
		return
	}
	p, err := s.svc.Pairing.CurrentFor(g.Request.Context(), currentMember(g).ID, sprintID)
	if err != nil {
		s.fail(g, err)
		return
	}
	g.JSON(http.StatusOK, gin.H{"pairing": p})
}

func (s *Server) pairingHistory(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	ctx := g.Request.Context()
	if _, err := s.svc.Members.Get(ctx, id); err != nil {
		s.fail(g, err)
		return
	}
	history, err := s.svc.Pairing.History(ctx, id)
	if err != nil {
		s.fail(g, err)
		return
	}
	g.JSON(http.StatusOK, history)
}

// participant loads the pairing and checks the caller may change it.
func (s *Server) participant(g *gin.Context) (models.Pairing, bool) {
	id, ok := pathID(g, "id")
	if !ok {
		return models.Pairing{}, false
	}
	p, err := s.svc.Pairing.Get(g.Request.Context(), id)
	if err != nil {
		s.fail(g, err)
		return models.Pairing{}, false
	}
	me := currentMember(g)
	if !p.Involves(me.ID) && !me.IsAdmin() {
		g.AbortWithStatusJSON(http.StatusForbidden, &ErrorResponse{Error: "not your pairing"})
		return models.Pairing{}, false
	}
	return p, true
}

func (s *Server) schedulePairing(g *gin.Context) {
	p, ok := s.participant(g)
	if !ok {
		return
	}
	var req scheduleRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		badRequest(g, "invalid request format")
		return
	}
	out, err := s.svc.Pairing.Schedule(g.Request.Context(), p.ID, req.ScheduledAt)
	if err != nil {
		s.fail(g, err)
		return
	}
	g.JSON(http.StatusOK, out)
}

func (s *Server) completePairing(g *gin.Context) {
	p, ok := s.participant(g)
	if !ok {
		return
	}
	var req completeRequest
	if g.Request.ContentLength != 0 {
		if err := g.ShouldBindJSON(&req); err != nil {
			badRequest(g, "invalid request format")
			return
		}
	}
	out, err := s.svc.Pairing.MarkCompleted(g.Request.Context(), p.ID, util.StripMarkup(req.Notes))
	if err != nil {
		s.fail(g, err)
		return
	}
	g.JSON(http.StatusOK, out)
}

func (s *Server) skipPairing(g *gin.Context) {
	p, ok := s.participant(g)
	if !ok {
		return
	}
	out, err := s.svc.Pairing.MarkSkipped(g.Request.Context(), p.ID)
	if err != nil {
		s.fail(g, err)
		return
	}
	g.JSON(http.StatusOK, out)
}
