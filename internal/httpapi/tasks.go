package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/akyairhashvil/cohortops/internal/service"
	"github.com/akyairhashvil/cohortops/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type createTaskRequest struct {
	SprintID    *int64              `json:"sprint_id"`
	ParentID    *int64              `json:"parent_id"`
	Title       string              `json:"title" binding:"required"`
	Description *string             `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	AssigneeID  *int64              `json:"assignee_id"`
	DueDate     *time.Time          `json:"due_date"`
}

type updateTaskRequest struct {
	Title         *string              `json:"title"`
	Description   *string              `json:"description"`
	Priority      *models.TaskPriority `json:"priority"`
	AssigneeID    *int64               `json:"assignee_id"`
	ClearAssignee bool                 `json:"clear_assignee"`
	DueDate       *time.Time           `json:"due_date"`
	ClearDueDate  bool                 `json:"clear_due_date"`
}

type moveTaskRequest struct {
	Status   models.TaskStatus `json:"status" binding:"required"`
	Position *int              `json:"position"`
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

// listTasks returns the sprint's board, filtered by ?assignee= (a member id
// or "me") and ?q= (the search grammar of util.ParseSearchQuery).
func (s *Server) listTasks(g *gin.Context) {
	sprintID, ok := pathID(g, "id")
	if !ok {
		return
	}
	ctx := g.Request.Context()
	if _, err := s.svc.Sprints.Get(ctx, sprintID); err != nil {
		s.fail(g, err)
		return
	}
	filter := service.TaskFilter{Search: g.Query("q")}
	switch raw := g.Query("assignee"); raw {
	case "":
	case "me":
		filter.AssigneeID = util.Ptr(currentMember(g).ID)
	default:
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			badRequest(g, "invalid assignee")
			return
		}
		filter.AssigneeID = &id
	}
	var board models.Board
	var err error
	if filter.AssigneeID != nil {
		board, err = s.svc.Tasks.ListAssigned(ctx, &sprintID, *filter.AssigneeID)
		filter.AssigneeID = nil
	} else {
		board, err = s.svc.Tasks.List(ctx, &sprintID)
	}
	if err != nil {
		s.fail(g, err)
		return
	}
	if filter.Search != "" {
		members, err := s.svc.Members.List(ctx)
		if err != nil {
			s.fail(g, err)
			return
		}
		filter.Names = make(map[int64]string, len(members))
		for _, m := range members {
			filter.Names[m.ID] = m.DisplayName
		}
	}
	g.JSON(http.StatusOK, service.FilterBoard(board, filter))
}

func (s *Server) createTask(g *gin.Context) {
	var req createTaskRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		badRequest(g, "invalid request format")
		return
	}
	task, err := s.svc.Tasks.Create(g.Request.Context(), service.TaskInput{
		SprintID:    req.SprintID,
		ParentID:    req.ParentID,
		Title:       util.StripMarkup(req.Title),
		Description: util.StripMarkupPtr(req.Description),
		Status:      req.Status,
		Priority:    req.Priority,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
		CreatedBy:   currentMember(g).ID,
	})
	if err != nil {
		s.fail(g, err)
		return
	}
	g.JSON(http.StatusCreated, task)
}

func (s *Server) updateTask(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	var req updateTaskRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		badRequest(g, "invalid request format")
		return
	}
	task, err := s.svc.Tasks.Update(g.Request.Context(), id, service.TaskPatch{
		Title:         util.StripMarkupPtr(req.Title),
		Description:   util.StripMarkupPtr(req.Description),
		Priority:      req.Priority,
		AssigneeID:    req.AssigneeID,
		ClearAssignee: req.ClearAssignee,
		DueDate:       req.DueDate,
		ClearDueDate:  req.ClearDueDate,
	})
	if err != nil {
		s.fail(g, err)
		return
	}
	g.JSON(http.StatusOK, task)
}

// moveTask replies with the authoritative task, whose version lets the
// client reconcile its optimistic prediction.
func (s *Server) moveTask(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	var req moveTaskRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		badRequest(g, "invalid request format")
		return
	}
	task, err := s.svc.Tasks.Move(g.Request.Context(), id, service.MoveInput{Status: req.Status, Position: req.Position})
	if err != nil {
		s.fail(g, err)
		return
	}
	g.JSON(http.StatusOK, task)
}

// deleteTask is limited to the task's creator and admins.
func (s *Server) deleteTask(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	ctx := g.Request.Context()
	task, err := s.svc.Tasks.Get(ctx, id)
	if err != nil {
		s.fail(g, err)
		return
	}
	me := currentMember(g)
	if !me.IsAdmin() && (task.CreatedBy == nil || *task.CreatedBy != me.ID) {
		g.AbortWithStatusJSON(http.StatusForbidden, &ErrorResponse{Error: "only the creator or an admin may delete a task"})
		return
	}
	if err := s.svc.Tasks.Delete(ctx, id); err != nil {
		s.fail(g, err)
		return
	}
	s.log.Info("task deleted", zap.Int64("task_id", id), zap.Int64("by", me.ID))
	g.Status(http.StatusNoContent)
}

func (s *Server) listComments(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	comments, err := s.svc.Tasks.Comments(g.Request.Context(), id)
	if err != nil {
		s.fail(g, err)
		return
	}
	if comments == nil {
		comments = []models.TaskComment{}
	}
	g.JSON(http.StatusOK, comments)
}

func (s *Server) addComment(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	var req commentRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		badRequest(g, "invalid request format")
		return
	}
	c, err := s.svc.Tasks.AddComment(g.Request.Context(), id, currentMember(g).ID, util.StripMarkup(req.Content))
	if err != nil {
		s.fail(g, err)
		return
	}
	g.JSON(http.StatusCreated, c)
}
