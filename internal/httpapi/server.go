// Package httpapi exposes the cohort operations as a JSON API for the page
// layer. Identity comes from a bearer token issued by the auth collaborator.
package httpapi

import (
	"net/http"

	"github.com/akyairhashvil/cohortops/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Config struct {
	JWTSecret   string
	Issuer      string
	CORSOrigins []string
}

type Server struct {
	svc     *service.Services
	secret  []byte
	issuer  string
	origins []string
	log     *zap.Logger
}

func New(svc *service.Services, cfg Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		svc:     svc,
		secret:  []byte(cfg.JWTSecret),
		issuer:  cfg.Issuer,
		origins: cfg.CORSOrigins,
		log:     log.Named("http"),
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(s.log), corsMiddleware(s.origins))

	engine.GET("/healthz", func(g *gin.Context) {
		g.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/", s.identity())
	admin := api.Group("/", adminOnly())

	api.GET("/me", s.getMe)
	api.PATCH("/me", s.updateMe)
	api.GET("/members", s.listMembers)
	api.GET("/members/:id/streak", s.getStreak)
	api.GET("/members/:id/engagement", s.getEngagement)
	api.GET("/mood", s.getMood)

	api.GET("/sprints", s.listSprints)
	api.GET("/sprints/active", s.getActiveSprint)
	api.GET("/sprints/:id", s.getSprint)
	admin.POST("/sprints", s.createSprint)
	admin.POST("/sprints/:id/activate", s.activateSprint)

	api.PUT("/sprints/:id/submission", s.putSubmission)
	api.GET("/sprints/:id/submission", s.getSubmission)
	api.GET("/sprints/:id/status", s.getSprintStatus)

	api.POST("/sprints/:id/pairings", s.requestPairing)
	admin.POST("/sprints/:id/pairings/round", s.generateRound)
	api.GET("/sprints/:id/pairings/current", s.currentPairing)
	api.GET("/members/:id/pairings", s.pairingHistory)
	api.POST("/pairings/:id/schedule", s.schedulePairing)
	api.POST("/pairings/:id/complete", s.completePairing)
	api.POST("/pairings/:id/skip", s.skipPairing)

	api.GET("/sprints/:id/tasks", s.listTasks)
	api.POST("/tasks", s.createTask)
	api.PATCH("/tasks/:id", s.updateTask)
	api.PATCH("/tasks/:id/move", s.moveTask)
	api.DELETE("/tasks/:id", s.deleteTask)
	api.GET("/tasks/:id/comments", s.listComments)
	api.POST("/tasks/:id/comments", s.addComment)

	api.POST("/sprints/:id/high-fives", s.giveHighFive)
	api.GET("/sprints/:id/high-fives", s.listHighFives)
	api.POST("/sprints/:id/one-on-one", s.addOneOnOneNote)
	api.GET("/sprints/:id/one-on-one", s.listOneOnOneNotes)

	api.GET("/sprints/:id/report.pdf", s.sprintReport)
	return engine
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
