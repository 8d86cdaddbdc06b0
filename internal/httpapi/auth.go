package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/akyairhashvil/cohortops/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const memberKey = "member"

// IdentityClaims is what the external auth collaborator signs.
type IdentityClaims struct {
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// identity resolves the bearer token to a member, creating the member on
// first access.
func (s *Server) identity() gin.HandlerFunc {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	parser := jwt.NewParser(opts...)
	return func(g *gin.Context) {
		header := g.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			g.AbortWithStatusJSON(http.StatusUnauthorized, &ErrorResponse{Error: "authorization header is missing"})
			return
		}
		claims := &IdentityClaims{}
		_, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
			return s.secret, nil
		})
		if err != nil {
			g.AbortWithStatusJSON(http.StatusUnauthorized, &ErrorResponse{Error: "token is expired or invalid"})
			return
		}
		member, err := s.svc.Members.EnsureMember(g.Request.Context(), service.Identity{
			ExternalID:  claims.Subject,
			DisplayName: claims.Name,
			Role:        models.Role(claims.Role),
		})
		if err != nil {
			if errors.Is(err, service.ErrValidation) {
				g.AbortWithStatusJSON(http.StatusUnauthorized, &ErrorResponse{Error: "invalid identity claims"})
				return
			}
			s.fail(g, err)
			return
		}
		g.Set(memberKey, member)
		g.Next()
	}
}

func adminOnly() gin.HandlerFunc {
	return func(g *gin.Context) {
		if !currentMember(g).IsAdmin() {
			g.AbortWithStatusJSON(http.StatusForbidden, &ErrorResponse{Error: "admin only"})
			return
		}
		g.Next()
	}
}

func currentMember(g *gin.Context) models.Member {
	v, ok := g.Get(memberKey)
	if !ok {
		return models.Member{}
	}
	m, _ := v.(models.Member)
	return m
}

// SignIdentity issues a token in the shape identity() accepts. The auth
// collaborator owns real issuance; this serves tests and local tooling.
func SignIdentity(secret []byte, issuer string, id service.Identity) (string, error) {
	if len(secret) == 0 {
		return "", fmt.Errorf("empty signing secret")
	}
	claims := IdentityClaims{
		Name: id.DisplayName,
		Role: string(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: id.ExternalID,
			Issuer:  issuer,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(g *gin.Context) {
		g.Next()
		fields := []zap.Field{
			zap.String("method", g.Request.Method),
			zap.String("route", g.FullPath()),
			zap.Int("status", g.Writer.Status()),
		}
		if m := currentMember(g); m.ID != 0 {
			fields = append(fields, zap.Int64("member_id", m.ID))
		}
		if g.Writer.Status() >= http.StatusInternalServerError {
			log.Warn("request", fields...)
			return
		}
		log.Debug("request", fields...)
	}
}
