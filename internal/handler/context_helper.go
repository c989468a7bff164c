package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eduflow-api/internal/middleware"
	"github.com/noah-isme/eduflow-api/internal/models"
	"github.com/noah-isme/eduflow-api/internal/scope"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// actorFromContext builds the scope actor from the request's JWT claims.
func actorFromContext(c *gin.Context) scope.Actor {
	claims := claimsFromContext(c)
	if claims == nil {
		return scope.Actor{}
	}
	return scope.Actor{
		Role:        claims.Role,
		Department:  claims.Department,
		Semester:    claims.Semester,
		Section:     claims.Section,
		Subjects:    claims.Subjects,
		DisplayName: claims.FullName,
	}
}
