package middlewares

import (
	"net/http"
	"strings"

	"github.com/croissanceConsulting/coaching-sportif-tracker/models"
	"github.com/croissanceConsulting/coaching-sportif-tracker/services"
	"github.com/croissanceConsulting/coaching-sportif-tracker/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextSessionID = "sessionID"
	ContextGate      = "gate"
	ContextStudent   = "student"
)

// BearerToken extracts the session token from the Authorization header, or
// from the token query parameter for websocket upgrades.
func BearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return c.Query("token")
}

// SessionMiddleware resolves the browser session from the bearer token and
// attaches its gate. It does not require a logged-in student.
func SessionMiddleware(gates *services.GateRegistry, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := BearerToken(c)
		if tok == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required", "redirect": services.LoginPath})
			return
		}
		sid, err := utils.ParseSessionToken(secret, tok)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token", "redirect": services.LoginPath})
			return
		}

		ctx := services.WithSessionID(c.Request.Context(), sid)
		c.Request = c.Request.WithContext(ctx)
		c.Set(ContextSessionID, sid)
		c.Set(ContextGate, gates.Gate(ctx, sid))
		c.Next()
	}
}

// RequireStudent lets the request through only when the session's gate holds a
// student. Must run after SessionMiddleware.
func RequireStudent() gin.HandlerFunc {
	return func(c *gin.Context) {
		gate, ok := c.Get(ContextGate)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated", "redirect": services.LoginPath})
			return
		}
		st, ok := gate.(*services.IdentityGate).Student()
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated", "redirect": services.LoginPath})
			return
		}
		c.Set(ContextStudent, st)
		c.Next()
	}
}

// CurrentStudent returns the identity set by RequireStudent.
func CurrentStudent(c *gin.Context) models.StudentIdentity {
	st, _ := c.MustGet(ContextStudent).(models.StudentIdentity)
	return st
}
