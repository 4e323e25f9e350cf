package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/croissanceConsulting/coaching-sportif-tracker/middlewares"
	"github.com/croissanceConsulting/coaching-sportif-tracker/services"
	"github.com/croissanceConsulting/coaching-sportif-tracker/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthController struct {
	Gates    *services.GateRegistry
	Secret   []byte
	TokenTTL time.Duration
}

func NewAuthController(gates *services.GateRegistry, secret []byte, ttl time.Duration) *AuthController {
	return &AuthController{Gates: gates, Secret: secret, TokenTTL: ttl}
}

type LoginInput struct {
	AccessCode string `json:"access_code" binding:"required"`
}

// POST /auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// a login from an existing browser session keeps it
	sid := ""
	if tok := middlewares.BearerToken(c); tok != "" {
		if id, err := utils.ParseSessionToken(ac.Secret, tok); err == nil {
			sid = id
		}
	}
	fresh := sid == ""
	if fresh {
		sid = uuid.NewString()
	}

	ctx := services.WithSessionID(c.Request.Context(), sid)
	st, err := ac.Gates.Gate(ctx, sid).Login(ctx, input.AccessCode)
	if err != nil && fresh {
		// the client never learns this session id
		ac.Gates.Discard(context.WithoutCancel(ctx), sid)
	}
	if ctx.Err() != nil {
		return
	}
	switch {
	case errors.Is(err, services.ErrInvalidAccessCode):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Code d'accès invalide"})
		return
	case errors.Is(err, services.ErrLoginSuperseded):
		c.JSON(http.StatusConflict, gin.H{"error": "login superseded"})
		return
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur lors de la connexion"})
		return
	}

	token, err := utils.GenerateSessionToken(ac.Secret, sid, ac.TokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"student":  st,
		"redirect": services.DashboardPath,
	})
}

// POST /auth/logout
func (ac *AuthController) Logout(c *gin.Context) {
	gate := c.MustGet(middlewares.ContextGate).(*services.IdentityGate)
	gate.Logout(c.Request.Context())
	ac.Gates.Drop(c.GetString(middlewares.ContextSessionID))
	c.JSON(http.StatusOK, gin.H{"redirect": services.LoginPath})
}
