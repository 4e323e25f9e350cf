package controllers

import (
	"net/http"
	"strconv"

	"github.com/croissanceConsulting/coaching-sportif-tracker/middlewares"
	"github.com/croissanceConsulting/coaching-sportif-tracker/services"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	Alerts *services.AlertBus
}

func NewNotificationController(alerts *services.AlertBus) *NotificationController {
	return &NotificationController{Alerts: alerts}
}

// GET /student/notifications?limit=20
func (nc *NotificationController) List(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
		return
	}

	alerts, err := nc.Alerts.Recent(c.Request.Context(), c.GetString(middlewares.ContextSessionID), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": alerts})
}
