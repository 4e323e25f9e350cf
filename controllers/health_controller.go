package controllers

import (
	"net/http"

	"github.com/croissanceConsulting/coaching-sportif-tracker/services"

	"github.com/gin-gonic/gin"
)

// Healthz reports liveness and whether the record store is configured.
func Healthz(store services.RecordStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":           "ok",
			"store_configured": store.IsConfigured(),
		})
	}
}
