package controllers

import (
	"net/http"

	"github.com/croissanceConsulting/coaching-sportif-tracker/middlewares"
	"github.com/croissanceConsulting/coaching-sportif-tracker/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type RealtimeController struct {
	RT *services.RealtimeHub
}

func NewRealtimeController(rt *services.RealtimeHub) *RealtimeController {
	return &RealtimeController{RT: rt}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GET /ws/notifications
func (rc *RealtimeController) NotificationsWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := services.NewWSClient(c.GetString(middlewares.ContextSessionID), conn)
	rc.RT.Attach(cl)
	defer rc.RT.Detach(cl)

	// the client only ever sends control frames; the read loop ends on close/error
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
