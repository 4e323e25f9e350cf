package routes

import (
	"github.com/croissanceConsulting/coaching-sportif-tracker/controllers"
	"github.com/croissanceConsulting/coaching-sportif-tracker/middlewares"
	"github.com/croissanceConsulting/coaching-sportif-tracker/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Deps is everything the router needs, assembled by the serve command.
type Deps struct {
	Store         services.RecordStore
	Gates         *services.GateRegistry
	Auth          *controllers.AuthController
	Student       *controllers.StudentController
	Ebooks        *controllers.EbookController
	Notifications *controllers.NotificationController
	Realtime      *controllers.RealtimeController
	Secret        []byte
	Log           zerolog.Logger
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger(d.Log))

	r.GET("/healthz", controllers.Healthz(d.Store))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	session := middlewares.SessionMiddleware(d.Gates, d.Secret)
	student := middlewares.RequireStudent()

	auth := r.Group("/auth")
	{
		auth.POST("/login", d.Auth.Login)
		auth.POST("/logout", session, d.Auth.Logout)
	}

	st := r.Group("/student")
	st.Use(session, student)
	{
		st.GET("/profile", d.Student.Profile)
		st.GET("/calculations", d.Student.ListCalculations)
		st.GET("/meal-plans", d.Student.ListMealPlans)
		st.GET("/dashboard", d.Student.Dashboard)
		st.GET("/notifications", d.Notifications.List)
	}

	ebooks := r.Group("/ebooks")
	ebooks.Use(session, student)
	{
		ebooks.GET("", d.Ebooks.List)
		ebooks.GET("/:id/download", d.Ebooks.Download)
	}

	r.GET("/ws/notifications", session, student, d.Realtime.NotificationsWS)

	return r
}
