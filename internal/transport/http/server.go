package http

import (
	"github.com/gin-gonic/gin"

	"univoice/internal/bootstrap"
	"univoice/internal/transport/http/handler"
	"univoice/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(middleware.Recovery(app.Log), middleware.RequestLogger(app.Log.Named("http")))

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/", handler.Index)
	router.GET("/healthz", healthHandler.Check)

	authHandler := handler.NewAuthHandler(
		app.Auth,
		app.Submission,
		app.Config.Auth.CookieName,
		app.Gate.TTL(),
		app.Config.App.Env == "prod",
	)
	submissionHandler := handler.NewSubmissionHandler(app.Submission, app.Directory)
	reviewHandler := handler.NewReviewHandler(app.Review)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Session(app.Gate, app.Config.Auth.CookieName))
	v1.GET("/teachers", submissionHandler.Teachers)
	v1.POST("/submissions", submissionHandler.Submit)
	v1.GET("/review", reviewHandler.List)

	authGroup := v1.Group("/auth")
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/session", authHandler.Current)

	return router
}
