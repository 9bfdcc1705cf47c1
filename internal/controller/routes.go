package controller

import (
	"github.com/gin-gonic/gin"

	"lapados-backend/utilities"
)

// Controllers bundles everything RegisterRoutes needs.
type Controllers struct {
	Auth        *AuthController
	User        *UserController
	Blog        *BlogController
	Comment     *CommentController
	Modulo      *ModuloController
	Quiz        *QuizController
	Badge       *BadgeController
	Progress    *ProgressController
	Integration *IntegrationController
}

// RegisterRoutes mounts the API surface. Everything under /api requires a
// bearer token except register and login; admin-only routes additionally
// run the admin middleware.
func RegisterRoutes(r *gin.Engine, ctl Controllers) {
	api := r.Group("/api")

	api.POST("/auth/register", ctl.Auth.Register)
	api.POST("/auth/login", ctl.Auth.Login)

	authed := api.Group("")
	authed.Use(utilities.AuthMiddleware())
	{
		authed.GET("/auth/me", ctl.Auth.Me)
		authed.PUT("/auth/me", ctl.Auth.UpdateMe)

		blogs := authed.Group("/blogs")
		{
			blogs.GET("", ctl.Blog.List)
			blogs.POST("/filter", ctl.Blog.Filter)
			blogs.GET("/:id", ctl.Blog.Get)
			blogs.POST("", ctl.Blog.Create)
			blogs.PUT("/:id", ctl.Blog.Update)
			blogs.DELETE("/:id", ctl.Blog.Delete)
			blogs.POST("/:id/like", ctl.Blog.ToggleLike)
		}

		comments := authed.Group("/comments")
		{
			comments.GET("", ctl.Comment.List)
			comments.POST("/filter", ctl.Comment.Filter)
			comments.GET("/:id", ctl.Comment.Get)
			comments.POST("", ctl.Comment.Create)
			comments.PUT("/:id", ctl.Comment.Update)
			comments.DELETE("/:id", ctl.Comment.Delete)
		}

		moduloz := authed.Group("/moduloz")
		{
			moduloz.GET("", ctl.Modulo.List)
			moduloz.POST("/filter", ctl.Modulo.Filter)
			moduloz.GET("/:id", ctl.Modulo.Get)
			moduloz.POST("/:id/attempts", ctl.Quiz.StartAttempt)

			admin := moduloz.Group("")
			admin.Use(utilities.AdminMiddleware())
			{
				admin.POST("", ctl.Modulo.Create)
				admin.PUT("/:id", ctl.Modulo.Update)
				admin.DELETE("/:id", ctl.Modulo.Delete)
			}
		}

		attempts := authed.Group("/attempts")
		{
			attempts.GET("/:session_id", ctl.Quiz.GetAttempt)
			attempts.POST("/:session_id/answer", ctl.Quiz.SubmitAnswer)
			attempts.POST("/:session_id/advance", ctl.Quiz.Advance)
		}

		badges := authed.Group("/badges")
		{
			badges.GET("", ctl.Badge.List)
			badges.POST("/filter", ctl.Badge.Filter)
			badges.GET("/:id", ctl.Badge.Get)

			admin := badges.Group("")
			admin.Use(utilities.AdminMiddleware())
			{
				admin.POST("", ctl.Badge.Create)
				admin.PUT("/:id", ctl.Badge.Update)
				admin.DELETE("/:id", ctl.Badge.Delete)
			}
		}

		progress := authed.Group("/user-progress")
		{
			progress.GET("/me", ctl.Progress.Me)
			progress.GET("/leaderboard", ctl.Progress.Leaderboard)
			progress.GET("/report", ctl.Progress.Report)

			admin := progress.Group("")
			admin.Use(utilities.AdminMiddleware())
			{
				admin.GET("", ctl.Progress.List)
				admin.POST("/filter", ctl.Progress.Filter)
				admin.GET("/:id", ctl.Progress.Get)
				admin.POST("", ctl.Progress.Create)
				admin.PUT("/:id", ctl.Progress.Update)
				admin.DELETE("/:id", ctl.Progress.Delete)
			}
		}

		users := authed.Group("/users")
		{
			users.GET("", ctl.User.List)
			users.POST("/filter", ctl.User.Filter)
			users.GET("/:id", ctl.User.Get)

			admin := users.Group("")
			admin.Use(utilities.AdminMiddleware())
			{
				admin.PUT("/:id", ctl.User.Update)
				admin.DELETE("/:id", ctl.User.Delete)
			}
		}

		integrations := authed.Group("/integrations")
		{
			integrations.POST("/upload-file", ctl.Integration.UploadFile)
			integrations.POST("/invoke-llm", ctl.Integration.InvokeLLM)
			integrations.POST("/send-email", ctl.Integration.SendEmail)
			integrations.POST("/generate-image", ctl.Integration.GenerateImage)
		}
	}
}
