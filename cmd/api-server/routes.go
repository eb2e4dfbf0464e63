package main

import (
	"github.com/gin-gonic/gin"

	"github.com/Dhruvina99/sevarthi-api/internal/handler"
	"github.com/Dhruvina99/sevarthi-api/internal/middleware"
	"github.com/Dhruvina99/sevarthi-api/internal/models"
	"github.com/Dhruvina99/sevarthi-api/internal/service"
)

type handlers struct {
	auth          *handler.AuthHandler
	members       *handler.MemberHandler
	stories       *handler.StoryHandler
	roles         *handler.RoleHandler
	shows         *handler.ShowHandler
	attendance    *handler.AttendanceHandler
	stats         *handler.StatsHandler
	exports       *handler.ExportHandler
	notifications *handler.NotificationHandler
	polls         *handler.PollHandler
	reports       *handler.MemberReportHandler
	practiceLinks *handler.PracticeLinkHandler
}

func registerRoutes(api *gin.RouterGroup, h handlers, authService *service.AuthService) {
	admin := middleware.RequireRoles(models.RoleAdmin)
	adminOrSelf := middleware.AdminOrSelf()

	api.POST("/auth/login", h.auth.Login)

	secured := api.Group("")
	secured.Use(middleware.JWT(authService))

	secured.GET("/auth/me", h.auth.Me)

	members := secured.Group("/members")
	members.GET("", admin, h.members.List)
	members.POST("", admin, h.members.Create)
	members.GET("/:id", adminOrSelf, h.members.Get)
	members.PUT("/:id", adminOrSelf, h.members.Update)
	members.DELETE("/:id", admin, h.members.Delete)
	members.GET("/:id/attendance", adminOrSelf, h.members.Attendance)

	stories := secured.Group("/stories")
	stories.GET("", h.stories.List)
	stories.POST("", admin, h.stories.Create)
	stories.PUT("/:id", admin, h.stories.Update)
	stories.DELETE("/:id", admin, h.stories.Delete)
	stories.GET("/:id/characters", h.stories.Characters)
	stories.POST("/:id/characters", admin, h.stories.AddCharacter)
	secured.DELETE("/characters/:id", admin, h.stories.DeleteCharacter)

	roles := secured.Group("/roles")
	roles.GET("", h.roles.List)
	roles.POST("", admin, h.roles.Create)
	roles.PUT("/:id", admin, h.roles.Update)
	roles.DELETE("/:id", admin, h.roles.Delete)

	shows := secured.Group("/shows")
	shows.GET("", h.shows.List)
	shows.POST("", admin, h.shows.Create)
	shows.PUT("/:id", admin, h.shows.Update)
	shows.DELETE("/:id", admin, h.shows.Delete)

	attendance := secured.Group("/attendance")
	attendance.GET("", admin, h.attendance.List)
	attendance.POST("", h.attendance.Create)
	attendance.PUT("/:id", h.attendance.Update)
	attendance.DELETE("/:id", h.attendance.Delete)

	stats := secured.Group("/stats")
	stats.GET("/dashboard", h.stats.Dashboard)
	stats.GET("/performance", admin, h.stats.Performance)

	reports := secured.Group("/reports")
	reports.POST("/attendance/export", admin, h.exports.Attendance)
	reports.GET("", admin, h.reports.List)
	reports.POST("", h.reports.Submit)
	reports.PATCH("/:id/read", admin, h.reports.MarkRead)

	notifications := secured.Group("/notifications")
	notifications.GET("", h.notifications.List)
	notifications.POST("", admin, h.notifications.Create)
	notifications.PUT("/:id", admin, h.notifications.Update)
	notifications.DELETE("/:id", admin, h.notifications.Delete)

	polls := secured.Group("/polls")
	polls.POST("/export", admin, h.exports.Poll)
	polls.GET("/:id", h.polls.Get)
	polls.POST("/:id/responses", h.polls.Respond)
	polls.GET("/:id/responses", admin, h.polls.Responses)

	links := secured.Group("/practice-links")
	links.GET("", h.practiceLinks.List)
	links.POST("", admin, h.practiceLinks.Create)
	links.DELETE("/:id", admin, h.practiceLinks.Delete)
}
