package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"DayFlow/internal/handler"
	"DayFlow/internal/middleware"
)

func Register(h *server.Hertz) {

	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.OpenTelemetryMiddleware())

	v1 := h.Group("/v1")

	// 认证相关路由
	auth := v1.Group("/auth")
	auth.Use(middleware.AuthRateLimitMiddleware()) // 认证接口限流
	{
		auth.POST("/register", handler.Register)
		auth.POST("/login", handler.Login)
		auth.POST("/refresh", handler.RefreshToken)
	}

	// 任务路由
	tasks := v1.Group("/tasks")
	tasks.Use(middleware.AuthMiddleware())
	tasks.Use(middleware.GeneralRateLimitMiddleware())
	{
		tasks.GET("", handler.ListTasks)
		tasks.POST("", handler.CreateTask)
		tasks.GET("/:id", handler.GetTask)
		tasks.PATCH("/:id", handler.UpdateTask)
		tasks.POST("/:id/complete", handler.CompleteTask)
		tasks.DELETE("/:id", handler.DeleteTask)
	}

	// 习惯路由
	habits := v1.Group("/habits")
	habits.Use(middleware.AuthMiddleware())
	habits.Use(middleware.GeneralRateLimitMiddleware())
	{
		// 静态路径要注册在 :id 之前
		habits.GET("/completions", handler.ListCompletions)

		habits.GET("", handler.ListHabits)
		habits.POST("", handler.CreateHabit)
		habits.GET("/:id", handler.GetHabit)
		habits.PATCH("/:id", handler.UpdateHabit)
		habits.DELETE("/:id", handler.DeleteHabit)
		habits.POST("/:id/checkin", handler.CheckInHabit)
		habits.GET("/:id/streak", handler.GetHabitStreak)
	}

	// 统计面板路由
	stats := v1.Group("/stats")
	stats.Use(middleware.AuthMiddleware())
	{
		stats.GET("/dashboard", handler.GetDashboard)
	}

	// 日历路由
	calendar := v1.Group("/calendar")
	calendar.Use(middleware.AuthMiddleware())
	{
		calendar.GET("/events", handler.GetCalendarEvents)
	}

	// 数据导出路由
	exports := v1.Group("/exports")
	exports.Use(middleware.AuthMiddleware())
	{
		exports.POST("", middleware.ExportRateLimitMiddleware(), handler.CreateExport)
		exports.GET("", handler.ListExports)
		exports.GET("/:id", handler.GetExport)
		exports.GET("/:id/download", handler.DownloadExport)
	}
}
