package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kbc0/TA-Management-System-sub000/config"
	"github.com/kbc0/TA-Management-System-sub000/internal/api/handler"
	"github.com/kbc0/TA-Management-System-sub000/internal/api/middleware"
	"github.com/kbc0/TA-Management-System-sub000/internal/model"
	"github.com/kbc0/TA-Management-System-sub000/internal/service"
	"github.com/kbc0/TA-Management-System-sub000/pkg/jwt"
	"github.com/kbc0/TA-Management-System-sub000/pkg/redis"
)

// Setup builds the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	reviewers := service.ReviewerRoles()
	staffOnly := middleware.RoleAuth(reviewers...)
	adminOnly := middleware.RoleAuth(model.RoleAdmin)

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			users := authorized.Group("/users")
			{
				users.GET("", staffOnly, h.User.List)
				users.GET("/:id", staffOnly, h.User.Get)
				users.POST("", adminOnly, h.User.Create)
				users.PATCH("/:id", h.User.Update) // admin or self, enforced in the service
				users.DELETE("/:id", adminOnly, h.User.Delete)
				users.PUT("/:id/role", adminOnly, h.User.AssignRole)
				users.POST("/:id/reset-password", adminOnly, h.User.ResetPassword)
			}

			courses := authorized.Group("/courses")
			{
				courses.GET("", h.Course.List)
				courses.GET("/my", h.Course.MyCourses)
				courses.GET("/:id", h.Course.Get)
				courses.POST("", staffOnly, h.Course.Create)
				courses.PATCH("/:id", staffOnly, h.Course.Update)
				courses.GET("/:id/tas", h.Course.ListTas)
				courses.POST("/:id/tas", staffOnly, h.Course.AssignTa)
				courses.DELETE("/:id/tas/:taId", staffOnly, h.Course.RemoveTa)
				courses.GET("/:id/tasks", h.Task.ListByCourse)
				courses.GET("/:id/exams", h.Exam.ListByCourse)
			}

			tasks := authorized.Group("/tasks")
			{
				tasks.GET("/my", h.Task.MyTasks)
				tasks.GET("/upcoming", h.Task.Upcoming)
				tasks.GET("/:id", h.Task.Get)
				tasks.POST("", staffOnly, h.Task.Create)
				tasks.PATCH("/:id", staffOnly, h.Task.Update)
				tasks.PUT("/:id/status", h.Task.SetStatus) // assignee or staff, enforced in the service
				tasks.DELETE("/:id", staffOnly, h.Task.Delete)
			}

			leaves := authorized.Group("/leaves")
			{
				leaves.POST("", h.Leave.Create)
				leaves.GET("/my", h.Leave.MyLeaves)
				leaves.GET("/pending", staffOnly, h.Leave.Pending)
				leaves.GET("/:id", h.Leave.Get)
				leaves.PUT("/:id/review", staffOnly, h.Leave.Review)
				leaves.DELETE("/:id", h.Leave.Cancel)
			}

			swaps := authorized.Group("/swaps")
			{
				swaps.POST("", h.Swap.Create)
				swaps.GET("/my", h.Swap.MySwaps)
				swaps.GET("/pending", staffOnly, h.Swap.Pending)
				swaps.GET("/eligible-targets", h.Swap.EligibleTargets)
				swaps.GET("/:id", h.Swap.Get)
				swaps.PUT("/:id/review", staffOnly, h.Swap.Review)
				swaps.DELETE("/:id", h.Swap.Cancel)
			}

			exams := authorized.Group("/exams")
			{
				exams.GET("/my-proctoring", h.Exam.MyProctoring)
				exams.GET("/:id", h.Exam.Get)
				exams.POST("", staffOnly, h.Exam.Create)
				exams.PUT("/rooms/:roomId/proctor", staffOnly, h.Exam.AssignProctor)
			}

			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.List)
				notifications.PUT("/read-all", h.Notification.MarkAllRead)
				notifications.PUT("/:id/read", h.Notification.MarkRead)
			}

			dashboard := authorized.Group("/dashboard")
			{
				dashboard.GET("/my", h.Dashboard.My)
				dashboard.GET("/workload", staffOnly, h.Dashboard.Workload)
			}

			export := authorized.Group("/export")
			{
				export.GET("/workload", staffOnly, h.Export.Workload)
				export.GET("/calendar", h.Export.Calendar)
			}
		}
	}

	return r
}
