package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tzu-An-Wang/ForBRO/config"
	"github.com/Tzu-An-Wang/ForBRO/internal/api/handler"
	"github.com/Tzu-An-Wang/ForBRO/internal/api/middleware"
	"github.com/Tzu-An-Wang/ForBRO/pkg/jwt"
	"github.com/Tzu-An-Wang/ForBRO/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.MaxMultipartMemory = cfg.Server.MaxUploadSize

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		v1.POST("/auth/login", h.Auth.Login)

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 使用者模块（管理员专用）
			users := authorized.Group("/users", middleware.RoleAuth("admin"))
			{
				users.GET("", h.User.ListUsers)
				users.POST("", h.User.CreateUser)
			}

			// 员工名册模块
			employees := authorized.Group("/employees")
			{
				employees.GET("", h.Employee.ListEmployees)
				employees.POST("", h.Employee.CreateEmployee)
				employees.GET("/:nickname", h.Employee.GetEmployee)
				employees.PUT("/:nickname", h.Employee.UpdateEmployee)
				employees.DELETE("/:nickname", h.Employee.DeleteEmployee)
			}

			// 薪资计算模块
			payroll := authorized.Group("/payroll")
			{
				payroll.POST("/calculate", h.Payroll.Calculate)
				payroll.POST("/export", h.Payroll.Export)
			}

			// POS 转换模块
			pos := authorized.Group("/pos")
			{
				pos.POST("/preview", h.POS.Preview)
				pos.POST("/convert", h.POS.Convert)
			}
		}
	}

	return r
}
