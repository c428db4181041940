package router

import (
	"net/http"

	"gitee.com/taoJie_1/mall-shop/controller"
	"gitee.com/taoJie_1/mall-shop/global"
	"gitee.com/taoJie_1/mall-shop/middleware"
	"gitee.com/taoJie_1/mall-shop/model/common"

	"github.com/gin-gonic/gin"
)

func Start(ginServer *gin.Engine) {
	// 限制form内存(默认32MiB)
	ginServer.MaxMultipartMemory = 32 << 20

	ginServer.Use(middleware.CorsHandle(), middleware.OptionsMethod) //全局中间件

	ginServer.StaticFile("/favicon.ico", global.Config.StaticDir+"/favicon.ico")
	ginServer.StaticFile("/robots.txt", global.Config.StaticDir+"/robots.txt")
	ginServer.StaticFS("/static", http.Dir(global.Config.StaticDir))

	ginServer.NoRoute(func(ctx *gin.Context) {
		common.FailNotFound(ctx)
	})

	userApi := controller.Api.UserApiGroup
	adminApi := controller.Api.AdminApiGroup

	v1 := ginServer.Group("api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", userApi.AuthApi.Register)
			auth.POST("/login", userApi.AuthApi.Login)
			auth.GET("/profile", middleware.VerifyUser(), userApi.AuthApi.Profile)
		}

		v1.GET("/products", userApi.ProductApi.List)
		v1.GET("/products/:id", userApi.ProductApi.Get)
		v1.GET("/categories", userApi.ProductApi.Categories)

		cart := v1.Group("/cart", middleware.VerifyUser())
		{
			cart.GET("", userApi.CartApi.List)
			cart.POST("", userApi.CartApi.Add)
			cart.PUT("/:id", userApi.CartApi.Update)
			cart.DELETE("/:id", userApi.CartApi.Remove)
			cart.DELETE("", userApi.CartApi.Clear)
		}

		chat := v1.Group("/chat")
		{
			// 游客也可以查历史, 会话id即凭证
			chat.GET("/history/:sessionId", userApi.ChatApi.GetHistory)
			chat.GET("/sessions", middleware.VerifyUser(), userApi.ChatApi.GetSessions)
			chat.GET("/ws", userApi.ChatApi.HandleWS)
		}

		admin := v1.Group("/admin", middleware.VerifyUser(), middleware.VerifyAdmin())
		{
			admin.POST("/products", adminApi.ProductApi.Create)
			admin.PUT("/products/:id", adminApi.ProductApi.Update)
			admin.DELETE("/products/:id", adminApi.ProductApi.Delete)
			admin.POST("/categories", adminApi.CategoryApi.Create)
			admin.POST("/upload", adminApi.UploadApi.UploadImage)
		}
	}
}
