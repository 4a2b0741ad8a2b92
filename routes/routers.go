package routes

import (
	"net/http"

	"rentals/constants"
	"rentals/controllers"
	"rentals/docs"
	middlewares "rentals/middleware"
	"rentals/services/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Controllers gom các handler đã được dựng sẵn
type Controllers struct {
	Apartments      *controllers.ApartmentController
	AdminApartments *controllers.AdminApartmentController
	Bookings        *controllers.BookingController
	Auth            *controllers.AuthController
	Locale          *controllers.LocaleController
	Notifications   *controllers.NotificationController
}

func SetupRoutes(router *gin.Engine, ctrl Controllers, auth middlewares.Authenticator, log logger.Logger) {
	router.Use(middlewares.RequestLogger(log))
	router.Use(middlewares.SessionMiddleware(auth, log))
	router.Use(middlewares.LocaleMiddleware(log))
	router.Use(middlewares.ErrorHandler())

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"name": "rentals", "docs": "/swagger/index.html"})
	})

	docs.SwaggerInfo.BasePath = "/api/v1"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/auth/callback", ctrl.Auth.Callback)

	v1 := router.Group("/api/v1")

	// Public
	v1.GET("/apartments", ctrl.Apartments.Search)
	v1.GET("/apartments/last-search", ctrl.Apartments.LastSearch)
	v1.GET("/apartments/map", ctrl.Apartments.Map)
	v1.GET("/apartments/:id", ctrl.Apartments.Detail)
	v1.GET("/apartments/:id/calendar", ctrl.Apartments.Calendar)
	v1.POST("/bookings", ctrl.Bookings.Create)

	v1.GET("/locale", ctrl.Locale.Get)
	v1.POST("/locale", ctrl.Locale.Set)

	v1.POST("/auth/login", ctrl.Auth.Login)
	v1.POST("/auth/google", ctrl.Auth.Google)
	v1.POST("/auth/logout", ctrl.Auth.Logout)
	v1.GET("/auth/me", middlewares.AuthMiddleware(), ctrl.Auth.Me)

	// Admin
	admin := v1.Group("/admin", middlewares.AuthMiddleware(constants.RoleAdmin))
	admin.GET("/dashboard", ctrl.Bookings.Dashboard)

	admin.GET("/apartments", ctrl.AdminApartments.List)
	admin.POST("/apartments", ctrl.AdminApartments.Create)
	admin.GET("/apartments/:id", ctrl.AdminApartments.Detail)
	admin.PUT("/apartments/:id", ctrl.AdminApartments.Update)
	admin.PATCH("/apartments/:id/active", ctrl.AdminApartments.SetActive)
	admin.DELETE("/apartments/:id", ctrl.AdminApartments.Delete)

	admin.POST("/apartments/:id/images", ctrl.AdminApartments.UploadImages)
	admin.PUT("/apartments/:id/images/principal", ctrl.AdminApartments.SetPrincipalImage)
	admin.PUT("/apartments/:id/images/order", ctrl.AdminApartments.ReorderImages)
	admin.DELETE("/apartments/:id/images/:index", ctrl.AdminApartments.DeleteImage)

	admin.GET("/apartments/:id/availability", ctrl.AdminApartments.ListOverrides)
	admin.POST("/apartments/:id/availability", ctrl.AdminApartments.CreateOverride)
	admin.PUT("/availability/:overrideId", ctrl.AdminApartments.UpdateOverride)
	admin.DELETE("/availability/:overrideId", ctrl.AdminApartments.DeleteOverride)

	admin.GET("/bookings", ctrl.Bookings.List)
	admin.PUT("/bookings/status", ctrl.Bookings.UpdateStatus)
	admin.GET("/bookings/:id", ctrl.Bookings.Detail)
	admin.PUT("/bookings/:id/status", ctrl.Bookings.UpdateStatus)
	admin.DELETE("/bookings/:id", ctrl.Bookings.Delete)

	admin.POST("/notifications", ctrl.Notifications.NotifyAll)

	//ws
	router.GET("/ws", ctrl.Notifications.Connect)
}
