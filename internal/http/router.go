package api

import (
	stdhttp "net/http"

	intconfig "bikie/internal/config"
	h "bikie/internal/http/handlers"
	"bikie/internal/http/middleware"
	"bikie/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps is everything the router wires into handlers. Ping is nil for the
// in-memory store.
type Deps struct {
	Handler *h.Handler
	Ping    h.Pinger
	Log     *zap.Logger
}

func NewRouter(env intconfig.Env, deps Deps) *gin.Engine {
	log := deps.Log
	if log == nil {
		log = zap.L()
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(log), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":      "route not found",
			"code":       "not_found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": middleware.GetRequestID(c),
		})
	})

	hd := deps.Handler
	api := r.Group("/api")
	{
		api.GET("/health", h.Health(deps.Ping))
		api.GET("/routes", h.Routes)
		api.GET("/home", hd.Home)

		vehicles := api.Group("/vehicles")
		vehicles.GET("", hd.ListVehicles)
		vehicles.GET("/featured", hd.FeaturedVehicles)
		vehicles.GET("/:id", hd.GetVehicle)

		api.GET("/testimonials", hd.Testimonials)

		bookings := api.Group("/bookings")
		bookings.GET("/options", hd.BookingOptions)
		bookings.POST("/quote", hd.QuoteBooking)
		bookings.POST("", hd.SubmitBooking)

		admin := api.Group("/admin")
		admin.POST("/login", hd.Login)

		secured := admin.Group("", middleware.Authenticate(hd.Auth), middleware.RequireRoles(services.RoleAdmin))
		secured.GET("/me", hd.Me)
		secured.GET("/overview", hd.AdminOverview)

		av := secured.Group("/vehicles")
		av.GET("", hd.AdminListVehicles)
		av.POST("", hd.AdminAddVehicle)
		av.GET("/:id", hd.AdminGetVehicle)
		av.PUT("/:id", hd.AdminEditVehicle)
		av.DELETE("/:id", hd.AdminDeleteVehicle)
		av.PATCH("/:id/availability", hd.AdminToggleAvailability)

		ab := secured.Group("/bookings")
		ab.GET("", hd.AdminListBookings)
		ab.GET("/:id", hd.AdminGetBooking)
		ab.PUT("/:id/start", hd.AdminStartBooking)
		ab.PUT("/:id/complete", hd.AdminCompleteBooking)
		ab.PUT("/:id/cancel", hd.AdminCancelBooking)

		ac := secured.Group("/customers")
		ac.GET("", hd.AdminListCustomers)
		ac.GET("/:id", hd.AdminGetCustomer)
		ac.GET("/:id/bookings", hd.AdminCustomerBookings)
	}

	h.SetRouter(r)
	return r
}
