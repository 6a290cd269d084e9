package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"resort-backend/controllers"
	"resort-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Controllers bundles everything the router needs.
type Controllers struct {
	Auth          *controllers.AuthController
	Profiles      *controllers.ProfileController
	Bookings      *controllers.BookingController
	Offers        *controllers.OfferController
	Rooms         *controllers.RoomController
	Notifications *controllers.NotificationController
	Helpdesk      *controllers.HelpdeskController
	Uploads       *controllers.UploadController
	SiteConfig    *controllers.SiteConfigController
	Streams       *controllers.StreamController
	Admins        *controllers.AdminController
}

func SetupRouter(ctrl Controllers, jwtSecret string) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/session", ctrl.Auth.Session)
			auth.POST("/login", ctrl.Auth.Login)
		}

		// Public catalog; prices personalize when a session token is present.
		api.GET("/rooms", middleware.OptionalAuth(jwtSecret), ctrl.Rooms.List)
		api.GET("/rooms/:id", middleware.OptionalAuth(jwtSecret), ctrl.Rooms.Get)
		api.GET("/offers", ctrl.Offers.List)
		api.GET("/site-config", ctrl.SiteConfig.Get)

		// Signed-in guest surface.
		user := api.Group("", middleware.AuthRequired(jwtSecret))
		{
			user.GET("/profiles/me", ctrl.Profiles.Me)
			user.POST("/profiles", ctrl.Profiles.Onboard)
			user.PUT("/profiles/me", ctrl.Profiles.Update)

			user.POST("/bookings", ctrl.Bookings.Create)
			user.GET("/bookings/mine", ctrl.Bookings.ListMine)

			user.POST("/offers/:id/claim", ctrl.Offers.Claim)
			user.GET("/session/discount", ctrl.Offers.ActiveDiscount)

			user.GET("/notifications", ctrl.Notifications.List)
			user.POST("/notifications/read-all", ctrl.Notifications.MarkAllRead)
			user.GET("/stream/notifications", ctrl.Streams.Notifications)

			user.POST("/helpdesk/messages", ctrl.Helpdesk.Send)
			user.GET("/helpdesk/messages", ctrl.Helpdesk.Thread)

			user.POST("/uploads", ctrl.Uploads.Upload)
		}

		// Back office.
		admin := api.Group("/admin", middleware.AuthRequired(jwtSecret), middleware.AdminOnly())
		{
			admin.GET("/bookings", ctrl.Bookings.Search)
			admin.POST("/bookings/:id/accept", ctrl.Bookings.Accept)
			admin.POST("/bookings/:id/reject", ctrl.Bookings.Reject)
			admin.POST("/bookings/:id/arrive", ctrl.Bookings.MarkArrived)
			admin.POST("/bookings/:id/depart", ctrl.Bookings.MarkDeparted)
			admin.GET("/stream/bookings", ctrl.Streams.AdminBookings)

			admin.GET("/profiles", ctrl.Profiles.Search)
			admin.DELETE("/profiles/:uid", ctrl.Profiles.Delete)

			admin.POST("/rooms", ctrl.Rooms.Create)
			admin.PUT("/rooms/:id", ctrl.Rooms.Update)
			admin.PATCH("/rooms/:id", ctrl.Rooms.Update)
			admin.DELETE("/rooms/:id", ctrl.Rooms.Delete)

			admin.POST("/offers", ctrl.Offers.Create)
			admin.PUT("/offers/:id", ctrl.Offers.Update)
			admin.DELETE("/offers/:id", ctrl.Offers.Delete)

			admin.GET("/helpdesk/chats", ctrl.Helpdesk.ActiveChats)
			admin.GET("/helpdesk/messages/:uid", ctrl.Helpdesk.AdminThread)
			admin.POST("/helpdesk/messages/:uid", ctrl.Helpdesk.AdminSend)

			admin.PUT("/site-config", ctrl.SiteConfig.Publish)

			admin.GET("/accounts", ctrl.Admins.List)
			admin.POST("/accounts", ctrl.Admins.Create)
			admin.DELETE("/accounts/:id", ctrl.Admins.Delete)
		}
	}

	return r
}
