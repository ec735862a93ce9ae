package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"regalia-backend/controllers"
	"regalia-backend/middleware"
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

// SetupRouter wires controllers onto the gin engine.
func SetupRouter(
	ac *controllers.AuthController,
	bc *controllers.BookingController,
	tc *controllers.TowerController,
	uc *controllers.UnitController,
	ec *controllers.EmployeeController,
) *gin.Engine {
	r := gin.Default()

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
	r.Use(middleware.RequestLogger())
	r.Use(middleware.OptionalAuth())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Signup/login sit outside /api for compatibility with the
	// existing front-end.
	r.POST("/signup", ac.Signup)
	r.POST("/login", ac.Login)

	api := r.Group("/api")
	{
		towers := api.Group("/towers")
		{
			towers.GET("", tc.GetTowers)
			towers.POST("", tc.CreateTower)
		}

		units := api.Group("/units")
		{
			units.GET("", uc.GetUnits)
			units.GET("/:id", uc.GetUnit)
			units.POST("", uc.CreateUnit)
			units.PUT("/:id", uc.UpdateUnit)
			units.DELETE("/:id", uc.DeleteUnit)
		}

		// Units with tower context for the admin list.
		api.GET("/properties", uc.GetUnits)

		employees := api.Group("/employees")
		{
			employees.GET("", ec.GetEmployees)
			employees.POST("", ec.CreateEmployee)
			employees.PUT("/:id", ec.UpdateEmployee)
			employees.PUT("/:id/assign-tower", ec.AssignTower)
			employees.DELETE("/:id", ec.DeleteEmployee)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.GetBookings)
			bookings.GET("/buckets", bc.GetBookingBuckets)
			bookings.POST("", bc.CreateBooking)
			bookings.GET("/:id", bc.GetBooking)
			bookings.PUT("/:id/confirm", bc.ConfirmBooking)
			bookings.PUT("/:id/reject", bc.RejectBooking)
			bookings.POST("/:id/check-in", bc.CheckIn)
			bookings.POST("/:id/check-out", bc.CheckOut)
			bookings.POST("/:id/resend-qr", bc.ResendEntryPass)
			bookings.GET("/:id/qr", bc.EntryPassQR)
		}
	}

	return r
}
