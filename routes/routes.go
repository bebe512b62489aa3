package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hotel-folio/controllers"
	"hotel-folio/middleware"
)

// Controllers bundles every handler group the router mounts.
type Controllers struct {
	Stays      *controllers.StayController
	Guests     *controllers.GuestController
	Rooms      *controllers.RoomController
	NightAudit *controllers.NightAuditController
	Ledger     *controllers.LedgerController
	Settings   *controllers.SettingsController
}

func corsConfig(origins []string) cors.Config {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}
}

// SetupRouter wires the controllers onto gin.
func SetupRouter(ctl Controllers, corsOrigins []string, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(logger))
	r.Use(cors.New(corsConfig(corsOrigins)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		stays := api.Group("/stays")
		{
			stays.POST("", ctl.Stays.CheckIn)
			stays.GET("/:id", ctl.Stays.GetStay)
			stays.PATCH("/:id/adjustments", ctl.Stays.UpdateAdjustments)
			stays.POST("/:id/charges", ctl.Stays.PostCharge)
			stays.GET("/:id/bill", ctl.Stays.PreviewBill)
			stays.POST("/:id/checkout", ctl.Stays.Checkout)
		}

		guests := api.Group("/guests")
		{
			guests.GET("", ctl.Guests.GetGuests)
			guests.GET("/:id", ctl.Guests.GetGuestByID)
			guests.PUT("/:id", ctl.Guests.UpdateGuest)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", ctl.Rooms.GetRooms)
			rooms.POST("", ctl.Rooms.CreateRoom)
			rooms.POST("/:id/clean", ctl.Rooms.MarkClean)
		}

		ledger := api.Group("/ledger")
		{
			ledger.POST("/revenue", ctl.Ledger.PostRevenue)
			ledger.GET("/cash-balance", ctl.Ledger.CashBalance)
		}

		audits := api.Group("/night-audits")
		{
			audits.POST("", ctl.NightAudit.Run)
			audits.GET("", ctl.NightAudit.List)
			audits.GET("/export", ctl.NightAudit.Export)
			audits.GET("/:date", ctl.NightAudit.Get)
		}

		api.GET("/reconciliation/settlements", ctl.Ledger.IncompleteSettlements)

		settings := api.Group("/settings")
		{
			settings.GET("/hotel", ctl.Settings.GetHotelSettings)
			settings.PUT("/hotel", ctl.Settings.UpdateHotelSettings)
		}
	}

	return r
}
