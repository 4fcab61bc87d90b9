package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"rastbanken-backend/internal/ledger"
	"rastbanken-backend/internal/mw"
)

// RouterOptions bundles the tunables the router needs from configuration.
type RouterOptions struct {
	RateLimitPerSec float64
	RateLimitBurst  int
	CacheTTL        time.Duration
}

// NewRouter creates and configures a new Gin router.
func NewRouter(l *ledger.Ledger, pins *PINGate, opts RouterOptions) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(l, pins)

	throttle := mw.Throttle(rate.Limit(opts.RateLimitPerSec), opts.RateLimitBurst)

	cacheStore := cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	caching := mw.Cache(cacheStore, opts.CacheTTL)

	api := r.Group("/api")
	api.Use(throttle)
	{
		api.GET("/classes", handler.GetClasses)
		api.POST("/classes", handler.PostClass)
		api.DELETE("/classes/:id", handler.DeleteClass)

		api.GET("/students", handler.GetStudents)
		api.POST("/students", handler.PostStudent)
		api.DELETE("/students/:id", handler.DeleteStudent)

		api.GET("/equipment", handler.GetEquipment)
		api.POST("/equipment", handler.PostEquipment)
		api.PUT("/equipment/:id", handler.PutEquipment)
		api.DELETE("/equipment/:id", handler.DeleteEquipment)

		api.GET("/loans", handler.GetLoans)
		api.POST("/loans", handler.PostLoan)
		api.DELETE("/loans/:id", handler.DeleteLoan)

		// Static lookup, safe to cache.
		api.GET("/icons", caching, handler.GetIcons)

		admin := api.Group("/admin")
		{
			admin.POST("/verify", handler.VerifyPIN)
			admin.PUT("/pin", handler.ChangePIN)
			admin.POST("/reset", handler.ResetAll)
		}
	}

	return r
}
