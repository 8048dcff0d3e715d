package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"hostel-allocation-backend/internal/auth"
	"hostel-allocation-backend/internal/model"
	"hostel-allocation-backend/internal/mw"
	"hostel-allocation-backend/internal/store"
	"hostel-allocation-backend/internal/workflow"
)

// RouterOptions carries the tunables NewRouter needs from configuration.
type RouterOptions struct {
	RateLimit      rate.Limit
	RateLimitBurst int
	CacheTTL       time.Duration
}

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, engine *workflow.Engine, tokens *auth.Manager, webpushOptions *webpush.Options, opts RouterOptions) *gin.Engine {
	r := gin.Default()

	db := s.DB()
	handler := NewHandler(s, engine, tokens, webpushOptions)

	rateLimiter := mw.RateLimiter(opts.RateLimit, opts.RateLimitBurst)
	cacheStore := cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	caching := mw.Cache(cacheStore, opts.CacheTTL)

	authed := mw.Auth(tokens)
	studentOnly := mw.RequireRole(model.RoleStudent)
	adminOnly := mw.RequireRole(model.RoleAdmin)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/auth/register", handler.Register)
		api.POST("/auth/login", handler.Login)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)

		// Public room browsing; the only cached surface.
		api.GET("/rooms", caching, ListRooms(db))
		api.GET("/rooms/:room_id", GetRoom(db))

		api.POST("/rooms", authed, adminOnly, CreateRoom(db))
		api.PATCH("/rooms/:room_id", authed, adminOnly, UpdateRoom(db))

		api.POST("/requests", authed, studentOnly, handler.SubmitRequest)
		api.GET("/requests/mine", authed, studentOnly, handler.ListOwnRequests)
		api.GET("/requests", authed, adminOnly, handler.ListRequests)
		api.PATCH("/requests/:request_id/approve", authed, adminOnly, handler.ApproveRequest)
		api.PATCH("/requests/:request_id/reject", authed, adminOnly, handler.RejectRequest)

		api.GET("/allocations/mine", authed, studentOnly, handler.ListOwnAllocations)
		api.GET("/allocations", authed, adminOnly, handler.ListAllocations)

		api.GET("/subscriptions", authed, handler.GetSubscription)
		api.PUT("/subscriptions", authed, handler.PutSubscription)
		api.DELETE("/subscriptions", authed, handler.DeleteSubscription)
	}

	return r
}
