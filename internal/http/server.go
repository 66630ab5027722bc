// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"roam/internal/http/middleware"
	"roam/internal/maps"
	"roam/internal/modules/community"
	"roam/internal/modules/session"
	"roam/internal/modules/user"
	"roam/internal/service"
	"roam/internal/travel"
)

type ServerDeps struct {
	Chat      *service.ChatService
	Users     *user.Service
	Community *community.Service
	Sessions  *session.Manager
	Builder   *travel.Builder
	Places    *maps.PlacesService
	Geocode   *maps.GeocodeService

	ChatRatePerMinute int
	Log               *zap.Logger
}

type Server struct {
	chat      *service.ChatService
	users     *user.Service
	community *community.Service
	sessions  *session.Manager
	builder   *travel.Builder
	places    *maps.PlacesService
	geocode   *maps.GeocodeService

	chatRate int
	log      *zap.Logger
}

func NewServer(deps ServerDeps) *Server {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		chat:      deps.Chat,
		users:     deps.Users,
		community: deps.Community,
		sessions:  deps.Sessions,
		builder:   deps.Builder,
		places:    deps.Places,
		geocode:   deps.Geocode,
		chatRate:  deps.ChatRatePerMinute,
		log:       log,
	}
}

func (s *Server) Routes() http.Handler {
	router := gin.New()
	router.Use(middleware.Recovery(s.log))
	router.Use(middleware.Logging(s.log))

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", s.handleRegister)
	auth.POST("/login", s.handleLogin)
	auth.POST("/forgot-password", s.handleForgotPassword)
	auth.POST("/reset-password", s.handleResetPassword)
	authed := auth.Group("", middleware.RequireAuth(s.users))
	authed.GET("/me", s.handleMe)
	authed.PUT("/profile", s.handleUpdateProfile)
	authed.DELETE("/profile", s.handleDeactivate)

	api.POST("/chat",
		middleware.RateLimit(s.chatRate),
		middleware.OptionalAuth(s.users),
		s.handleChat,
	)
	api.POST("/plan", s.handlePlan)
	api.POST("/places", s.handlePlaces)

	api.POST("/session/memory", s.handleSessionMemory)
	api.POST("/session/resolve-location", s.handleResolveLocation)

	comm := api.Group("/community")
	comm.GET("/trips", s.handleBrowseTrips)
	comm.GET("/trips/:id", s.handleGetTrip)
	comm.POST("/publish", middleware.RequireAuth(s.users), s.handlePublishTrip)
	comm.GET("/my-trips", middleware.RequireAuth(s.users), s.handleMyTrips)
	comm.DELETE("/trips/:id", middleware.RequireAuth(s.users), s.handleDeleteTrip)

	return router
}
