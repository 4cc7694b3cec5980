package di

import (
	"context"
	"fmt"
	"log"

	"arena-pro/api"
	"arena-pro/api/expo"
	"arena-pro/config"
	"arena-pro/dao/redis"
	"arena-pro/db"
	"arena-pro/server"
	"arena-pro/server/handlers"
	"arena-pro/server/middleware"
	services "arena-pro/service"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
)

// Container holds all application dependencies.
type Container struct {
	Settings               *config.Settings
	RedisClient            db.RedisClient
	RedisVenueDao          *redis.RedisVenueDAO
	RedisBookingDao        *redis.RedisBookingDAO
	PushAPI                expo.PushAPI
	Hub                    *server.Hub
	VenueService           *services.VenueService
	BookingService         *services.BookingService
	CalendarJanitorService *services.CalendarJanitorService
	VenueHandler           *handlers.VenueHandler
	BookingHandler         *handlers.BookingHandler
	AdminHandler           *handlers.AdminHandler
	MuxRouter              *mux.Router
	Router                 *server.Router
	ArenaHttpServer        *server.ArenaHttpServer
}

// NewContainer initializes and wires up all dependencies. Outside prod the
// Redis backend and the push client are in-memory mocks.
func NewContainer(settings *config.Settings) *Container {
	log.Printf("initializing container - env: %s", settings.Env)

	var redisClient db.RedisClient
	if !settings.IsProd() {
		redisClient = db.NewMockRedisClient()
		log.Printf("Using mock redis client")
	} else {
		redisInternalClient := goredis.NewClient(&goredis.Options{
			Addr:     settings.RedisAddress,
			Password: settings.RedisPassword,
			DB:       settings.RedisDB,
		})
		redisClient = db.NewGeoRedisClient(redisInternalClient)
	}
	if err := redisClient.Ping(context.Background()); err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}

	redisVenueDao := redis.NewRedisVenueDAO(redisClient)
	redisBookingDao := redis.NewRedisBookingDAO(redisClient)

	var pushAPI expo.PushAPI
	if !settings.IsProd() {
		pushAPI = expo.NewExpoPushClientMock()
		log.Printf("Using mock expo push api")
	} else {
		log.Printf("Using prod expo push api")
		pushClient := expo.NewExpoPushClient(api.NewHTTPClient(settings.ExpoEndpoint))
		pushClient.SetAccessToken(settings.ExpoAccessToken)
		pushAPI = pushClient
	}

	hub := server.NewHub(settings.AllowedOrigins)

	venueService := services.NewVenueService(redisVenueDao, redisBookingDao, hub)
	bookingService := services.NewBookingService(redisVenueDao, redisBookingDao, pushAPI, hub)
	calendarJanitorService := services.NewCalendarJanitorService(redisVenueDao, redisBookingDao)

	venueHandler := handlers.NewVenueHandler(venueService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	adminHandler := handlers.NewAdminHandler(venueService)

	muxRouter := mux.NewRouter()
	router := server.NewRouter(
		venueHandler,
		bookingHandler,
		adminHandler,
		hub.ServeWS,
		middleware.RequireAdmin([]byte(settings.AdminJWTSecret)),
		muxRouter,
	)

	rateLimiter := middleware.NewRateLimiter(settings.RateLimitPerSecond, settings.RateLimitBurst)
	arenaHttpServer := server.NewArenaHttpServer(
		settings.ServerAddress,
		settings.AllowedOrigins,
		router,
		muxRouter,
		rateLimiter,
		hub,
	)

	return &Container{
		Settings:               settings,
		RedisClient:            redisClient,
		RedisVenueDao:          redisVenueDao,
		RedisBookingDao:        redisBookingDao,
		PushAPI:                pushAPI,
		Hub:                    hub,
		VenueService:           venueService,
		BookingService:         bookingService,
		CalendarJanitorService: calendarJanitorService,
		VenueHandler:           venueHandler,
		BookingHandler:         bookingHandler,
		AdminHandler:           adminHandler,
		MuxRouter:              muxRouter,
		Router:                 router,
		ArenaHttpServer:        arenaHttpServer,
	}
}
