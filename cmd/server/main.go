package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/travel-booking/internal/config" // Internal config loader
	"github.com/iliyamo/travel-booking/internal/database"
	"github.com/iliyamo/travel-booking/internal/handler"
	"github.com/iliyamo/travel-booking/internal/middleware"
	"github.com/iliyamo/travel-booking/internal/queue"
	"github.com/iliyamo/travel-booking/internal/repository"
	"github.com/iliyamo/travel-booking/internal/router" // Internal router setup
	"github.com/iliyamo/travel-booking/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables the response cache.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache disabled")
	}
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	users := repository.NewUserRepo(db)
	destinations := repository.NewDestinationRepo(db)
	bookings := repository.NewBookingRepo(db)
	payments := repository.NewPaymentRepo(db)
	reviews := repository.NewReviewRepo(db)
	wishlist := repository.NewWishlistRepo(db)
	tickets := repository.NewSupportTicketRepo(db)

	events := service.NewQueuePublisher()

	h := router.Handlers{
		Auth:         handler.NewAuthHandler(cfg, users, events),
		Users:        handler.NewUserHandler(users),
		Destinations: handler.NewDestinationHandler(destinations, reviews),
		Bookings:     handler.NewBookingHandler(bookings, destinations, events),
		Payments:     handler.NewPaymentHandler(payments, bookings),
		Reviews:      handler.NewReviewHandler(reviews, destinations),
		Wishlist:     handler.NewWishlistHandler(wishlist, destinations),
		Support:      handler.NewSupportHandler(tickets),
	}

	e := echo.New()
	router.RegisterRoutes(e, h, cfg.JWTSecret, cache)
	// Uploaded profile pictures are served back under the same relative
	// URLs recorded on the user rows.
	e.Static("/uploads", "uploads")

	// The notification consumer keeps its own reconnect loop alive for the
	// lifetime of the process.
	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
