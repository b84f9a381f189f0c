package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Nv-Lunar/ukk-pet-clinic/internal/database"
	"github.com/Nv-Lunar/ukk-pet-clinic/internal/middleware"
	"github.com/Nv-Lunar/ukk-pet-clinic/internal/modules/booking"
	"github.com/Nv-Lunar/ukk-pet-clinic/internal/modules/catalog"
	"github.com/Nv-Lunar/ukk-pet-clinic/internal/modules/inventory"
	"github.com/Nv-Lunar/ukk-pet-clinic/internal/modules/payment"
	"github.com/Nv-Lunar/ukk-pet-clinic/internal/modules/pets"
	"github.com/Nv-Lunar/ukk-pet-clinic/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "clinic.db"
	}
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	bookingRepo := repository.NewBookingRepository(db)
	petRepo := repository.NewPetRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	stockRepo := repository.NewStockRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)

	// Seed the counters from legacy max-suffix data so sequences never hand
	// out a taken identifier.
	ctx := context.Background()
	if max, err := bookingRepo.MaxNameSuffix(ctx); err == nil && max > 0 {
		if err := sequenceRepo.EnsureAtLeast(ctx, repository.SequenceBooking, max); err != nil {
			log.Fatal(err)
		}
	}
	if max, err := petRepo.MaxPetIDSuffix(ctx); err == nil && max > 0 {
		if err := sequenceRepo.EnsureAtLeast(ctx, repository.SequencePet, max); err != nil {
			log.Fatal(err)
		}
	}

	inventoryService := inventory.NewService(stockRepo, logger)
	bookingService := booking.NewService(bookingRepo, petRepo, catalogRepo, sequenceRepo, calendarRepo, inventoryService, logger)
	bookingHandler := booking.NewHandler(bookingService)

	paymentService := payment.NewService(bookingRepo, ledgerRepo, logger)
	paymentHandler := payment.NewHandler(paymentService)

	petService := pets.NewService(petRepo, sequenceRepo, catalogRepo, logger)
	petHandler := pets.NewHandler(petService)

	catalogService := catalog.NewService(catalogRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		catalogHandler.RegisterRoutes(v1)
		petHandler.RegisterRoutes(v1)
		bookingHandler.RegisterRoutes(v1)
		paymentHandler.RegisterRoutes(v1)
	}

	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
