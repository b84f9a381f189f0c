package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/Nv-Lunar/ukk-pet-clinic/internal/database"
	"github.com/Nv-Lunar/ukk-pet-clinic/internal/domain"
	"github.com/Nv-Lunar/ukk-pet-clinic/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "clinic.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM booking_service_lines")
	db.Exec("DELETE FROM booking_product_lines")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM calendar_events")
	db.Exec("DELETE FROM ledger_payments")
	db.Exec("DELETE FROM stock_transfers")
	db.Exec("DELETE FROM pets")
	db.Exec("DELETE FROM pet_categories")
	db.Exec("DELETE FROM services")
	db.Exec("DELETE FROM doctors")
	db.Exec("DELETE FROM products")
	db.Exec("DELETE FROM customers")
	db.Exec("DELETE FROM sequences")

	ctx := context.Background()
	catalogRepo := repository.NewCatalogRepository(db)
	petRepo := repository.NewPetRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)

	log.Println("Creating pet categories...")
	categories := []*domain.PetCategory{
		{Name: "Kucing", Rate: 1.0},
		{Name: "Anjing Kecil", Rate: 1.2},
		{Name: "Anjing Besar", Rate: 1.5},
		{Name: "Kelinci", Rate: 0.8},
	}
	for _, c := range categories {
		if err := catalogRepo.CreateCategory(ctx, c); err != nil {
			log.Fatal("seed category:", err)
		}
	}

	log.Println("Creating services...")
	services := []*domain.Service{
		{Name: "Grooming", Price: 100000, AvgTime: 60},
		{Name: "Vaksinasi", Price: 150000, AvgTime: 30},
		{Name: "Pemeriksaan Umum", Price: 75000, AvgTime: 20},
		{Name: "Perawatan Gigi", Price: 200000, AvgTime: 45},
	}
	for _, s := range services {
		if err := catalogRepo.CreateService(ctx, s); err != nil {
			log.Fatal("seed service:", err)
		}
	}

	log.Println("Creating doctors...")
	doctors := []*domain.Doctor{
		{Name: "drh. Sari Wulandari", Specialty: "Bedah", Phone: "081234567801"},
		{Name: "drh. Budi Santoso", Specialty: "Dermatologi", Phone: "081234567802"},
		{Name: "drh. Maya Kusuma", Specialty: "Umum", Phone: "081234567803"},
	}
	for _, d := range doctors {
		if err := catalogRepo.CreateDoctor(ctx, d); err != nil {
			log.Fatal("seed doctor:", err)
		}
	}

	log.Println("Creating products...")
	products := []*domain.Product{
		{Name: "Makanan Kucing Premium 1kg", ListPrice: 85000, QtyAvailable: 40},
		{Name: "Shampoo Anti Kutu", ListPrice: 45000, QtyAvailable: 25},
		{Name: "Vitamin Bulu", ListPrice: 60000, QtyAvailable: 30},
	}
	for _, p := range products {
		if err := catalogRepo.CreateProduct(ctx, p); err != nil {
			log.Fatal("seed product:", err)
		}
	}

	log.Println("Creating customers and pets...")
	customers := []*domain.Customer{
		{Name: "Andi Pratama", Phone: "081298765401", Address: "Jl. Melati 12, Jakarta", Email: "andi@example.com"},
		{Name: "Siti Rahma", Phone: "081298765402", Address: "Jl. Kenanga 5, Bandung", Email: "siti@example.com"},
	}
	for _, c := range customers {
		if err := catalogRepo.CreateCustomer(ctx, c); err != nil {
			log.Fatal("seed customer:", err)
		}
	}

	petsSeed := []*domain.Pet{
		{Name: "Milo", TypeID: categories[0].ID, Age: 2, OwnerID: customers[0].ID},
		{Name: "Bruno", TypeID: categories[2].ID, Age: 4, OwnerID: customers[0].ID},
		{Name: "Cici", TypeID: categories[3].ID, Age: 1, OwnerID: customers[1].ID},
	}
	for _, p := range petsSeed {
		n, err := sequenceRepo.Next(ctx, repository.SequencePet)
		if err != nil {
			log.Fatal("pet sequence:", err)
		}
		p.PetID = repository.FormatIdentifier("PET", n)
		if err := petRepo.Create(ctx, p); err != nil {
			log.Fatal("seed pet:", err)
		}
	}

	log.Println("Seed complete.")
}
