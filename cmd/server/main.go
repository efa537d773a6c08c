package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/datamart/bulkorder/internal/api"
	"github.com/datamart/bulkorder/internal/batch"
	"github.com/datamart/bulkorder/internal/catalog"
	"github.com/datamart/bulkorder/internal/domain"
	"github.com/datamart/bulkorder/internal/ingestion"
	"github.com/datamart/bulkorder/internal/orderapi"
	"github.com/datamart/bulkorder/internal/pricing"
	"github.com/datamart/bulkorder/internal/repository"
	"github.com/datamart/bulkorder/internal/resolve"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	port := envDefault("PORT", "8080")
	dbPath := envDefault("DB_PATH", "datamart.db")
	orderAPIURL := envDefault("ORDER_API_URL", "https://api.datamartgh.shop/api/v1")
	orderAPIKey := os.Getenv("ORDER_API_KEY")
	orderAPITimeout := envSeconds("ORDER_API_TIMEOUT", 30*time.Second)

	log.Printf("Initializing database at %s", dbPath)
	db, err := repository.InitDB(dbPath)
	if err != nil {
		log.Fatalf("Failed to init DB: %v", err)
	}
	defer db.Close()

	// Create repositories.
	productRepo := repository.NewProductRepo(db)
	batchRepo := repository.NewBatchRepo(db)
	candRepo := repository.NewCandidateRepo(db)
	pricingRepo := repository.NewPricingRepo(db)

	// Seed the product catalog if the DB is empty.
	count, err := productRepo.Count()
	if err != nil {
		log.Fatalf("Failed to count products: %v", err)
	}
	if count == 0 {
		log.Println("Database is empty, seeding product catalog from testdata...")
		if err := seedProducts(productRepo); err != nil {
			log.Fatalf("Failed to seed products: %v", err)
		}
	} else {
		log.Printf("Database already has %d products, skipping seed", count)
	}

	// Seed the default price tiers if none are stored yet.
	tierCount, err := pricingRepo.Count()
	if err != nil {
		log.Fatalf("Failed to count price tiers: %v", err)
	}
	if tierCount == 0 {
		if err := pricingRepo.Save(pricing.DefaultTiers()); err != nil {
			log.Fatalf("Failed to seed price tiers: %v", err)
		}
		log.Println("Seeded default price tiers")
	}

	products, err := productRepo.List()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	log.Printf("Loaded %d products into the catalog", len(products))

	// Create services.
	resolver := resolve.New(catalog.New(products))
	ingestionSvc := ingestion.NewService(batchRepo, candRepo, resolver)
	orderClient := orderapi.NewClient(orderAPIURL, orderAPIKey, orderAPITimeout)
	batchSvc := batch.NewService(batchRepo, candRepo, orderClient)

	// Create router.
	router := api.NewRouter(productRepo, pricingRepo, ingestionSvc, batchSvc)

	log.Printf("DATAMART Bulk Order Service")
	log.Printf("Listening on http://localhost:%s", port)
	log.Printf("API base: http://localhost:%s/api/v1", port)
	log.Printf("")
	log.Printf("Endpoints:")
	log.Printf("  POST   /api/v1/batches")
	log.Printf("  GET    /api/v1/batches/{id}")
	log.Printf("  POST   /api/v1/batches/{id}/files")
	log.Printf("  POST   /api/v1/batches/{id}/manual")
	log.Printf("  DELETE /api/v1/batches/{id}/files/{fileID}")
	log.Printf("  DELETE /api/v1/batches/{id}/candidates")
	log.Printf("  POST   /api/v1/batches/{id}/submit")
	log.Printf("  GET    /api/v1/batches/{id}/export")
	log.Printf("  GET    /api/v1/template")
	log.Printf("  GET    /api/v1/products")
	log.Printf("  GET    /api/v1/pricing")
	log.Printf("  PUT    /api/v1/pricing")
	log.Printf("  POST   /api/v1/pricing/quote")

	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envSeconds(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if s, err := strconv.Atoi(v); err == nil && s > 0 {
			return time.Duration(s) * time.Second
		}
	}
	return def
}

func seedProducts(repo *repository.ProductRepo) error {
	// Try multiple possible locations for testdata.
	candidates := []string{
		"testdata/products.json",
		filepath.Join(".", "testdata", "products.json"),
	}

	// Also try to find relative to the executable.
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		candidates = append(candidates,
			filepath.Join(dir, "testdata", "products.json"),
			filepath.Join(dir, "..", "..", "testdata", "products.json"),
		)
	}

	var data []byte
	var loadErr error
	for _, path := range candidates {
		data, loadErr = os.ReadFile(path)
		if loadErr == nil {
			log.Printf("Loaded products from %s", path)
			break
		}
	}
	if loadErr != nil {
		return fmt.Errorf("could not find products.json in any candidate path: %w", loadErr)
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return fmt.Errorf("unmarshal products: %w", err)
	}

	inserted, err := repo.BulkInsert(products)
	if err != nil {
		return fmt.Errorf("bulk insert: %w", err)
	}

	log.Printf("Seeded %d products (out of %d in file)", inserted, len(products))
	return nil
}
