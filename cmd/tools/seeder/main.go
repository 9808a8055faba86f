// Command seeder loads the standard kirana catalog into an empty database so
// a new shop can start billing immediately.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/smartdukaan/backend-dukaan/internal/catalog"
	"github.com/smartdukaan/backend-dukaan/internal/gst"
	"github.com/smartdukaan/backend-dukaan/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	st := store.New(pool)
	resolver := gst.DefaultResolver()

	seeded := 0
	for i, std := range catalog.StandardProducts {
		sku := seedSKU(std, i)
		if _, err := st.GetProductBySKU(ctx, sku); err == nil {
			continue
		}
		_, err := st.CreateProduct(ctx, store.ProductInput{
			SKU:      sku,
			Name:     std.Name,
			Category: string(std.Category),
			Unit:     std.Unit,
			GSTRate:  resolver.Rate(std.Category, std.Name),
		})
		if err != nil {
			log.Fatalf("seed %q: %v", std.Name, err)
		}
		seeded++
	}
	log.Printf("seeding completed: %d products added", seeded)
}

// seedSKU builds a stable SKU per standard product so reruns stay idempotent.
func seedSKU(std catalog.StandardProduct, index int) string {
	prefix := "PRD"
	if cat := string(std.Category); cat != "" {
		if len(cat) > 3 {
			cat = cat[:3]
		}
		prefix = strings.ToUpper(cat)
	}
	return fmt.Sprintf("%s-STD-%02d", prefix, index)
}
