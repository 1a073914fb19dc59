package main

import (
	"database/sql"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/lib/pq"

	"wedding-hall-server/utils"
)

// Hall represents a directly listed hall row
type Hall struct {
	Name        string
	Address     string
	Description string
	Capacity    int
	Price       float64
	Phone       string
	Images      []string
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	dbURL := getEnv("DB_URL", "")
	if dbURL == "" {
		log.Fatal("DB_URL environment variable is required")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("✅ Successfully connected to database")

	if err := seedAdminUser(db); err != nil {
		log.Fatal("Failed to seed admin user:", err)
	}

	if err := seedLegacyHalls(db); err != nil {
		log.Fatal("Failed to seed halls:", err)
	}

	log.Println("✅ Seeding complete")
}

// seedAdminUser inserts the admin account unless one already exists
func seedAdminUser(db *sql.DB) error {
	email := getEnv("ADMIN_EMAIL", "admin@eventmanagement.com")
	password := getEnv("ADMIN_PASSWORD", "admin123")

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	result, err := db.Exec(`
		INSERT INTO users (email, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, 'admin', TRUE, NOW(), NOW())
		ON CONFLICT (email) DO NOTHING`,
		email, hash)
	if err != nil {
		return err
	}

	if n, _ := result.RowsAffected(); n > 0 {
		log.Printf("✅ Admin user created: %s", email)
	} else {
		log.Printf("⏭️ Admin user already exists: %s", email)
	}
	return nil
}

// seedLegacyHalls inserts the directly listed halls shown to customers before
// any manager signs up
func seedLegacyHalls(db *sql.DB) error {
	halls := []Hall{
		{
			Name:        "Grand Royal Banquet",
			Address:     "12 Shahrah-e-Faisal, Karachi",
			Description: "Spacious banquet hall with a covered courtyard and in-house catering kitchen",
			Capacity:    800,
			Price:       150000,
			Phone:       "02134567890",
			Images:      []string{},
		},
		{
			Name:        "Pearl Continental Marquee",
			Address:     "Mall Road, Lahore",
			Description: "Air-conditioned marquee with bridal room and valet parking",
			Capacity:    500,
			Price:       120000,
			Phone:       "04236541200",
			Images:      []string{},
		},
		{
			Name:        "Rose Garden Hall",
			Address:     "F-10 Markaz, Islamabad",
			Description: "Garden venue suited to daytime mehndi and walima events",
			Capacity:    300,
			Price:       80000,
			Phone:       "05122334455",
			Images:      []string{},
		},
	}

	inserted := 0
	for _, hall := range halls {
		result, err := db.Exec(`
			INSERT INTO wedding_halls (name, address, description, capacity, price, phone, images, created_at, updated_at)
			SELECT $1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
			WHERE NOT EXISTS (SELECT 1 FROM wedding_halls WHERE name = $1)`,
			hall.Name, hall.Address, hall.Description, hall.Capacity, hall.Price, hall.Phone, pq.Array(hall.Images))
		if err != nil {
			return err
		}
		if n, _ := result.RowsAffected(); n > 0 {
			inserted++
			log.Printf("✅ Hall seeded: %s", hall.Name)
		}
	}

	log.Printf("✅ %d hall(s) inserted, %d already present", inserted, len(halls)-inserted)
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
