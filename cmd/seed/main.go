package main

import (
	"log"
	"os"

	"chatfolders-be/internal/model"
	"chatfolders-be/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/datatypes"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding Subscription Plans...")

	plans := []model.SubscriptionPlan{
		{
			Name:                      "Free Plan",
			Slug:                      "free",
			Description:               "Organize your AI chats with folders",
			Tagline:                   "Get started for free",
			Price:                     0,
			Currency:                  "IDR",
			BillingPeriod:             "monthly",
			MaxFolders:                3,
			MaxConversationsPerFolder: 10,
			CloudSyncEnabled:          false,
			IsActive:                  true,
			SortOrder:                 1,
			Features:                  datatypes.JSON([]byte(`["3 folders", "10 conversations per folder", "Custom folder emoji"]`)),
		},
		{
			Name:                      "Pro Monthly",
			Slug:                      "pro-monthly",
			Description:               "Unlimited folders and conversations with cloud sync",
			Tagline:                   "For power users",
			Price:                     49000,
			Currency:                  "IDR",
			TaxRate:                   0.11,
			BillingPeriod:             "monthly",
			MaxFolders:                -1,
			MaxConversationsPerFolder: -1,
			CloudSyncEnabled:          true,
			IsMostPopular:             true,
			IsActive:                  true,
			SortOrder:                 2,
			Features:                  datatypes.JSON([]byte(`["Unlimited folders", "Unlimited conversations", "Cloud sync across devices", "Priority support"]`)),
		},
		{
			Name:                      "Pro Yearly",
			Slug:                      "pro-yearly",
			Description:               "Everything in Pro Monthly, billed once a year",
			Tagline:                   "Two months free",
			Price:                     490000,
			Currency:                  "IDR",
			TaxRate:                   0.11,
			BillingPeriod:             "yearly",
			MaxFolders:                -1,
			MaxConversationsPerFolder: -1,
			CloudSyncEnabled:          true,
			IsActive:                  true,
			SortOrder:                 3,
			Features:                  datatypes.JSON([]byte(`["Unlimited folders", "Unlimited conversations", "Cloud sync across devices", "Priority support", "Two months free"]`)),
		},
	}

	for _, p := range plans {
		// Check if plan with this slug already exists
		var existing model.SubscriptionPlan
		if err := db.Where("slug = ?", p.Slug).First(&existing).Error; err == nil {
			log.Printf("Plan '%s' already exists, skipping...", p.Slug)
			continue
		}

		if err := db.Create(&p).Error; err != nil {
			log.Printf("Error creating plan '%s': %v", p.Slug, err)
		} else {
			log.Printf("Created plan: %s (%s)", p.Name, p.Slug)
		}
	}

	log.Println("Plan seeding completed!")
}
