package main

import (
	"fmt"
	"log"
	"os"

	"github.com/samedayramps/app-samedayramps/internal/config"
	"github.com/samedayramps/app-samedayramps/internal/database"
	"github.com/samedayramps/app-samedayramps/internal/domain"
	"github.com/samedayramps/app-samedayramps/internal/util"
)

func main() {
	// Load configuration
	_, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	if err := database.Init(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	db := database.GetDB()

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@samedayramps.com"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "changeme123"
	}

	// Check if admin already exists
	var existingUser domain.User
	if err := db.Where("email = ?", email).First(&existingUser).Error; err == nil {
		fmt.Println("Admin user already exists!")
		return
	}

	// Create admin user
	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	fullName := "System Administrator"
	adminUser := domain.User{
		Email:          email,
		HashedPassword: hashedPassword,
		FullName:       &fullName,
		IsActive:       true,
		IsAdmin:        true,
		IsStaff:        true,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	fmt.Println("Admin user created successfully!")
	fmt.Printf("Email: %s\n", email)
	fmt.Println("Please change the password after first login!")
}
