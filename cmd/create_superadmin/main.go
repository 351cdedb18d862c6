package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"kosman/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Creates the super_admin account. Run once after migration:
//
//	go run ./cmd/create_superadmin <email> <password>
func main() {
	if len(os.Args) < 3 {
		fmt.Println("usage: go run ./cmd/create_superadmin <email> <password>")
		os.Exit(2)
	}
	email := strings.ToLower(strings.TrimSpace(os.Args[1]))
	password := os.Args[2]

	dsn := os.Getenv("DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("DB_DSN not set in environment")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}

	var existing models.User
	if err := db.Where("role = ?", models.RoleSuperAdmin).First(&existing).Error; err == nil {
		fmt.Printf("super admin already exists: %s (id=%d)\n", existing.Email, existing.ID)
		os.Exit(0)
	}

	hpw, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("bcrypt failed: %v", err)
	}
	user := models.User{Email: email, HashedPassword: hpw, Role: models.RoleSuperAdmin}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("failed to create super admin: %v", err)
	}
	fmt.Printf("created super admin %s id=%d\n", email, user.ID)
}
