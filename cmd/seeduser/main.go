// cmd/seeduser/main.go — Crea/actualiza usuario de demo.
// Uso: go run cmd/seeduser/main.go
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"tradecore/internal/domain"
	"tradecore/internal/infra"
	"tradecore/internal/model"
)

func main() {
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "trade_enterprise.db"
	}
	username := "demo"
	password := "Demo1234!"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatalf("bcrypt error: %v", err)
	}

	db, err := infra.NewDatabase(path)
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}

	var user model.Employee
	err = db.Where("username = ?", username).First(&user).Error
	if err == nil {
		user.PasswordHash = string(hash)
		user.Role = domain.RoleManager
		user.IsActive = true
		user.FailedLoginAttempts = 0
		if err := db.Save(&user).Error; err != nil {
			log.Fatalf("update error: %v", err)
		}
	} else {
		user = model.Employee{
			Username:     username,
			PasswordHash: string(hash),
			FullName:     "Usuario Demo",
			Role:         domain.RoleManager,
			IsActive:     true,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("insert error: %v", err)
		}
	}

	fmt.Printf("✅ Usuario '%s' creado/actualizado con password '%s'\n", username, password)
}
