package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/AhiyaSchneider/server-FinalProject/pkg/auth"
	"github.com/AhiyaSchneider/server-FinalProject/pkg/database"
)

func main() {
	// Load .env from project root
	_ = godotenv.Load("../.env")

	if len(os.Args) < 3 {
		fmt.Println("Usage: go run useradd.go <username> <password>")
		os.Exit(1)
	}

	username := os.Args[1]
	password := os.Args[2]

	hash, err := auth.HashPassword(password)
	if err != nil {
		fmt.Printf("Error hashing password: %v\n", err)
		os.Exit(1)
	}

	db := database.InitDB()
	user := database.User{Username: username, PasswordHash: hash}
	if err := db.Create(&user).Error; err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("User created: %s\n", username)
}
