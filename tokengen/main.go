// tokengen/main.go
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

// Mints a bearer token for the admin endpoints. The email must also be on the
// ADMIN_EMAILS allow-list of the running API or the token only gets 403s.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		email = flag.String("email", "", "Admin email to embed in the token")
		ttl   = flag.Duration("ttl", 24*time.Hour, "Token lifetime")
		help  = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	if *email == "" {
		log.Fatal("-email is required")
	}

	secret := os.Getenv("JWT_OAUTH_SECRET")
	if secret == "" {
		log.Fatal("JWT_OAUTH_SECRET is not set")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"email": *email,
		"iat":   jwt.NewNumericDate(now),
		"exp":   jwt.NewNumericDate(now.Add(*ttl)),
		"iss":   "JaraTravels",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	fmt.Println(signed)
}

func showHelp() {
	fmt.Println("Usage: tokengen -email admin@example.com [-ttl 24h]")
	fmt.Println()
	fmt.Println("Signs an admin bearer token with JWT_OAUTH_SECRET.")
	flag.PrintDefaults()
}
