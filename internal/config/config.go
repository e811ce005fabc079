package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DBDSN          string
	DBMaxOpenConns int
	JWTSecret      string
	LogFile        string
}

func Load() Config {
	// .env is optional; real deployments use plain env vars.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "annapurna.db" // sqlite file in project root
	}
	maxConns := 1 // sqlite has a single writer; keep the pool serial by default
	if v := os.Getenv("DB_MAX_OPEN_CONNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxConns = n
		}
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
		log.Printf("[config] JWT_SECRET not set; using insecure dev default")
	}
	logFile := os.Getenv("LOG_FILE")

	cfg := Config{Port: port, DBDSN: dsn, DBMaxOpenConns: maxConns, JWTSecret: secret, LogFile: logFile}
	log.Printf("[config] PORT=%s DB_DSN=%s DB_MAX_OPEN_CONNS=%d LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.DBMaxOpenConns, cfg.LogFile)
	return cfg
}
