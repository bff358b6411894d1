package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port            string
	DBDSN           string
	MediaDir        string
	LogFile         string
	SeedFile        string
	ListingFee      float64
	VerifyPasswords bool
	MaxUploadMB     int
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "file:tradenook?mode=memory&cache=shared"
	} // nothing outlives the process unless a file DSN is given
	media := os.Getenv("MEDIA_DIR")
	if media == "" {
		media = "./web/media"
	}
	logFile, ok := os.LookupEnv("LOG_FILE")
	if !ok {
		logFile = "./tradenook.log"
	}

	cfg := Config{
		Port:            port,
		DBDSN:           dsn,
		MediaDir:        media,
		LogFile:         logFile,
		SeedFile:        os.Getenv("SEED_FILE"),
		ListingFee:      floatEnv("LISTING_FEE", 5.00),
		VerifyPasswords: boolEnv("VERIFY_PASSWORDS", false),
		MaxUploadMB:     intEnv("MAX_UPLOAD_MB", 5),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s SEED_FILE=%s LISTING_FEE=%.2f VERIFY_PASSWORDS=%t MAX_UPLOAD_MB=%d",
		cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile, cfg.SeedFile, cfg.ListingFee, cfg.VerifyPasswords, cfg.MaxUploadMB)
	return cfg
}

func floatEnv(key string, def float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		log.Printf("[warn] %s=%q is not a valid amount, using %.2f", key, raw, def)
		return def
	}
	return v
}

func boolEnv(key string, def bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("[warn] %s=%q is not a boolean, using %t", key, raw, def)
		return def
	}
	return v
}

func intEnv(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		log.Printf("[warn] %s=%q is not a positive integer, using %d", key, raw, def)
		return def
	}
	return v
}
