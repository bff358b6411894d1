package main

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"tradenook/internal/config"
	"tradenook/internal/http/handlers"
	applog "tradenook/internal/log"
	"tradenook/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	seed, err := repos.LoadSeed(cfg.SeedFile)
	if err != nil {
		log.Fatal(err)
	}
	db, err := repos.OpenDBWithSeed(cfg.DBDSN, seed)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	deps, err := handlers.NewDeps(db, cfg)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("[static] /media -> %s", cfg.MediaDir)
	app := handlers.NewApp(deps,
		logger.New(),
		limiter.New(limiter.Config{
			Max:        120,
			Expiration: time.Minute,
			Next: func(c *fiber.Ctx) bool {
				return strings.HasPrefix(c.Path(), "/media/")
			},
			LimitReached: func(c *fiber.Ctx) error {
				applog.Security(c, "rate.global.hit", nil)
				return c.Status(fiber.StatusTooManyRequests).SendString("Too many requests")
			},
		}),
	)

	applog.Info(nil, "server.start", map[string]any{"port": cfg.Port})
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
