package main // entry point for the API server

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/CGDEV2002/Brecho-E-commerce/internal/config"
	"github.com/CGDEV2002/Brecho-E-commerce/internal/database"
	"github.com/CGDEV2002/Brecho-E-commerce/internal/handler"
	"github.com/CGDEV2002/Brecho-E-commerce/internal/queue"
	"github.com/CGDEV2002/Brecho-E-commerce/internal/repository"
	"github.com/CGDEV2002/Brecho-E-commerce/internal/router"
	queue_publisher "github.com/CGDEV2002/Brecho-E-commerce/internal/service"
)

func main() {
	// Local development loads .env; in containers the variables come from
	// the environment and the file is simply absent.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)

	// Redis is optional: when unreachable the middleware degrade to
	// pass-throughs and the API keeps serving from MySQL alone.
	rdb := config.NewRedisClient()

	adminHandler := handler.NewAdminHandler(productRepo, categoryRepo, userRepo)
	adminHandler.PublishSold = queue_publisher.PublishProductSold

	h := router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, userRepo),
		Product:  handler.NewProductHandler(productRepo, categoryRepo),
		Category: handler.NewCategoryHandler(categoryRepo),
		User:     handler.NewUserHandler(cfg, userRepo),
		Admin:    adminHandler,
		Cart:     handler.NewCartHandler(productRepo),
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, h, userRepo, rdb)

	if os.Getenv("QUEUE_CONSUMER_ENABLED") == "true" {
		go func() {
			if err := queue.StartSalesConsumer(); err != nil {
				log.Printf("sales consumer stopped: %v", err)
			}
		}()
	}

	log.Printf("starting server on port %s (env=%s)", cfg.Port, cfg.Env)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
