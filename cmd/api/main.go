package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/config"
	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/database"
	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/domain/account"
	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/domain/intake"
	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/domain/lead"
	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/domain/notifier"
	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/middleware"
	jwtsvc "github.com/BukhosiMoyo/creations-Industries-sub000/internal/pkg/jwt"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}

	if err := intake.Migrate(db); err != nil {
		log.Fatal(err)
	}
	if err := lead.Migrate(db); err != nil {
		log.Fatal(err)
	}
	if err := account.Migrate(db); err != nil {
		log.Fatal(err)
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	draftStore := intake.NewStore(db, cfg.DraftTTL)
	wizard := intake.NewService(draftStore)
	intakeHandler := intake.NewHandler(wizard, draftStore)

	hub := notifier.NewHub()
	wsHandler := notifier.NewWSHandler(hub, j)

	userRepo := account.NewRepository(db)
	leadRepo := lead.NewRepository(db)

	conversion := lead.NewService(db, draftStore, leadRepo, userRepo, hub)
	leadHandler := lead.NewHandler(conversion)

	linker := account.NewService(db, userRepo, leadRepo)
	accountHandler := account.NewHandler(linker, j)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		intake.RegisterRoutes(v1, intakeHandler)
		lead.RegisterRoutes(v1, leadHandler)
		account.RegisterRoutes(v1, accountHandler)

		// websocket auth happens in the handler: browsers cannot set
		// headers on a WS dial
		notifier.RegisterRoutes(v1, wsHandler)

		// staff
		admin := v1.Group("/admin")
		admin.Use(middleware.JWTAuth(j), middleware.RequireRole("staff", "admin"))
		{
			intake.RegisterAdminRoutes(admin, intakeHandler)
		}
	}

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
