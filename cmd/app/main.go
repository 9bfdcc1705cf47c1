package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"lapados-backend/internal/config"
	"lapados-backend/internal/controller"
	"lapados-backend/internal/db"
	"lapados-backend/internal/llm"
	"lapados-backend/internal/mail"
	"lapados-backend/internal/model"
	"lapados-backend/internal/repository"
	"lapados-backend/internal/service"
	logger "lapados-backend/pkg/logging"
	"lapados-backend/pkg/middleware"
	"lapados-backend/utilities"
)

func main() {
	seed := flag.Bool("seed", false, "seed the admin account and starter content, then exit")
	flag.Parse()

	printStartUpBanner()

	// A local .env can override the secrets in config.xml.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("config.xml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.Setup(cfg.Logging)

	db.InitDBFromConfig(cfg)
	gdb := db.GetDB()
	if err := gdb.AutoMigrate(
		&model.User{}, &model.Blog{}, &model.Comment{},
		&model.Modulo{}, &model.QuizQuestion{}, &model.Badge{},
		&model.UserProgress{}, &model.QuizRecord{}, &model.QuizAttempt{},
	); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	utilities.InitJWT(cfg.Authentication.JWTSecret, cfg.Authentication.TokenExpiryDays)

	// Repositories.
	userRepo := repository.NewUserRepository(gdb)
	blogRepo := repository.NewBlogRepository(gdb)
	commentRepo := repository.NewCommentRepository(gdb)
	moduloRepo := repository.NewModuloRepository(gdb)
	badgeRepo := repository.NewBadgeRepository(gdb)
	progressRepo := repository.NewProgressRepository(gdb)
	attemptRepo := repository.NewAttemptRepository(gdb)

	if *seed {
		runSeed(gdb, userRepo, moduloRepo, badgeRepo)
		return
	}

	// External services.
	if cfg.THIRD_PARTY.HFToken != "" {
		if err := llm.AuthenticateHuggingFace(cfg); err != nil {
			logger.Warn("Hugging Face authentication failed, image generation disabled: %v", err)
		}
	}
	llmClient := llm.NewClient(cfg.THIRD_PARTY.OllamaURL)
	imageGen := &llm.ImageGenerator{
		AccessToken: cfg.THIRD_PARTY.HFToken,
		UploadsDir:  cfg.Uploads.Dir,
	}
	mailer := mail.NewMailer(cfg.THIRD_PARTY.SMTP)

	// Services.
	progressSvc := service.NewProgressService(gdb, progressRepo, badgeRepo, userRepo)
	authSvc := service.NewAuthService(userRepo, progressSvc)
	userSvc := service.NewUserService(userRepo)
	blogSvc := service.NewBlogService(blogRepo)
	commentSvc := service.NewCommentService(commentRepo, blogRepo)
	moduloSvc := service.NewModuloService(moduloRepo)
	badgeSvc := service.NewBadgeService(badgeRepo)
	quizSvc := service.NewQuizService(gdb, attemptRepo, moduloRepo, progressRepo, badgeRepo)
	reportSvc := service.NewReportService(progressSvc, badgeSvc, moduloSvc)

	service.InitBadgeEventListeners(mailer, userRepo)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if cfg.RequestDump {
		r.Use(middleware.RequestDumpMiddleware())
	}
	r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))

	// Uploaded and generated files are served statically.
	r.Static("/uploads", cfg.Uploads.Dir)

	controller.RegisterRoutes(r, controller.Controllers{
		Auth:     controller.NewAuthController(authSvc),
		User:     controller.NewUserController(userSvc),
		Blog:     controller.NewBlogController(blogSvc),
		Comment:  controller.NewCommentController(commentSvc),
		Modulo:   controller.NewModuloController(moduloSvc),
		Quiz:     controller.NewQuizController(quizSvc),
		Badge:    controller.NewBadgeController(badgeSvc),
		Progress: controller.NewProgressController(progressSvc, reportSvc),
		Integration: controller.NewIntegrationController(
			llmClient, imageGen, mailer, cfg.Uploads.Dir, cfg.Uploads.MaxSizeMB),
	})

	addr := fmt.Sprintf("%s:%d", cfg.Context.Host, cfg.Context.Port)
	logger.Info("listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func printStartUpBanner() {
	myFigure := figure.NewFigure("LAPADOS", "", true)
	myFigure.Print()

	fmt.Println("======================================================")
	fmt.Printf("LAPADOS API (v%s)\n\n", "1.0.0")
}
