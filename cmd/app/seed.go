package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
	"gorm.io/gorm"

	"lapados-backend/internal/db/query"
	"lapados-backend/internal/model"
	"lapados-backend/internal/repository"
	"lapados-backend/pkg/progression"
)

// runSeed bootstraps the first admin account interactively and loads the
// starter badge and module catalogue. Safe to run repeatedly: existing
// records are left alone.
func runSeed(gdb *gorm.DB, userRepo repository.UserRepository,
	moduloRepo repository.ModuloRepository, badgeRepo repository.BadgeRepository) {

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Admin email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		log.Fatal("admin email is required")
	}

	if _, err := userRepo.GetByEmail(email); err == nil {
		fmt.Println("admin account already exists, skipping user creation")
	} else {
		fmt.Print("Admin password (input hidden): ")
		pw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			log.Fatalf("failed to read password: %v", err)
		}
		if len(pw) < 8 {
			log.Fatal("password must be at least 8 characters")
		}

		hashed, err := bcrypt.GenerateFromPassword(pw, bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		admin := &model.User{
			FullName: "Administrator",
			Email:    email,
			Password: string(hashed),
			Role:     model.RoleAdmin,
		}
		if err := userRepo.Create(admin); err != nil {
			log.Fatalf("failed to create admin: %v", err)
		}
		if err := gdb.Create(&model.UserProgress{
			UserEmail:        email,
			CompletedModuloz: []uint{},
			EarnedBadges:     []uint{},
		}).Error; err != nil {
			log.Fatalf("failed to create admin progress: %v", err)
		}
		fmt.Println("admin account created")
	}

	seedBadges(badgeRepo)
	seedModuloz(moduloRepo)
	fmt.Println("seeding complete")
}

func seedBadges(badgeRepo repository.BadgeRepository) {
	existing, err := badgeRepo.GetAll()
	if err != nil {
		log.Fatalf("failed to list badges: %v", err)
	}
	if len(existing) > 0 {
		fmt.Println("badges already present, skipping")
		return
	}

	starters := []model.Badge{
		{Name: "First Steps", Description: "Complete your first module", Icon: "footprints",
			Color: "bronze", Rarity: "common", CriteriaType: progression.CriteriaModulesCompleted, CriteriaValue: 1},
		{Name: "Scholar", Description: "Complete five modules", Icon: "book",
			Color: "silver", Rarity: "rare", CriteriaType: progression.CriteriaModulesCompleted, CriteriaValue: 5},
		{Name: "Perfectionist", Description: "Score 100% on any quiz", Icon: "star",
			Color: "gold", Rarity: "epic", CriteriaType: progression.CriteriaQuizScore, CriteriaValue: 100},
		{Name: "On Fire", Description: "Keep a 7-day streak", Icon: "flame",
			Color: "purple", Rarity: "epic", CriteriaType: progression.CriteriaStreak, CriteriaValue: 7},
		{Name: "Point Collector", Description: "Reach 1000 XP", Icon: "trophy",
			Color: "gold", Rarity: "legendary", CriteriaType: progression.CriteriaPoints, CriteriaValue: 1000},
		{Name: "Early Bird", Description: "Finish a quiz before 9 AM", Icon: "sunrise",
			Color: "blue", Rarity: "rare", CriteriaType: progression.CriteriaTimeBased, CriteriaValue: progression.EarlyBirdHour},
	}
	for i := range starters {
		if err := badgeRepo.Create(&starters[i]); err != nil {
			log.Fatalf("failed to seed badge %q: %v", starters[i].Name, err)
		}
	}
	fmt.Printf("seeded %d badges\n", len(starters))
}

func seedModuloz(moduloRepo repository.ModuloRepository) {
	existing, err := moduloRepo.List(query.Params{Limit: 1})
	if err != nil {
		log.Fatalf("failed to list moduloz: %v", err)
	}
	if len(existing) > 0 {
		fmt.Println("moduloz already present, skipping")
		return
	}

	starter := model.Modulo{
		Title:            "Doping Basics",
		Description:      "What counts as doping and why it matters",
		Category:         "fundamentals",
		Difficulty:       "beginner",
		XPReward:         150,
		EstimatedMinutes: 10,
		Content:          "An introduction to prohibited substances and methods in sport.",
		QuizQuestions: []model.QuizQuestion{
			{
				Question:      "Who maintains the global list of prohibited substances?",
				Options:       []string{"WADA", "FIFA", "IOC", "UNESCO"},
				CorrectAnswer: 0,
				Explanation:   "The World Anti-Doping Agency publishes the Prohibited List annually.",
				SequenceOrder: 1,
			},
			{
				Question:      "How often is the prohibited list updated?",
				Options:       []string{"Monthly", "Annually", "Every olympiad"},
				CorrectAnswer: 1,
				Explanation:   "The list is reviewed and republished every year.",
				SequenceOrder: 2,
			},
		},
	}
	if err := moduloRepo.Create(&starter); err != nil {
		log.Fatalf("failed to seed modulo: %v", err)
	}
	fmt.Println("seeded starter modulo")
}
