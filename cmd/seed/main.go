package main

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"staffdesk/internal/config"
	"staffdesk/internal/db"
	"staffdesk/internal/model"
	"staffdesk/internal/repository"
)

const (
	adminEmail    = "admin@staffdesk.local"
	adminPassword = "admin123"
)

func main() {
	log.Info().Msg("starting seed script")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Employee{}); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	employeeRepo := repository.NewEmployeeRepository(gormDB)

	seedAdmin(ctx, userRepo)
	seedEmployees(ctx, gormDB, employeeRepo)

	log.Info().Msg("seed complete")
}

func seedAdmin(ctx context.Context, users repository.UserRepository) {
	if _, err := users.FindByEmail(ctx, adminEmail); err == nil {
		log.Info().Str("email", adminEmail).Msg("admin user already present, skipping")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatal().Err(err).Msg("check admin user")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("hash admin password")
	}

	admin := &model.User{
		Name:         "Staffdesk Admin",
		Email:        adminEmail,
		PasswordHash: string(hashed),
		Role:         model.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatal().Err(err).Msg("create admin user")
	}
	log.Info().Str("email", adminEmail).Msg("admin user created")
}

func seedEmployees(ctx context.Context, gormDB *gorm.DB, employees repository.EmployeeRepository) {
	var count int64
	if err := gormDB.WithContext(ctx).Model(&model.Employee{}).Count(&count).Error; err != nil {
		log.Fatal().Err(err).Msg("count employees")
	}
	if count > 0 {
		log.Info().Int64("count", count).Msg("employees already present, skipping")
		return
	}

	samples := []model.Employee{
		{Name: "Jane Doe", Email: "jane.doe@example.com", Department: "Engineering", Role: "Software Engineer", JoiningDate: date(2023, 1, 9), Status: model.StatusActive, PerformanceScore: 82},
		{Name: "Marcus Webb", Email: "marcus.webb@example.com", Department: "Engineering", Role: "Platform Engineer", JoiningDate: date(2021, 6, 14), Status: model.StatusActive, PerformanceScore: 74},
		{Name: "Priya Sharma", Email: "priya.sharma@example.com", Department: "HR", Role: "HR Generalist", JoiningDate: date(2022, 3, 28), Status: model.StatusOnLeave, PerformanceScore: 67},
		{Name: "Tomas Ruiz", Email: "tomas.ruiz@example.com", Department: "Finance", Role: "Accountant", JoiningDate: date(2020, 11, 2), Status: model.StatusInactive, PerformanceScore: 55},
		{Name: "Aiko Tanaka", Email: "aiko.tanaka@example.com", Department: "Design", Role: "Product Designer", JoiningDate: date(2024, 2, 19), Status: model.StatusActive, PerformanceScore: 91},
	}

	for i := range samples {
		if err := employees.Create(ctx, &samples[i]); err != nil {
			log.Fatal().Err(err).Str("email", samples[i].Email).Msg("create employee")
		}
	}
	log.Info().Int("count", len(samples)).Msg("sample employees created")
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
