package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/routinely/routinely/internal/config"
	"github.com/routinely/routinely/internal/db"
	"github.com/routinely/routinely/internal/repository"
	"github.com/routinely/routinely/internal/service"
)

type App struct {
	Cfg             *config.Config
	DB              *sqlx.DB
	ActivityService *service.ActivityService
	GoalService     *service.GoalService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	activityRepository := repository.NewActivityRepository(database)
	goalRepository := repository.NewGoalRepository(database)

	// Services
	goalService := service.NewGoalService(goalRepository, activityRepository, cfg.WeekStart)
	activityService := service.NewActivityService(activityRepository, goalService)

	return &App{
		Cfg:             cfg,
		DB:              database,
		ActivityService: activityService,
		GoalService:     goalService,
	}, nil
}

func (a *App) Close() error {
	return db.Close(a.DB)
}
