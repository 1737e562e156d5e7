package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"workout-tracker/internal/config"
	"workout-tracker/internal/domain"
	"workout-tracker/internal/repository/mongo"
)

// starterCatalog is the baseline exercise library. Seeding upserts by name,
// so re-running refreshes descriptions without duplicating entries.
var starterCatalog = []domain.Exercise{
	{
		Name:        "Barbell Back Squat",
		Description: "Barbell squat with the bar resting on the upper back.",
		Category:    "strength",
		MuscleGroups: []domain.MuscleGroup{
			{Name: "Quadriceps", TargetType: domain.TargetPrimary},
			{Name: "Glutes", TargetType: domain.TargetPrimary},
			{Name: "Hamstrings", TargetType: domain.TargetSecondary},
			{Name: "Core", TargetType: domain.TargetSecondary},
		},
	},
	{
		Name:        "Deadlift",
		Description: "Conventional barbell deadlift from the floor.",
		Category:    "strength",
		MuscleGroups: []domain.MuscleGroup{
			{Name: "Hamstrings", TargetType: domain.TargetPrimary},
			{Name: "Glutes", TargetType: domain.TargetPrimary},
			{Name: "Lower Back", TargetType: domain.TargetPrimary},
			{Name: "Forearms", TargetType: domain.TargetSecondary},
		},
	},
	{
		Name:        "Bench Press",
		Description: "Flat barbell bench press.",
		Category:    "strength",
		MuscleGroups: []domain.MuscleGroup{
			{Name: "Chest", TargetType: domain.TargetPrimary},
			{Name: "Triceps", TargetType: domain.TargetSecondary},
			{Name: "Shoulders", TargetType: domain.TargetSecondary},
		},
	},
	{
		Name:        "Overhead Press",
		Description: "Standing barbell press from the shoulders to lockout.",
		Category:    "strength",
		MuscleGroups: []domain.MuscleGroup{
			{Name: "Shoulders", TargetType: domain.TargetPrimary},
			{Name: "Triceps", TargetType: domain.TargetSecondary},
			{Name: "Core", TargetType: domain.TargetSecondary},
		},
	},
	{
		Name:        "Pull-Up",
		Description: "Bodyweight pull-up with an overhand grip.",
		Category:    "strength",
		MuscleGroups: []domain.MuscleGroup{
			{Name: "Lats", TargetType: domain.TargetPrimary},
			{Name: "Biceps", TargetType: domain.TargetSecondary},
			{Name: "Upper Back", TargetType: domain.TargetSecondary},
		},
	},
	{
		Name:        "Barbell Row",
		Description: "Bent-over barbell row.",
		Category:    "strength",
		MuscleGroups: []domain.MuscleGroup{
			{Name: "Upper Back", TargetType: domain.TargetPrimary},
			{Name: "Lats", TargetType: domain.TargetPrimary},
			{Name: "Biceps", TargetType: domain.TargetSecondary},
		},
	},
	{
		Name:        "Plank",
		Description: "Front plank hold on elbows.",
		Category:    "core",
		MuscleGroups: []domain.MuscleGroup{
			{Name: "Core", TargetType: domain.TargetPrimary},
			{Name: "Shoulders", TargetType: domain.TargetSecondary},
		},
	},
	{
		Name:        "Running",
		Description: "Steady-state outdoor or treadmill run.",
		Category:    "cardio",
		MuscleGroups: []domain.MuscleGroup{
			{Name: "Quadriceps", TargetType: domain.TargetPrimary},
			{Name: "Calves", TargetType: domain.TargetPrimary},
			{Name: "Hamstrings", TargetType: domain.TargetSecondary},
		},
	},
	{
		Name:        "Rowing Machine",
		Description: "Ergometer rowing intervals or steady state.",
		Category:    "cardio",
		MuscleGroups: []domain.MuscleGroup{
			{Name: "Upper Back", TargetType: domain.TargetPrimary},
			{Name: "Quadriceps", TargetType: domain.TargetSecondary},
			{Name: "Core", TargetType: domain.TargetSecondary},
		},
	},
	{
		Name:        "Dumbbell Lunge",
		Description: "Alternating walking lunges holding dumbbells.",
		Category:    "strength",
		MuscleGroups: []domain.MuscleGroup{
			{Name: "Quadriceps", TargetType: domain.TargetPrimary},
			{Name: "Glutes", TargetType: domain.TargetPrimary},
			{Name: "Hamstrings", TargetType: domain.TargetSecondary},
		},
	},
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatal("could not load config", zap.Error(err))
	}

	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.Fatal("could not connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logger.Error("failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	mongo.EnsureExerciseIndexes(ctx, appDB.Collection("exercises"))

	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	for i := range starterCatalog {
		if err := exerciseRepo.UpsertByName(ctx, &starterCatalog[i]); err != nil {
			logger.Fatal("failed to seed exercise",
				zap.String("name", starterCatalog[i].Name), zap.Error(err))
		}
	}

	logger.Info("exercise catalog seeded", zap.Int("count", len(starterCatalog)))
}
