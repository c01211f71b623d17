package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	config "mood-planner.com/mood-planner/internal/configs"
	httpapi "mood-planner.com/mood-planner/internal/http"
	"mood-planner.com/mood-planner/internal/jobs"
	"mood-planner.com/mood-planner/internal/leaderboard"
	repository "mood-planner.com/mood-planner/internal/repositories"
	"mood-planner.com/mood-planner/internal/rescheduler"
	"mood-planner.com/mood-planner/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the mood planner HTTP API and the nightly leaderboard resync job",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		database := config.NewSqliteConnection(cfg.DatabaseDSN)

		redisClient := config.NewRedisClient(cfg.RedisAddr)
		defer redisClient.Close()

		taskRepo := repository.NewTaskRepository(database)
		userRepo := repository.NewUserRepository(database)

		board := leaderboard.NewRedisLeaderboard(redisClient, cfg.LeaderboardKey)
		runner := rescheduler.NewScriptRunner(cfg.ReschedulerCmd, cfg.ReschedulerTimeout)

		authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
		taskService := services.NewTaskService(taskRepo, cfg.TaskPageSize)
		rescheduleService := services.NewRescheduleService(taskRepo, runner)
		streakService := services.NewStreakService(userRepo, board)

		if err := streakService.ResyncLeaderboard(context.Background()); err != nil {
			log.Printf("initial leaderboard resync failed: %v", err)
		}

		scheduler := jobs.NewScheduler(time.Local)
		if _, err := scheduler.ScheduleDaily(cfg.LeaderboardResyncAt, func() {
			if err := streakService.ResyncLeaderboard(context.Background()); err != nil {
				log.Printf("leaderboard resync failed: %v", err)
			}
		}); err != nil {
			return err
		}
		scheduler.Start()

		e := echo.New()
		handler := httpapi.NewHandler(authService, taskService, rescheduleService, streakService)
		httpapi.Register(e, handler, cfg.RateLimitPerMinute, cfg.JWTSecret)

		addr := cfg.AppHost + ":" + cfg.AppPort
		go func() {
			log.Printf("HTTP server listening on %s", addr)
			if err := e.Start(addr); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		_ = e.Shutdown(ctx)
		scheduler.Stop()

		log.Println("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
