package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"jobly/internal/core/config"
	"jobly/internal/core/database"
	"jobly/internal/core/logger"
	"jobly/internal/repo"
	"jobly/internal/service"
)

// 运维命令：迁移、授予/撤销管理员
func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "jobly-admin",
		Usage: "jobly maintenance commands",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to the yaml config",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "apply pending schema migrations",
				Action: func(c *cli.Context) error {
					return withDB(c, func(ctx context.Context, _ *config.Config, db *gorm.DB, log *zap.Logger) error {
						if err := database.Migrate(ctx, db); err != nil {
							return err
						}
						log.Info("migrations applied")
						return nil
					})
				},
			},
			adminCommand("grant-admin", "mark a user as admin", true),
			adminCommand("revoke-admin", "remove the admin mark from a user", false),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func adminCommand(name, usage string, isAdmin bool) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true},
		},
		Action: func(c *cli.Context) error {
			return withDB(c, func(ctx context.Context, cfg *config.Config, db *gorm.DB, log *zap.Logger) error {
				users := service.NewUsers(repo.NewUserRepo(db), cfg.Security.BcryptCost)
				u, err := users.SetAdmin(ctx, c.String("username"), isAdmin)
				if err != nil {
					return err
				}
				log.Info("admin flag updated", zap.String("username", u.Username), zap.Bool("is_admin", isAdmin))
				return nil
			})
		},
	}
}

func withDB(c *cli.Context, fn func(ctx context.Context, cfg *config.Config, db *gorm.DB, log *zap.Logger) error) error {
	cfg, err := config.Parse(c.String("config"))
	if err != nil {
		return err
	}
	log, cleanup := logger.FromConfig(cfg.Log)
	defer cleanup()

	db, err := database.NewGorm(database.OptsFrom(cfg.DB), log)
	if err != nil {
		return fmt.Errorf("db open: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	return fn(c.Context, cfg, db, log)
}
