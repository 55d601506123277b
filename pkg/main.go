package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	pkg "github.com/devlog-ge/devlog-server/pkg/internal"
	"github.com/devlog-ge/devlog-server/pkg/internal/cache"
	"github.com/devlog-ge/devlog-server/pkg/internal/database"
	"github.com/devlog-ge/devlog-server/pkg/internal/http"
	"github.com/devlog-ge/devlog-server/pkg/internal/mail"
	"github.com/devlog-ge/devlog-server/pkg/internal/services"
	"github.com/devlog-ge/devlog-server/pkg/internal/storage"
	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString(" ____             _\n|  _ \\  _____   _| |    ___   __ _\n| | | |/ _ \\ \\ / / |   / _ \\ / _` |\n| |_| |  __/\\ V /| |__| (_) | (_| |\n|____/ \\___| \\_/ |_____\\___/ \\__, |\n                             |___/"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("DevLog"), pkg.AppVersion)
	fmt.Printf("The social networking service for developers\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}

	// Prepare the in-process cache
	if err := cache.NewStore(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when initializing cache.")
	}

	// Connect to database
	if err := database.NewGorm(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(database.C); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	// Connect to object storage
	if err := storage.Setup(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to object storage.")
	}

	// Configure the outgoing mailer
	mail.Setup()

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	quartz.AddFunc("@every 60m", services.DoAutoDatabaseCleanup)
	quartz.Start()

	// Server
	go http.NewServer().Listen()

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	quartz.Stop()
}
