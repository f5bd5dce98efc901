package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/admin"
	"github.com/rpupo63/portfolio-site-backend/api"
	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/logging"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/services"
	"github.com/rpupo63/portfolio-site-backend/storage"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()
	ctx := context.Background()

	if prefix := config.GetString(c, "SSM_PARAMETER_PREFIX", ""); prefix != "" {
		source, err := config.NewParameterSource(ctx, config.GetString(c, "AWS_REGION", "us-east-1"))
		if err != nil {
			fmt.Printf("Error loading AWS config: %v\n", err)
			os.Exit(1)
		}
		n, err := config.LoadParameters(ctx, source, prefix, c)
		if err != nil {
			fmt.Printf("Error loading parameters from %s: %v\n", prefix, err)
			os.Exit(1)
		}
		fmt.Printf("Loaded %d parameters from %s\n", n, prefix)
	}

	if closer := logging.Setup(c); closer != nil {
		defer closer.Close()
	}

	db, err := openDatabase(c)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	// If generating models, run generation and exit
	if config.GetBool(c, "GENERATE_MODELS", false) {
		log.Info().Msg("Generating models and query helpers...")
		models.GenerateModels(db)
		return
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
		log.Info().Msg("Generating column mismatch report...")
		models.GenerateColumnMismatchReportStandalone(db)
		return
	}

	if config.GetBool(c, "AUTO_MIGRATE", false) {
		if err := models.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("Error migrating database")
		}
	}

	images := newBucket(ctx, c, "STORAGE_BUCKET", "portfolio-images")
	resumes := newBucket(ctx, c, "RESUME_BUCKET", "resumes")

	modals, closeModals, err := newModalStore(ctx, c)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to modal store")
	}
	defer closeModals()

	gate := admin.NewGate(admin.GateConfig{
		Password:     config.GetString(c, "ADMIN_PASSWORD", ""),
		PasswordHash: config.GetString(c, "ADMIN_PASSWORD_HASH", ""),
		TokenSecret:  config.GetString(c, "JWT_SECRET", ""),
	})
	if !gate.Configured() {
		log.Warn().Msg("No admin password configured, the admin panel will refuse every login")
	}

	notifier := services.NewNotifier(services.NotifierConfigFrom(c))
	if !notifier.Configured() {
		log.Info().Msg("Email notifications disabled")
	}

	errChannel := serverErrors()

	server, err := api.NewServer(api.Dependencies{
		Database: database.New(db),
		Gate:     gate,
		Modals:   modals,
		Images:   storage.NewUploader(images),
		Resumes:  storage.NewUploader(resumes),
		Notifier: notifier,
	}, c)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// serverErrors holds one result from the server and one from the signal listener, so
// neither sender blocks once main has stopped receiving.
func serverErrors() chan error {
	return make(chan error, 2)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
