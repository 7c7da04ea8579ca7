package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rpupo63/signature-homes-backend/api"
	"github.com/rpupo63/signature-homes-backend/config"
)

// app carries the loaded configuration to every command
type app struct {
	config map[string]string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "signature-homes",
		Short:         "Signature Homes site backend",
		Long:          `Serves site content, the project gallery and lightbox sessions, and relays the contact form.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server (default)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.serve(cmd.Context())
			},
		},
		newCatalogCmd(a),
		newGenerateCmd(a),
	)
	return root
}

// loadConfig reads .env, the environment and the optional SSM overlay, then
// configures logging
func (a *app) loadConfig(ctx context.Context) error {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	a.config = config.New()
	setupLogging(a.config)

	if err := config.ApplySSM(ctx, a.config); err != nil {
		return fmt.Errorf("failed to load SSM parameters: %w", err)
	}
	return nil
}

func setupLogging(c map[string]string) {
	level, err := zerolog.ParseLevel(config.GetString(c, "LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.GetBool(c, "LOG_PRETTY", false) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func (a *app) serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	deps, cleanup, err := a.buildDependencies(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	server, err := api.NewServer(a.config, deps)
	if err != nil {
		return fmt.Errorf("error initializing server: %w", err)
	}

	errChannel := make(chan error, 2)

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
	return nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
