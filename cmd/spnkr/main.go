package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ChaseWoodhams/SPNKr/internal/api"
	"github.com/ChaseWoodhams/SPNKr/internal/auth"
	"github.com/ChaseWoodhams/SPNKr/internal/config"
	"github.com/ChaseWoodhams/SPNKr/internal/constants"
	"github.com/ChaseWoodhams/SPNKr/internal/logger"
	"github.com/ChaseWoodhams/SPNKr/internal/service"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:    "spnkr",
		Usage:   "Fetch Halo Infinite service records and ranked CSR",
		Version: "1.0.0",
		Commands: []*cli.Command{
			serviceRecordCommand(),
			authenticateCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Error type: %T\n", err)
		os.Exit(1)
	}
}

func serviceRecordCommand() *cli.Command {
	return &cli.Command{
		Name:  "service-record",
		Usage: "Print the service record for a player",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "gamertag"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Action: runServiceRecord,
	}
}

func authenticateCommand() *cli.Command {
	return &cli.Command{
		Name:   "authenticate",
		Usage:  "Run the OAuth2 authorization flow and print a refresh token",
		Action: runAuthenticate,
	}
}

func runServiceRecord(ctx context.Context, cmd *cli.Command) error {
	log := cliLogger(cmd.Bool("verbose"))

	cfg, err := config.Load(log)
	if err != nil {
		return err
	}
	// Fail fast on missing credentials, before any network call.
	if err := cfg.RequireCredentials(); err != nil {
		return err
	}

	gamertag := cmd.StringArg("gamertag")
	if gamertag == "" {
		gamertag = cfg.DefaultGamertag
		fmt.Printf("Using default gamertag: %s\n", gamertag)
		fmt.Println("(You can provide a different gamertag as a command line argument)")
	} else {
		fmt.Printf("Using provided gamertag: %s\n", gamertag)
	}
	fmt.Println()

	authenticator := auth.New(cfg, log)
	halo := api.NewHaloClient(authenticator)
	records := service.NewRecordService(halo, log)

	result, err := records.GetServiceRecord(ctx, gamertag)
	if err != nil {
		return err
	}

	service.WriteReport(os.Stdout, result)
	fmt.Println("Service record retrieved successfully.")
	return nil
}

func runAuthenticate(ctx context.Context, cmd *cli.Command) error {
	log := cliLogger(false)

	cfg, err := config.Load(log)
	if err != nil {
		return err
	}
	if err := cfg.RequireClient(); err != nil {
		return err
	}

	flow, err := auth.NewCodeFlow(cfg, log)
	if err != nil {
		return err
	}

	fmt.Println("Open the following URL in your browser and sign in with Xbox Live:")
	fmt.Println()
	fmt.Println(flow.ConsentURL())
	fmt.Println()
	fmt.Println("Waiting for the redirect...")

	waitCtx, cancel := context.WithTimeout(ctx, constants.AuthorizationCodeTimeout)
	defer cancel()

	refreshToken, err := flow.Wait(waitCtx, auth.CallbackAddr(cfg.RedirectURI))
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	fmt.Println("Authentication successful. Your refresh token is:")
	fmt.Println()
	fmt.Println(refreshToken)
	fmt.Println()
	fmt.Println("Store it as SPNKR_REFRESH_TOKEN. Treat it like a password.")
	return nil
}

func cliLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return logger.NewCLI(level)
}
