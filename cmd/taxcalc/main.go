package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/jhoicas/Panneaux-api/internal/interfaces/cli"
	"github.com/jhoicas/Panneaux-api/pkg/logger"
)

func main() {
	// .env es opcional en la CLI
	_ = godotenv.Load()

	log := logger.New(logger.Config{
		Env:    os.Getenv("APP_ENV"),
		Level:  os.Getenv("LOG_LEVEL"),
		Output: os.Stderr,
	})

	if err := cli.NewRootCmd(log, os.Stdin, os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "taxcalc:", err)
		if errors.Is(err, cli.ErrFault) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
