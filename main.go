package main

import (
	"context"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/m-mizutani/drover/pkg/cli"
)

func main() {
	if err := cli.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}
