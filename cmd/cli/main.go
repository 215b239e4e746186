package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dmitrijs2005/cadastr/internal/client/api"
	"github.com/dmitrijs2005/cadastr/internal/client/cli"
)

func main() {

	server := flag.String("s", "http://localhost:8080", "service base URL")
	tokenPath := flag.String("f", cli.DefaultTokenPath(), "bearer token file")
	flag.Parse()

	app := cli.NewApp(api.New(*server), *tokenPath, os.Stdout)

	if err := app.Run(context.Background(), flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
