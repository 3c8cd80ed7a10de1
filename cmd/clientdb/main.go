package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/clientdb/internal/app"
	"github.com/dmitrijs2005/clientdb/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("%v", err)
		os.Exit(2)
	}

	a, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	err = a.Run(ctx)
	if cerr := a.Close(); cerr != nil {
		log.Printf("close: %v", cerr)
	}
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}
