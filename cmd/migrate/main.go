package main

import (
	"context"
	"flag"
	"log"

	"github.com/pressly/goose/v3"

	"github.com/georgerossis/book-rental-system/config"
	"github.com/georgerossis/book-rental-system/util/database"
)

func main() {
	cfg := config.Load()

	var migrationsDir string
	flag.StringVar(&migrationsDir, "dir", "./migrations", "directory with migration files")
	flag.Parse()

	db, err := database.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("goose: failed to connect to DB: %v", err)
	}
	defer db.Close()

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"}
	}

	command := arguments[0]
	var args []string
	if len(arguments) > 1 {
		args = arguments[1:]
	}

	if err := goose.Run(command, db, migrationsDir, args...); err != nil {
		log.Fatalf("goose %v: %v", command, err)
	}
	log.Printf("goose %s success", command)
}
