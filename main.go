package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/kosuke/adcraft/internal/app"
)

func main() {
	// .envファイルがあれば読み込む（本番環境では存在しなくてよい）
	_ = godotenv.Load()

	if err := app.Run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "adcraft: %v\n", err)
		os.Exit(1)
	}
}
