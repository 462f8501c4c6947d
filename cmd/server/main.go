package main

import (
	"github.com/joho/godotenv"

	"github.com/KHILANO5/HRMS-sub001/internal/app/server"
)

func main() {
	_ = godotenv.Load()
	server.Run()
}
