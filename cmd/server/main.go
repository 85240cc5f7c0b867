package main

import (
	"os"

	"github.com/rileyblackwell/imagi-oasis/internal/app"
)

// @title           Imagi Oasis API
// @version         1.0
// @description     AI-powered web application generator: prompt assembly, vendor dispatch, response validation and credit-gated persistence.

// @host      localhost:8000
// @BasePath  /api

func main() {
	os.Exit(app.Run())
}
