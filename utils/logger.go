package utils

import (
	"log"
	"os"
)

// InitLogger builds the process logger used by main and the request
// middleware.
func InitLogger() *log.Logger {
	return log.New(os.Stdout, "[smarty] ", log.LstdFlags|log.LUTC)
}
