package logging

import (
	"log"
	"os"
)

// Setup creates the run logger. With a path it appends to that file
// and returns the handle for the caller to close; with an empty path
// it logs to stderr and the returned file is nil.
func Setup(logFile string) (*log.Logger, *os.File, error) {
	if logFile == "" {
		return log.New(os.Stderr, "[doi] ", log.LstdFlags), nil, nil
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, err
	}

	logger := log.New(file, "[doi] ", log.LstdFlags)
	return logger, file, nil
}
