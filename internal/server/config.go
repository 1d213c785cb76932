package server

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port       string
	OutputRoot string
}

// LoadConfig reads the preview server settings from the environment.
func LoadConfig() (*Config, error) {
	port := os.Getenv("PREVIEW_PORT")
	if port == "" {
		port = "8080"
	}
	if err := validatePort(port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	root := os.Getenv("OUTPUT_BASE")
	if root == "" {
		root = "public"
	}

	return &Config{Port: port, OutputRoot: root}, nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return errors.New("port must be a number")
	}
	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	return nil
}
