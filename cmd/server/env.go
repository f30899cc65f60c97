package main

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	Addr           string
	AllowedOrigins []string
	LogLevel       string
}

// GetEnv reads the server settings from the environment, loading path
// first when it exists. Variables already set win over the file.
func GetEnv(path string) (*Env, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	env := &Env{
		Addr:           "localhost:3000",
		AllowedOrigins: []string{"*"},
		LogLevel:       "info",
	}
	if addr, ok := os.LookupEnv("CHESS_ADDR"); ok && addr != "" {
		env.Addr = addr
	}
	if origins, ok := os.LookupEnv("CHESS_ALLOWED_ORIGINS"); ok && origins != "" {
		env.AllowedOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.AllowedOrigins = append(env.AllowedOrigins, o)
			}
		}
	}
	if lvl, ok := os.LookupEnv("CHESS_LOG_LEVEL"); ok && lvl != "" {
		env.LogLevel = lvl
	}
	return env, nil
}
