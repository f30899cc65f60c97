package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetEnvDefaults(t *testing.T) {
	t.Setenv("CHESS_ADDR", "")
	t.Setenv("CHESS_ALLOWED_ORIGINS", "")
	env, err := GetEnv(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatal(err)
	}
	if env.Addr != "localhost:3000" || len(env.AllowedOrigins) != 1 || env.AllowedOrigins[0] != "*" {
		t.Fatalf("got %+v", env)
	}
}

func TestGetEnvFile(t *testing.T) {
	t.Setenv("CHESS_ADDR", "")
	t.Setenv("CHESS_ALLOWED_ORIGINS", "")
	path := filepath.Join(t.TempDir(), ".env")
	body := "CHESS_ADDR=:9000\nCHESS_ALLOWED_ORIGINS=http://a.test, http://b.test\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	// godotenv does not override variables that are already set, even empty
	os.Unsetenv("CHESS_ADDR")
	os.Unsetenv("CHESS_ALLOWED_ORIGINS")
	env, err := GetEnv(path)
	if err != nil {
		t.Fatal(err)
	}
	if env.Addr != ":9000" {
		t.Fatalf("got addr %q want :9000", env.Addr)
	}
	if len(env.AllowedOrigins) != 2 || env.AllowedOrigins[1] != "http://b.test" {
		t.Fatalf("got origins %v", env.AllowedOrigins)
	}
}
