package server

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr          string
	MinPlayers    int
	CursorTTL     time.Duration
	FrameInterval time.Duration
	WebDir        string
	ScreenWidth   int
	ScreenHeight  int
}

// LoadConfig reads configuration from the environment, with an optional
// .env file layered underneath. Every value has a working default so the
// host runs with no configuration at all.
func LoadConfig() Config {
	if err := godotenv.Load(); err == nil {
		log.Printf("loaded .env")
	}

	return Config{
		Addr:          ":" + envStr("PORT", "8080"),
		MinPlayers:    envInt("MIN_PLAYERS", 2),
		CursorTTL:     time.Duration(envInt("CURSOR_TTL_MS", 3000)) * time.Millisecond,
		FrameInterval: time.Duration(envInt("FRAME_INTERVAL_MS", 500)) * time.Millisecond,
		WebDir:        envStr("WEB_DIR", "web"),
		ScreenWidth:   envInt("SCREEN_WIDTH", 1280),
		ScreenHeight:  envInt("SCREEN_HEIGHT", 720),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
