package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"partyhost/internal/display"
	"partyhost/internal/game"
	"partyhost/internal/server"
)

func main() {
	cfg := server.LoadConfig()

	games := game.NewRegistry()
	for _, m := range []game.Module{
		game.NewClickRace(),
		game.NewQuickMath(),
	} {
		if err := games.Register(m); err != nil {
			log.Fatalf("register game: %v", err)
		}
	}

	core := server.NewCore(cfg, games)
	hub := server.NewHub(core)
	relay := server.NewFrameRelay()

	r := chi.NewRouter()
	r.Get("/ws", hub.HandleWS)
	r.Get("/frame.jpg", relay.ServeHTTP)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/diagnostics", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(hub.Diagnostics())
	})

	// Controller page for phones, when the web directory is present.
	if info, err := os.Stat(cfg.WebDir); err == nil && info.IsDir() {
		log.Printf("serving controller files from %s", cfg.WebDir)
		r.Handle("/*", http.FileServer(http.Dir(cfg.WebDir)))
	}

	// Failing to bind the port is the only fatal condition; everything
	// else degrades per connection.
	go func() {
		log.Printf("listening on %s", cfg.Addr)
		if err := http.ListenAndServe(cfg.Addr, r); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	app := display.New(core, hub, relay, cfg)
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
