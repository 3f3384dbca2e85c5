package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/jfields/huddle/internal/auth"
	"github.com/jfields/huddle/internal/config"
	"github.com/jfields/huddle/internal/handlers"
	"github.com/jfields/huddle/internal/service"
	"github.com/jfields/huddle/internal/store/sqlstore"
	"github.com/jfields/huddle/internal/ws"
)

var addr = flag.String("addr", "", "http service address (overrides ADDR)")

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()
	if *addr != "" {
		cfg.Addr = *addr
	}

	store, err := sqlstore.New(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	hub := ws.NewHub()
	go hub.Run()

	r := handlers.NewRouter(
		&handlers.UserHandler{Users: &service.UserService{Store: store, Tokens: tokens}},
		&handlers.ChatHandler{Chats: &service.ChatService{Store: store}},
		&handlers.MessageHandler{Messages: &service.MessageService{Store: store}},
		tokens,
		hub,
	)

	log.Println("Starting server on", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, r))
}
