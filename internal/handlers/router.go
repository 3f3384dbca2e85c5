package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jfields/huddle/internal/auth"
	"github.com/jfields/huddle/internal/middleware"
	"github.com/jfields/huddle/internal/ws"
)

// NewRouter assembles the full route table: public signup/login, the
// bearer-authenticated API, and the websocket endpoint.
func NewRouter(users *UserHandler, chats *ChatHandler, messages *MessageHandler, tokens *auth.Manager, hub *ws.Hub) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Logging)

	// Public endpoints
	r.HandleFunc("/api/user", users.Signup).Methods("POST")
	r.HandleFunc("/api/user/login", users.Login).Methods("POST")

	// Authenticated endpoints. Subrouter paths are relative to the
	// /api prefix.
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Auth(tokens))
	api.HandleFunc("/user", users.Search).Methods("GET")
	api.HandleFunc("/chat", chats.AccessChat).Methods("POST")
	api.HandleFunc("/chat", chats.FetchChats).Methods("GET")
	api.HandleFunc("/chat/group", chats.CreateGroup).Methods("POST")
	api.HandleFunc("/chat/group/rename", chats.RenameGroup).Methods("PUT")
	api.HandleFunc("/chat/group/add", chats.AddToGroup).Methods("PUT")
	api.HandleFunc("/chat/group/remove", chats.RemoveFromGroup).Methods("DELETE")
	api.HandleFunc("/message", messages.Send).Methods("POST")
	api.HandleFunc("/message/{chatID}", messages.List).Methods("GET")

	// WebSocket endpoint. Browsers cannot set headers on upgrade
	// requests, so the bearer token rides in the query string.
	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		userID, err := tokens.Verify(r.URL.Query().Get("token"))
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		ws.ServeWs(hub, w, r, userID)
	})

	return r
}
