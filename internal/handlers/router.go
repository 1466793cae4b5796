package handlers

import (
	"net/http"
	_ "users-api/docs"
	"users-api/internal/wsnotify"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter wires the user endpoints, the change feed and the API docs
// behind request logging and an allow-all CORS policy.
func NewRouter(userHandler *UserHandler, hub *wsnotify.Hub) http.Handler {
	mainRouter := mux.NewRouter()
	mainRouter.Use(RequestLogger)

	router := mainRouter.PathPrefix("/api").Subrouter()
	router.HandleFunc("/users", userHandler.ListUsers).Methods(http.MethodGet)
	router.HandleFunc("/users", userHandler.CreateUser).Methods(http.MethodPost)
	// Registered before /users/{id} so "ws" is never taken for an id.
	router.HandleFunc("/users/ws", WebSocketHandler(hub)).Methods(http.MethodGet)
	router.HandleFunc("/users/{id}", userHandler.GetUser).Methods(http.MethodGet)
	router.HandleFunc("/users/{id}", userHandler.DeleteUser).Methods(http.MethodDelete)
	router.HandleFunc("/users/{id}", userHandler.UpdateUser).Methods(http.MethodPut)

	mainRouter.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
	))

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	})

	return c.Handler(mainRouter)
}
