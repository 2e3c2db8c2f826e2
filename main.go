package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/anywear/anywear-agent/api"
	"github.com/anywear/anywear-agent/closet"
	"github.com/anywear/anywear-agent/config"
	"github.com/anywear/anywear-agent/coordinator"
	"github.com/anywear/anywear-agent/store"
	"github.com/anywear/anywear-agent/utils"
)

func main() {
	config.LoadConfig()

	// Initialize the state store: MongoDB when configured, otherwise a
	// local SQLite file scoped to this profile.
	var (
		st  store.Store
		err error
	)
	if config.MongoURI != "" {
		st, err = store.ConnectMongo(config.MongoURI)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
	} else {
		st, err = store.OpenSQLite(config.StorePath)
		if err != nil {
			log.Fatalf("Failed to open state store: %v", err)
		}
	}
	defer st.Close(context.Background())

	// Start the coordinator: the single writer of wardrobe state.
	coord := coordinator.New(st, coordinator.NewHub(), coordinator.NewTabRegistry())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go coord.Run(ctx)

	handlers := api.NewHandlers(coord, closet.NewService(st), st)

	// CORS Middleware
	corsMiddleware := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next(w, r)
		}
	}

	// Page-context routes
	http.HandleFunc("/extract", corsMiddleware(handlers.ExtractHandler))
	http.HandleFunc("/capture", corsMiddleware(handlers.CaptureHandler))
	http.HandleFunc("/tabs/navigate", corsMiddleware(handlers.NavigateHandler))
	http.HandleFunc("/panel/open", corsMiddleware(handlers.OpenPanelHandler))

	// Surface routes
	http.HandleFunc("/state", corsMiddleware(handlers.StateHandler))
	http.HandleFunc("/events", corsMiddleware(handlers.EventsHandler))
	http.HandleFunc("/wardrobe/state", corsMiddleware(handlers.WardrobeStateHandler))
	http.HandleFunc("/wardrobe/remove", corsMiddleware(handlers.RemoveSlotHandler))
	http.HandleFunc("/profile", corsMiddleware(handlers.ProfileHandler))
	http.HandleFunc("/history", corsMiddleware(handlers.HistoryHandler))
	http.HandleFunc("/outfits", corsMiddleware(handlers.OutfitHandler))
	http.HandleFunc("/collections", corsMiddleware(handlers.CollectionsHandler))
	http.HandleFunc("/try-on", corsMiddleware(handlers.TryOnHandler))

	port := config.Port
	fmt.Printf("AnyWear agent starting on port %s...\n", port)
	if err := http.ListenAndServe(":"+port, utils.LatencyMiddleware(http.DefaultServeMux)); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
