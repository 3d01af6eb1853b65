package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"

	"github.com/AzmainZaman/CSE470-Project/configs"
	"github.com/AzmainZaman/CSE470-Project/internal/borrow"
	"github.com/AzmainZaman/CSE470-Project/internal/daemon"
	"github.com/AzmainZaman/CSE470-Project/internal/db"
	"github.com/AzmainZaman/CSE470-Project/internal/handlers"
	"github.com/AzmainZaman/CSE470-Project/internal/middleware"
	"github.com/AzmainZaman/CSE470-Project/internal/store"
	"github.com/AzmainZaman/CSE470-Project/internal/utils"
)

func main() {
	cfg := configs.LoadConfig()
	db.Connect(cfg.MongoURI)
	utils.InitJwtSecret(cfg.JWTSecret)

	r := mux.NewRouter()
	r.Use(middleware.JSONMiddleware)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "OK")
	})

	auditCol := db.GetCollection(cfg.DBName, "audit_logs")
	auditLogger := utils.Logger{Collection: auditCol}

	bookStore := store.NewBookStore(db.GetCollection(cfg.DBName, "books"))
	userStore := store.NewUserStore(db.GetCollection(cfg.DBName, "users"))

	authHandler := handlers.NewAuthHandler(userStore, auditLogger)
	r.HandleFunc("/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/login", authHandler.Login).Methods("POST")

	authed := r.PathPrefix("/").Subrouter()
	authed.Use(middleware.JWTAuthMiddleware)

	bookHandler := handlers.NewBookHandler(bookStore, auditLogger)
	authed.HandleFunc("/books", bookHandler.AddBook).Methods("POST")
	authed.HandleFunc("/books", bookHandler.GetBooks).Methods("GET")
	authed.HandleFunc("/books/search", bookHandler.SearchBooks).Methods("GET")
	authed.HandleFunc("/books/{id}", bookHandler.GetBook).Methods("GET")
	authed.HandleFunc("/books/{id}", bookHandler.UpdateBook).Methods("PUT")
	authed.HandleFunc("/books/{id}", bookHandler.DeleteBook).Methods("DELETE")
	authed.HandleFunc("/books/{id}/photo", bookHandler.ChangeBookPhoto).Methods("PATCH")

	userHandler := handlers.NewUserHandler(userStore, auditLogger)
	authed.HandleFunc("/profile", userHandler.GetProfile).Methods("GET")
	authed.HandleFunc("/profile", userHandler.UpdateProfile).Methods("PATCH")
	authed.HandleFunc("/profile/password", userHandler.ChangePassword).Methods("PATCH")
	authed.HandleFunc("/profile/photo", userHandler.ChangePhoto).Methods("PATCH")

	borrowService := borrow.NewService(userStore, bookStore, cfg.MaxBorrowedBooks, cfg.LoanPeriodDays)
	borrowHandler := &handlers.BorrowHandler{
		Users:       userStore,
		Books:       bookStore,
		Service:     borrowService,
		AuditLogger: auditLogger,
	}
	authed.HandleFunc("/borrow", borrowHandler.Borrow).Methods("POST")
	authed.HandleFunc("/return", borrowHandler.Return).Methods("POST")
	authed.HandleFunc("/borrowed", borrowHandler.GetBorrowedBooks).Methods("GET")

	metricsHandler := handlers.MetricsHandler{
		BookCol: db.GetCollection(cfg.DBName, "books"),
		UserCol: db.GetCollection(cfg.DBName, "users"),
		Config:  struct{ LoanPeriodDays int }{LoanPeriodDays: cfg.LoanPeriodDays},
	}
	authed.HandleFunc("/admin/metrics", metricsHandler.GetMetrics).Methods("GET")

	exporter := daemon.LogExporter{Coll: auditCol, Interval: 30 * time.Second}
	exporter.Start()

	var server = http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Println("Server starting on port", cfg.Port)
		log.Fatal(server.ListenAndServe())
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	log.Println("Shutting down gracefully...")
	exporter.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}
	if err := db.Disconnect(ctx); err != nil {
		log.Printf("Mongo disconnect failed: %v", err)
	}
	log.Println("Server shut down.")
}
