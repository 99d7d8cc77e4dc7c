package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leavepanel/internal/audit"
	intconfig "leavepanel/internal/config"
	router "leavepanel/internal/http"
	h "leavepanel/internal/http/handlers"
	"leavepanel/internal/session"
	"leavepanel/internal/upstream"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db := intconfig.ConnectDB(env.DBDSN)
	defer intconfig.CloseDB()

	store, err := session.NewStore(db)
	if err != nil {
		log.Fatalf("session store init failed: %v", err)
	}
	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := store.EnsureSchema(ctx); err != nil {
			cancel()
			log.Fatalf("session schema init failed: %v", err)
		}
		if err := store.DeleteExpired(ctx, time.Now()); err != nil {
			log.Printf("warning: failed to prune expired sessions: %v", err)
		}
		cancel()
	}

	api := upstream.NewClient(env.APIBaseURL, nil, nil)
	sessions := session.NewManager(store, api, []byte(env.SessionSecret), env.SessionTTL)

	deps := &h.Deps{
		Env:      env,
		Sessions: sessions,
		API:      api,
		Audit:    audit.NewLogger(env.AuditLogPath),
	}

	r := router.NewRouter(env, deps)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("leave panel listening on http://localhost%s (leave API at %s)", env.AppAddr, env.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Println("server stopped cleanly.")
}
