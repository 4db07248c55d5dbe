package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"fetchyfox.dev/internal/account"
	"fetchyfox.dev/internal/httpapi"
	"fetchyfox.dev/internal/obs"
	"fetchyfox.dev/internal/session"
	"fetchyfox.dev/internal/store/pg"
)

var version = "0.3.1"

const defaultIssuer = "fetchyfox"

func main() {
	obs.Init()
	obs.InitBuildInfo(version, os.Getenv("FETCHY_COMMIT"))

	dsn := os.Getenv("FETCHY_PG_DSN")
	if dsn == "" {
		log.Fatal("FETCHY_PG_DSN is required")
	}
	db, err := pg.Open(dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	if err := pg.Ping(context.Background(), db, 5*time.Second); err != nil {
		log.Printf("warning: database not reachable yet: %v", err)
	}

	secret := os.Getenv("FETCHY_AUTH_SECRET")
	issuer := os.Getenv("FETCHY_AUTH_ISSUER")
	if issuer == "" {
		issuer = defaultIssuer
	}
	codec, err := session.NewCodec(secret, issuer)
	if err != nil {
		log.Fatalf("configure session codec: %v", err)
	}

	var managerOpts []session.ManagerOption
	if raw := os.Getenv("FETCHY_SESSION_TTL"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			log.Fatalf("FETCHY_SESSION_TTL must be a positive number of seconds, got %q", raw)
		}
		managerOpts = append(managerOpts, session.WithLifetime(time.Duration(secs)*time.Second))
	}

	sessions := session.NewManager(codec, session.NewPGStore(db), managerOpts...)
	accounts := account.NewService(account.NewPGStore(db), sessions)

	api := httpapi.New(accounts, sessions, httpapi.ReadyProbe{DB: db}, version)

	addr := os.Getenv("FETCHY_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting fetchy-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	_ = db.Close()
	log.Println("Stopped")
}
