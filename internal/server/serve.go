package server

import (
	"context"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

type ServerConfig struct {
	// ShowStartBanner indicates whether to show or hide the server start console message.
	ShowStartBanner bool

	// HttpAddr is the TCP address to listen on (eg. `127.0.0.1:3000`).
	HttpAddr string

	// App configures the routes; its AllowedOrigins default to "*".
	App AppConfig

	TimeToWaitBeforeGracefulShutdown time.Duration
}

// Serve runs the HTTP API until ctx is cancelled, then shuts down gracefully
func Serve(ctx context.Context, cfg ServerConfig, svc Service) error {
	if len(cfg.App.AllowedOrigins) == 0 {
		cfg.App.AllowedOrigins = []string{"*"}
	}
	app := InitApp(svc, cfg.App)

	baseCtx, cancelBaseCtx := context.WithCancel(context.Background())
	defer cancelBaseCtx()

	server := &http.Server{
		Handler:           adaptor.FiberApp(app),
		ReadTimeout:       10 * time.Minute,
		ReadHeaderTimeout: 30 * time.Second,
		Addr:              cfg.HttpAddr,
		BaseContext: func(l net.Listener) context.Context {
			return baseCtx
		},
	}

	if cfg.ShowStartBanner {
		printBanner(server.Addr)
	}

	go func() {
		<-ctx.Done()
		ttw := cfg.TimeToWaitBeforeGracefulShutdown
		if ttw == 0 {
			ttw = time.Second * 5
		}
		color.Yellow("Gracefully shutting down..., waiting up to %v seconds\n", ttw.Seconds())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ttw)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		cancelBaseCtx()
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func printBanner(addr string) {
	schema := "http"
	if strings.HasPrefix(addr, ":") {
		addr = "127.0.0.1" + addr
	}

	date := new(strings.Builder)
	log.New(date, "", log.LstdFlags).Print()

	bold := color.New(color.Bold).Add(color.FgGreen)
	bold.Printf(
		"%s Server started at %s\n",
		strings.TrimSpace(date.String()),
		color.CyanString("%s://%s", schema, addr),
	)

	regular := color.New()
	regular.Printf("├─ Home: %s\n", color.CyanString("%s://%s%s", schema, addr, homeURL))
	regular.Printf("├─ Search: %s\n", color.CyanString("%s://%s%s?q=", schema, addr, searchURL))
	regular.Printf("├─ Quick search: %s\n", color.CyanString("%s://%s%s?q=", schema, addr, quickURL))
	regular.Printf("├─ Show: %s\n", color.CyanString("%s://%s%s", schema, addr, animeURL))
	regular.Printf("└─ Links: %s\n", color.CyanString("%s://%s%s", schema, addr, linksURL))
}
