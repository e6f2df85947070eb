// Command shinyaircd runs an IRC server reachable over WebSocket.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/keitagame/shinya-irc/internal/config"
	"github.com/keitagame/shinya-irc/internal/server"
	"github.com/keitagame/shinya-irc/internal/transport"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&nested.Formatter{
		HideKeys:    true,
		FieldsOrder: []string{"client", "host"},
	})

	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	srv := server.New(cfg, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		conn, err := transport.Upgrade(w, r)
		if err != nil {
			log.WithError(err).Warn("upgrade failed")
			return
		}
		srv.Accept(conn)
	})

	addr := cfg.Host + ":" + cfg.Port
	httpServer := &http.Server{Addr: addr, Handler: mux}

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		log.WithField("addr", addr).Info("listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("listen failed")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Info("shutting down")
		cancel()
		_ = httpServer.Shutdown(context.Background())
	}()

	if err := srv.Serve(ctx); err != nil {
		log.WithError(err).Fatal("server error")
	}

	log.Info("server shutdown cleanly")
}
