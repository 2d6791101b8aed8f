// stockstore serves the in-memory development inventory store on the wire
// protocol the engine expects. It stands in for the real store locally.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/stockpilot/stockpilot/internal/platform/shutdown"
	"github.com/stockpilot/stockpilot/internal/store/storetest"
)

func main() {
	addr := strings.TrimSpace(os.Getenv("STOCKSTORE_ADDR"))
	if addr == "" {
		addr = ":8000"
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           storetest.NewServer().Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		fmt.Printf("stockstore listening on %s\n", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			fmt.Printf("stockstore exited: %v\n", err)
			os.Exit(1)
		}
	}
}
