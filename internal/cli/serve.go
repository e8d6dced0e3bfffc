package cli

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/nordvolt/gridcore/internal/runner"
	"github.com/nordvolt/gridcore/internal/world"
	"github.com/nordvolt/gridcore/internal/ws"
)

var serveAddr string
var serveFrameMs int

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "HTTP listen address")
	serveCmd.Flags().IntVar(&serveFrameMs, "frame-ms", 100, "pacing loop wall-clock frame length in milliseconds")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the simulator paced, streaming ticks over WebSocket",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	w, err := world.New(cfg)
	if err != nil {
		return err
	}
	r := runner.New(w)

	hub := ws.NewHub()
	bridge := ws.NewBridge(hub)
	r.OnTick = bridge.OnTick
	r.OnPhase = bridge.OnPhase

	handler := ws.NewHandler(hub, r)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(resp http.ResponseWriter, req *http.Request) {
		resp.WriteHeader(http.StatusOK)
		fmt.Fprintln(resp, "ok")
	})
	mux.Handle("/ws", handler)
	mux.Handle("/metrics", promhttp.Handler())

	stop := make(chan struct{})
	go r.Run(time.Duration(serveFrameMs)*time.Millisecond, stop)
	defer close(stop)

	log.Printf("gridcore: serving on %s at speed %gx", serveAddr, r.Speed())
	return http.ListenAndServe(serveAddr, mux)
}
