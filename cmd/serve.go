package cmd

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Aehmlo/ku/internal/server"
	"github.com/Aehmlo/ku/internal/store"
)

var (
	serveAddr  string
	serveStore string
)

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the puzzle API over HTTP",
		Long: `Expose puzzle generation, solving, and scoring as a JSON API.

Endpoints:
  POST /api/generate  {"order": 3, "difficulty": "easy", "seed": 0}
  POST /api/solve     {"puzzle": "<text format>"}
  POST /api/score     {"puzzle": "<text format>"}
  GET  /api/puzzles   saved puzzle library (requires --save)`,
		RunE: runServe,
	}
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringVar(&serveStore, "store", "", "SQLite puzzle library to expose")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("store") {
		serveStore = viper.GetString("store")
	}

	var library *store.Store
	if serveStore != "" {
		var err error
		library, err = store.Open(serveStore)
		if err != nil {
			return err
		}
		defer library.Close()
	}

	mux := http.NewServeMux()
	server.New(library).Register(mux)

	srv := &http.Server{
		Addr:              serveAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logrus.WithFields(logrus.Fields{
		"addr":  serveAddr,
		"store": serveStore,
	}).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
