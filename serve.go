package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fabsim/calculator"
	"fabsim/server"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web simulator",
	Long:  `Serves the interactive page, its websocket, the JSON API and Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		addr := cfg.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		calc := calculator.NewCalculator(cfg)
		s, err := server.NewServer(addr, upgrader, calc)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if watch, _ := cmd.Flags().GetBool("watch"); watch {
			go func() {
				err := calculator.Watch(ctx, path, func(next calculator.Config) {
					if err := calc.SetConfig(next); err != nil {
						log.WithField("err", err).Error("reloaded config refused")
					}
				})
				if err != nil {
					log.WithFields(log.Fields{"path": path, "err": err}).Error("config watch stopped")
				}
			}()
		}
		return s.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":9000", "listen address (overrides the config file)")
	serveCmd.Flags().Bool("watch", false, "reload model settings when the config file changes")
}
