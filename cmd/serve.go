package cmd

import (
	"github.com/gin-gonic/gin"
	"github.com/gnzdotmx/captionflow/internal/server"
	"github.com/gnzdotmx/captionflow/internal/utils"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generation HTTP API",
	Long: `Start an HTTP server exposing POST /api/v1/captions, POST /api/v1/posts,
GET /api/v1/providers and GET /healthz.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}
		if utils.CurrentLogLevel < utils.LevelDebug {
			gin.SetMode(gin.ReleaseMode)
		}

		ctx, stop := signalContext(cmd)
		defer stop()

		gen, err := newGenerator(cfg)
		if err != nil {
			return err
		}
		resolver, err := newResolver(ctx, cfg)
		if err != nil {
			return err
		}

		return server.New(gen, resolver, cfg).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Listen address (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)
}
