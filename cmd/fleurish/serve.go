package main

import (
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the garden gateway",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cfg, logger, nil)
		if err != nil {
			return err
		}
		s := server.Default(server.WithHostPorts(cfg.Server.ListenAddress))
		a.handler.RegisterRoutes(s)

		logger.Info("fleurish gateway listening",
			zap.String("addr", cfg.Server.ListenAddress),
			zap.String("api_base_url", cfg.API.BaseURL),
		)
		s.Spin()
		return nil
	},
}
