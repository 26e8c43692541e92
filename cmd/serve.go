package cmd

import (
	"context"
	"net/http"
	"time"

	"github.com/packarr/packarr/config"
	pkghttp "github.com/packarr/packarr/pkg/http"
	"github.com/packarr/packarr/pkg/logger"
	"github.com/packarr/packarr/pkg/manager"
	"github.com/packarr/packarr/pkg/progress"
	"github.com/packarr/packarr/pkg/sonarr"
	"github.com/packarr/packarr/pkg/storage/sqlite"
	"github.com/packarr/packarr/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultSonarrTimeout = time.Second * 30

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the season pack server",
	Long:  `start the season pack server`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()

		cfg, err := config.New(viper.GetViper())
		if err != nil {
			log.Fatalw("failed to read configurations", "error", err)
		}

		if len(cfg.Sonarr.Instances) == 0 {
			log.Fatal("no sonarr instances configured")
		}

		clients := make(map[string]sonarr.ClientInterface, len(cfg.Sonarr.Instances))
		for _, instance := range cfg.Sonarr.Instances {
			timeout := instance.Timeout
			if timeout == 0 {
				timeout = defaultSonarrTimeout
			}

			httpOpts := []pkghttp.ClientOption{
				pkghttp.WithHTTPClient(&http.Client{Timeout: timeout}),
			}
			if instance.MaxRetries > 0 {
				httpOpts = append(httpOpts, pkghttp.WithMaxRetries(instance.MaxRetries))
			}
			if instance.BaseBackoff > 0 {
				httpOpts = append(httpOpts, pkghttp.WithBaseBackoff(instance.BaseBackoff))
			}

			client, err := sonarr.New(instance.URL, instance.APIKey,
				sonarr.WithHTTPClient(pkghttp.NewRateLimitedHTTPClient(httpOpts...)))
			if err != nil {
				log.Fatalw("failed to create sonarr client", "instance", instance.Name, "error", err)
			}

			clients[instance.Name] = client
		}

		store, err := sqlite.New(cfg.Storage.FilePath)
		if err != nil {
			log.Fatalw("failed to create storage connection", "error", err)
		}

		ctx := logger.WithCtx(context.Background(), log)
		err = store.Init(ctx)
		if err != nil {
			log.Fatalw("failed to init database", "error", err)
		}

		hub := progress.NewHub()
		go hub.Run(ctx)

		m := manager.New(clients, store, hub, manager.Options{
			InterItemDelay:     cfg.Manager.InterItemDelay,
			Retention:          cfg.Manager.Retention,
			MinBytesPerEpisode: cfg.Manager.MinBytesPerEpisode,
		})

		m.TestConnections(ctx)

		srv := server.New(log, m, hub)
		log.Error(srv.Serve(cfg.Server.Port))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
