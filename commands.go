package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scene-stealer/scene-eval/analysis"
	"github.com/scene-stealer/scene-eval/api"
	"github.com/scene-stealer/scene-eval/clients"
	cfg "github.com/scene-stealer/scene-eval/config"
	"github.com/scene-stealer/scene-eval/features"
	"github.com/scene-stealer/scene-eval/logging"
	"github.com/scene-stealer/scene-eval/media"
	"github.com/scene-stealer/scene-eval/orchestrator"
	"github.com/scene-stealer/scene-eval/scoring"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	v := cfg.NewViper()
	var configPath string

	cmd := &cobra.Command{
		Use:          "scene-eval",
		Short:        "Score acting takes against a scene by vocal and facial emotion",
		Version:      version,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml (default: config/$CONFIG_ENV/config.yaml)")
	cmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")
	_ = v.BindPFlag("pipeline.log_level", cmd.PersistentFlags().Lookup("log-level"))

	load := func() (*cfg.Root, error) {
		conf, err := cfg.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		conf.ApplyOverrides(v)
		logging.Setup(conf.Pipeline.LogLvl, conf.Pipeline.LogFormat)
		return conf, nil
	}

	cmd.AddCommand(newEvaluateCommand(load))
	cmd.AddCommand(newServeCommand(v, load))
	return cmd
}

func newEvaluateCommand(load func() (*cfg.Root, error)) *cobra.Command {
	var (
		sceneID, outDir string
		report          bool
	)
	cmd := &cobra.Command{
		Use:   "evaluate <video>",
		Short: "Evaluate one recorded take and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := load()
			if err != nil {
				return err
			}
			res, err := buildPipeline(conf).Evaluate(cmd.Context(), args[0], sceneID)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return err
			}
			if outDir == "" && report {
				outDir = conf.Paths.Outputs
			}
			if outDir != "" {
				path, err := orchestrator.Persist(outDir, args[0], res)
				if err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				log.WithField("path", path).Info("report written")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&sceneID, "scene", "", "scene identifier")
	cmd.Flags().StringVar(&outDir, "out", "", "directory for a result.json report bundle")
	cmd.Flags().BoolVar(&report, "report", false, "write a report bundle under paths.outputs")
	return cmd
}

func newServeCommand(v *viper.Viper, load func() (*cfg.Root, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the evaluation HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := load()
			if err != nil {
				return err
			}
			app := api.New(buildPipeline(conf), api.Config{
				UploadDir:   conf.Server.UploadDir,
				BodyLimitMB: conf.Server.BodyLimitMB,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				log.Info("shutting down")
				_ = app.ShutdownWithContext(context.Background())
			}()

			log.WithFields(log.Fields{
				"addr":       conf.Server.Addr,
				"voice_url":  conf.Services.Voice.URL,
				"facial_url": conf.Services.Facial.URL,
				"upload_dir": conf.Server.UploadDir,
			}).Info("scene-eval API listening")
			return app.Listen(conf.Server.Addr)
		},
	}
	cmd.Flags().String("addr", "", "listen address override")
	_ = v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	return cmd
}

// buildPipeline wires the extractors and model clients. Each pipeline owns
// one facial model session, so concurrent requests queue on the facial branch.
func buildPipeline(conf *cfg.Root) *orchestrator.Pipeline {
	h := clients.NewHTTP(cfg.DurSeconds(conf.Services.TimeoutSec))
	voice := analysis.NewVoiceAnalyzer(
		media.NewAudioExtractor(conf.Media.FFmpeg, conf.Media.TempDir),
		clients.NewVoiceModel(h, conf.Services.Voice.URL, conf.Services.Voice.Model, features.NumCoefficients),
	)
	facial := analysis.NewFacialAnalyzer(
		media.NewFrameExtractor(conf.Media.FFmpeg, conf.Media.FFprobe),
		clients.NewFacialModel(h, conf.Services.Facial.URL, conf.Services.Facial.Model),
	)
	return orchestrator.NewPipeline(voice, facial, scoring.Calculator{})
}
