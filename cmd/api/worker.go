package main

import (
	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/logger"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notification"
)

func workerCmd() *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Process queued e-mail notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			// the worker needs no database
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Env, cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			var mailer notification.Mailer
			if cfg.SMTPEnabled() {
				m, err := notification.NewSMTPMailer(
					cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom,
				)
				if err != nil {
					return err
				}
				mailer = m
			} else {
				log.Warn("SMTP_HOST not set, e-mails will only be logged")
				mailer = notification.NewLogMailer(log)
			}

			srv := asynq.NewServer(
				asynq.RedisClientOpt{
					Addr:     cfg.RedisAddr,
					Password: cfg.RedisPassword,
					DB:       cfg.RedisQueueDB,
				},
				asynq.Config{
					Concurrency: concurrency,
					Queues: map[string]int{
						"default": 1,
					},
				},
			)

			mux := asynq.NewServeMux()
			mux.Handle(notification.TypeEmailSend, notification.NewHandler(mailer, log))

			log.Info("worker running", zap.Int("concurrency", concurrency))
			// Run blocks until SIGINT/SIGTERM.
			return srv.Run(mux)
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", 10, "parallel tasks")
	return cmd
}
