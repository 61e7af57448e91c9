package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/userhub/userhub/config"
	"github.com/userhub/userhub/internal/worker"
	"github.com/userhub/userhub/pkg/helpers"
	"github.com/userhub/userhub/pkg/mailer"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-emaildispatcher", cfg.Env)

	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
	if err != nil {
		log.Fatalf("amqp connect: %v", err)
	}
	defer consumer.Close()

	var m mailer.Mailer
	if cfg.MailSendEnabled && cfg.MailgunDomain != "" && cfg.MailgunAPIKey != "" && cfg.MailgunSender != "" {
		m = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	} else {
		logger.Info("mail sending disabled, using log mailer")
		m = &mailer.LogMailer{Logger: logger}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d := worker.NewEmailDispatcher(consumer, m, logger, cfg.EmailPollInterval, cfg.EmailPollBatch)
	d.Run(ctx)
}
