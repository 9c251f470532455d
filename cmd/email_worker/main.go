package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/oksasatya/go-ddd-catalog/config"
	"github.com/oksasatya/go-ddd-catalog/internal/application"
	"github.com/oksasatya/go-ddd-catalog/pkg/helpers"
	"github.com/oksasatya/go-ddd-catalog/pkg/mailer"
	mailtpl "github.com/oksasatya/go-ddd-catalog/pkg/mailer/templates"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if cfg.RabbitMQURL == "" || cfg.RabbitMQEventsQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	var sender mailer.Sender
	if cfg.MailSendEnabled {
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
			log.Fatal("Mailgun not configured")
		}
		sender = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	} else {
		logger.Warn("MAIL_SEND_ENABLED=false; welcome emails are logged, not sent")
		sender = mailer.LogSender{Logger: logger}
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}
	if err := helpers.DeclareQueue(ch, cfg.RabbitMQEventsQueue); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQEventsQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	welcome := application.NewWelcomeMailer(sender, mailtpl.Branding{
		CompanyName: cfg.CompanyName,
		AppName:     cfg.AppName,
		SupportURL:  cfg.SupportURL,
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			c, cancelMsg := context.WithTimeout(ctx, 15*time.Second)
			outcome := welcome.Handle(c, msg.Body)
			cancelMsg()

			switch outcome {
			case application.Ack:
				_ = msg.Ack(false)
			case application.Retry:
				_ = msg.Nack(false, true)
			default:
				_ = msg.Nack(false, false)
			}
		}
	}()

	logger.WithField("queue", cfg.RabbitMQEventsQueue).Info("email worker listening")
	<-stop
	logger.Info("shutting down")
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
