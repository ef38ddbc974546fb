package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/AlejandroCopponi/esencia-retro/internal/checkout"
	"github.com/AlejandroCopponi/esencia-retro/internal/config"
	"github.com/AlejandroCopponi/esencia-retro/internal/logging"
	"github.com/AlejandroCopponi/esencia-retro/internal/mail"
	"github.com/AlejandroCopponi/esencia-retro/internal/mq"
)

// The remarketing worker mails shoppers who typed their email at
// checkout but never finished the purchase.
//
// TODO: delay sends so shoppers who finish checkout right away don't
// also get a recovery mail.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := logging.Init(cfg.AppEnv)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	consumer, err := mq.DialConsumer(cfg.AMQPURL, "remarketing", mq.EventCheckoutAbandoned)
	if err != nil {
		zap.L().Fatal("rabbitmq connect failed", zap.Error(err))
	}
	defer consumer.Close()

	mailer := mail.NewSMTPMailer(mail.SMTPConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.SMTPFrom,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zap.L().Info("remarketing worker started")
	err = consumer.Consume(ctx, func(event string, body []byte) error {
		var ev checkout.AbandonedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("bad payload: %w", err)
		}
		if ev.Email == "" {
			return nil
		}
		subject, text := recoveryMail(ev)
		if err := mailer.Send(ev.Email, subject, text); err != nil {
			return fmt.Errorf("send to %s: %w", ev.Email, err)
		}
		zap.L().Info("recovery mail sent", zap.String("email", ev.Email))
		return nil
	})
	if err != nil && ctx.Err() == nil {
		zap.L().Fatal("consumer stopped", zap.Error(err))
	}
}

func recoveryMail(ev checkout.AbandonedEvent) (subject, body string) {
	var lines []string
	for _, it := range ev.Items {
		lines = append(lines, fmt.Sprintf("- %s (talle %s) x%d", it.Name, it.Size, it.Quantity))
	}
	subject = "Tu camiseta te está esperando"
	body = "¡Hola!\n\nDejaste estas camisetas en tu carrito:\n\n" +
		strings.Join(lines, "\n") +
		"\n\nVolvé cuando quieras y terminá tu compra.\n\nEsencia Retro"
	return subject, body
}
