package mailer

import (
	"context"
	"testing"
	"time"

	"github.com/foodsaver/foodsaver-backend/pkg/config"
)

func TestClientDisabledWithoutSettings(t *testing.T) {
	client := New(config.SMTPConfig{})
	if client.Enabled() {
		t.Fatal("expected client to be disabled")
	}
	if err := client.Send(context.Background(), "subject", "body"); err == nil {
		t.Fatal("expected send on disabled client to fail")
	}
}

func TestClientEnabledWithFullConfig(t *testing.T) {
	client := New(config.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "pantry@example.com",
		Password: "secret",
		To:       "me@example.com",
		Timeout:  time.Second,
	})
	if !client.Enabled() {
		t.Fatal("expected client to be enabled")
	}
}
