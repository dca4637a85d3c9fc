package smsgate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/smtp"
	"strings"
	"testing"

	"github.com/solarteam/purchaseline/internal/config"
	"github.com/solarteam/purchaseline/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testNotification() *model.Notification {
	return &model.Notification{
		Title: "Item update",
		Body:  "heat sink has been delivered",
	}
}

func TestMailGatewayDisabled(t *testing.T) {
	g := New("", "", testLogger())
	if g.Enabled() {
		t.Fatal("gateway without smtp settings must be disabled")
	}
	if err := g.Send(context.Background(), "+19795550142", "att", testNotification()); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected disabled error, got %v", err)
	}
}

func TestMailGatewaySend(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	g := New("smtp.team.edu:587", "bot@team.edu", testLogger())
	g.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	if err := g.Send(context.Background(), "+19795550142", "att", testNotification()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAddr != "smtp.team.edu:587" || gotFrom != "bot@team.edu" {
		t.Fatalf("unexpected relay settings %q %q", gotAddr, gotFrom)
	}
	if len(gotTo) != 1 || gotTo[0] != "9795550142@txt.att.net" {
		t.Fatalf("unexpected recipient %v", gotTo)
	}
	if !strings.Contains(string(gotMsg), "heat sink has been delivered") {
		t.Fatalf("body missing from message: %s", gotMsg)
	}
	if !strings.Contains(string(gotMsg), "Subject: Item update") {
		t.Fatalf("subject missing from message: %s", gotMsg)
	}
}

func TestMailGatewayCarriers(t *testing.T) {
	cases := []struct {
		carrier string
		domain  string
	}{
		{"att", "txt.att.net"},
		{"Verizon", "vtext.com"},
		{"tmobile", "tmomail.net"},
		{"sprint", "messaging.sprintpcs.com"},
	}

	for _, tc := range cases {
		t.Run(tc.carrier, func(t *testing.T) {
			g := New("smtp.team.edu:587", "bot@team.edu", testLogger())
			var gotTo []string
			g.sendMail = func(_ string, _ smtp.Auth, _ string, to []string, _ []byte) error {
				gotTo = to
				return nil
			}
			if err := g.Send(context.Background(), "+19795550142", tc.carrier, testNotification()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(gotTo) != 1 || !strings.HasSuffix(gotTo[0], "@"+tc.domain) {
				t.Fatalf("unexpected recipient %v", gotTo)
			}
		})
	}
}

func TestMailGatewayUnknownCarrier(t *testing.T) {
	g := New("smtp.team.edu:587", "bot@team.edu", testLogger())
	if err := g.Send(context.Background(), "+19795550142", "pigeon", testNotification()); !errors.Is(err, ErrUnknownCarrier) {
		t.Fatalf("expected unknown carrier error, got %v", err)
	}
}

func TestMailGatewaySendFailure(t *testing.T) {
	g := New("smtp.team.edu:587", "bot@team.edu", testLogger())
	g.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("relay refused")
	}
	if err := g.Send(context.Background(), "+19795550142", "att", testNotification()); err == nil {
		t.Fatal("expected relay error")
	}
}

func TestMailGatewayCanceledContext(t *testing.T) {
	g := New("smtp.team.edu:587", "bot@team.edu", testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := g.Send(ctx, "+19795550142", "att", testNotification()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestNewGatewayUsesConfig(t *testing.T) {
	cfg := &config.Config{SMTPAddress: "smtp.team.edu:587", SMTPFrom: "bot@team.edu"}
	g := newGateway(gatewayParams{Config: cfg, Logger: testLogger()})
	if !g.Enabled() {
		t.Fatal("expected enabled gateway")
	}
}
