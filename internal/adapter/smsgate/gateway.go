package smsgate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/ttacon/libphonenumber"

	"github.com/solarteam/purchaseline/internal/domain/model"
)

var (
	ErrDisabled       = errors.New("sms gateway not configured")
	ErrUnknownCarrier = errors.New("unknown sms carrier")
)

// carrierDomains maps carrier slugs to their email-to-SMS gateway domains.
var carrierDomains = map[string]string{
	"att":     "txt.att.net",
	"verizon": "vtext.com",
	"tmobile": "tmomail.net",
	"sprint":  "messaging.sprintpcs.com",
}

// Gateway delivers a notification as a text message.
type Gateway interface {
	Enabled() bool
	Send(ctx context.Context, phone, carrier string, n *model.Notification) error
}

// MailGateway implements Gateway by relaying mail to the carrier's
// email-to-SMS bridge.
type MailGateway struct {
	addr   string
	from   string
	logger *slog.Logger

	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// New creates a mail-backed SMS gateway. An empty addr or from disables it.
func New(addr, from string, logger *slog.Logger) *MailGateway {
	return &MailGateway{
		addr:     addr,
		from:     from,
		logger:   logger,
		sendMail: smtp.SendMail,
	}
}

func (g *MailGateway) Enabled() bool {
	return g.addr != "" && g.from != ""
}

// Send relays the notification body to the phone's carrier gateway address.
func (g *MailGateway) Send(ctx context.Context, phone, carrier string, n *model.Notification) error {
	if !g.Enabled() {
		return ErrDisabled
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	domain, ok := carrierDomains[strings.ToLower(carrier)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCarrier, carrier)
	}

	recipient, err := gatewayAddress(phone, domain)
	if err != nil {
		return err
	}

	msg := []byte("From: " + g.from + "\r\n" +
		"To: " + recipient + "\r\n" +
		"Subject: " + n.Title + "\r\n" +
		"\r\n" +
		n.Body + "\r\n")

	if err := g.sendMail(g.addr, nil, g.from, []string{recipient}, msg); err != nil {
		return fmt.Errorf("send sms mail: %w", err)
	}
	return nil
}

// gatewayAddress builds the carrier mailbox from the E.164 phone number.
func gatewayAddress(phone, domain string) (string, error) {
	parsed, err := libphonenumber.Parse(phone, "US")
	if err != nil {
		return "", fmt.Errorf("parse phone: %w", err)
	}
	national := strconv.FormatUint(parsed.GetNationalNumber(), 10)
	return national + "@" + domain, nil
}
