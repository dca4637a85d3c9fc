package push

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/solarteam/purchaseline/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testNotification() *model.Notification {
	return &model.Notification{
		UserIDs: []int64{1},
		Title:   "Order update",
		Body:    "motors has been shipped",
		Data: model.NotificationData{
			Type:            model.NotificationTypeOrder,
			EntityID:        10,
			Status:          "SHIPPED",
			HumanReadableID: "PO-00010",
		},
	}
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestSendReportsStaleTokens(t *testing.T) {
	var gotPath string
	var gotMessages []message
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotMessages); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
            {"status":"ok"},
            {"status":"error","message":"gone","details":{"error":"DeviceNotRegistered"}},
            {"status":"error","message":"rate","details":{"error":"MessageRateExceeded"}}
        ]}`))
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	tokens := []string{"tok-a", "tok-b", "tok-c"}
	stale, err := client.Send(context.Background(), tokens, testNotification())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/--/api/v2/push/send" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if len(gotMessages) != 3 || gotMessages[0].To != "tok-a" || gotMessages[0].Title != "Order update" {
		t.Fatalf("unexpected payload %+v", gotMessages)
	}
	if gotMessages[0].Data.HumanReadableID != "PO-00010" {
		t.Fatalf("data payload not forwarded: %+v", gotMessages[0].Data)
	}
	if len(stale) != 1 || stale[0] != "tok-b" {
		t.Fatalf("expected only the unregistered token, got %v", stale)
	}
}

func TestSendSkipsEmptyTokenList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("no request expected for empty token list")
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	stale, err := client.Send(context.Background(), nil, testNotification())
	if err != nil || stale != nil {
		t.Fatalf("unexpected result: stale=%v err=%v", stale, err)
	}
}

func TestSendRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	_, err = client.Send(context.Background(), []string{"tok"}, testNotification())
	var rateErr TooManyRequestsError
	if !errors.As(err, &rateErr) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if rateErr.RetryAfter != 7*time.Second {
		t.Fatalf("unexpected retry after %s", rateErr.RetryAfter)
	}
}

func TestSendServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if _, err := client.Send(context.Background(), []string{"tok"}, testNotification()); err == nil {
		t.Fatal("expected error")
	}
}

func TestSendMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if _, err := client.Send(context.Background(), []string{"tok"}, testNotification()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestParseRetryAfter(t *testing.T) {
	if d := parseRetryAfter(""); d != 5*time.Second {
		t.Fatalf("unexpected default %s", d)
	}
	if d := parseRetryAfter("12"); d != 12*time.Second {
		t.Fatalf("unexpected seconds parse %s", d)
	}
	future := time.Now().Add(time.Minute).UTC().Format(http.TimeFormat)
	if d := parseRetryAfter(future); d <= 0 || d > time.Minute {
		t.Fatalf("unexpected http date parse %s", d)
	}
	if d := parseRetryAfter("garbage"); d != 5*time.Second {
		t.Fatalf("unexpected fallback %s", d)
	}
}
