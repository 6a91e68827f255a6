package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFormatPrice(t *testing.T) {
	require.Equal(t, "5,000 UZS", FormatPrice(5000, ""))
	require.Equal(t, "1,234,567 USD", FormatPrice(1234567, "USD"))
	require.Equal(t, "999 UZS", FormatPrice(999, "UZS"))
	require.Equal(t, "-100,000 UZS", FormatPrice(-100000, ""))
}

func TestTelegramService_NotifyPaymentSuccess(t *testing.T) {
	var got telegramMessage
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := NewTelegramService("token", "42", zap.NewNop().Sugar())
	svc.baseURL = srv.URL

	err := svc.NotifyPaymentSuccess(PaymentSuccessNotification{
		Provider:      "Click",
		OrderID:       "order-1",
		TransactionID: "555",
		ProductName:   "Ride",
		Amount:        5000,
	})
	require.NoError(t, err)
	require.Equal(t, "/bottoken/sendMessage", path)
	require.Equal(t, "42", got.ChatID)
	require.Equal(t, "HTML", got.ParseMode)
	require.Contains(t, got.Text, "order-1")
	require.Contains(t, got.Text, "5,000 UZS")
	require.Contains(t, got.Text, "Click")
}

func TestTelegramService_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := NewTelegramService("token", "42", zap.NewNop().Sugar())
	svc.baseURL = srv.URL

	err := svc.NotifyPaymentSuccess(PaymentSuccessNotification{OrderID: "order-1"})
	require.ErrorContains(t, err, "502")
}

func TestTelegramService_DisabledWithoutConfig(t *testing.T) {
	svc := NewTelegramService("", "", zap.NewNop().Sugar())
	require.NoError(t, svc.NotifyPaymentSuccess(PaymentSuccessNotification{OrderID: "x"}))

	svc = NewTelegramService("token", "", zap.NewNop().Sugar())
	require.NoError(t, svc.NotifyPaymentSuccess(PaymentSuccessNotification{OrderID: "x"}))
}
