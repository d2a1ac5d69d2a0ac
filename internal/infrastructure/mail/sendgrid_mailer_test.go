package mail

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelhub/backend/internal/application/notification"
	"github.com/travelhub/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

func testMailConfig() config.MailConfig {
	return config.MailConfig{
		Enabled:   true,
		APIKey:    "SG.test",
		FromEmail: "bookings@travelhub.test",
		FromName:  "TravelHub",
	}
}

func TestSendGridMailer_Send(t *testing.T) {
	var captured map[string]any
	var auth, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		path = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &captured)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	mailer, err := NewSendGridMailer(testMailConfig(), zap.NewNop(), WithHost(server.URL))
	require.NoError(t, err)

	err = mailer.Send(context.Background(), notification.Message{
		ToEmail: "lea@example.com",
		ToName:  "Lea",
		Subject: "Booking confirmed",
		Text:    "See you soon",
		HTML:    "<p>See you soon</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer SG.test", auth)
	assert.Equal(t, sendEndpoint, path)
	assert.Equal(t, "Booking confirmed", captured["subject"])
	from := captured["from"].(map[string]any)
	assert.Equal(t, "bookings@travelhub.test", from["email"])
}

func TestSendGridMailer_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer server.Close()

	mailer, err := NewSendGridMailer(testMailConfig(), zap.NewNop(), WithHost(server.URL))
	require.NoError(t, err)

	err = mailer.Send(context.Background(), notification.Message{ToEmail: "lea@example.com", Subject: "x", Text: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=401")
}

func TestNewMailer(t *testing.T) {
	t.Run("disabled mail logs instead", func(t *testing.T) {
		m, err := NewMailer(config.MailConfig{}, zap.NewNop())
		require.NoError(t, err)
		assert.IsType(t, &LogMailer{}, m)
		assert.NoError(t, m.Send(context.Background(), notification.Message{ToEmail: "a@b.co"}))
	})

	t.Run("enabled mail needs a key", func(t *testing.T) {
		cfg := testMailConfig()
		cfg.APIKey = ""
		_, err := NewMailer(cfg, zap.NewNop())
		require.Error(t, err)
	})
}
