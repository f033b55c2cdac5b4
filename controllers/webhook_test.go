package controllers

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"WaDesk/pkg/dedup"
	"WaDesk/pkg/events"
	"WaDesk/pkg/services"
	"WaDesk/pkg/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newWebhookRig(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.New(store.NewFileMirror(filepath.Join(t.TempDir(), "messages.json")), zap.NewNop())
	reg := events.NewRegistry(zap.NewNop())
	inbox := services.NewInbox(st, reg, &services.RecordingNotifier{}, zap.NewNop())
	guard := dedup.New(time.Minute)

	r := gin.New()
	r.POST("/webhook", ReceiveWebhook(inbox, guard, zap.NewNop()))
	r.GET("/webhook", VerifyWebhook("secret-token", zap.NewNop()))
	return r, st
}

func postWebhook(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const textNotification = `{
  "entry": [{
    "changes": [{
      "value": {
        "metadata": {"phone_number_id": "chan1"},
        "messages": [{
          "id": "m1",
          "from": "+1555",
          "type": "text",
          "timestamp": "1000",
          "text": {"body": "hi"}
        }]
      }
    }]
  }]
}`

func TestReceiveWebhookStoresTextMessage(t *testing.T) {
	r, st := newWebhookRig(t)

	if w := postWebhook(r, textNotification); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	m, ok := st.Find("m1")
	if !ok {
		t.Fatalf("expected message stored")
	}
	if m.From != "+1555" || m.Text.Body != "hi" || m.Timestamp != 1000 || m.BusinessPhoneNumberID != "chan1" {
		t.Fatalf("unexpected message %+v", m)
	}
}

func TestReceiveWebhookAcceptsNumericTimestamp(t *testing.T) {
	r, st := newWebhookRig(t)

	body := strings.Replace(textNotification, `"timestamp": "1000"`, `"timestamp": 1000`, 1)
	if w := postWebhook(r, body); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if m, ok := st.Find("m1"); !ok || m.Timestamp != 1000 {
		t.Fatalf("expected numeric timestamp accepted, got %+v ok=%v", m, ok)
	}
}

func TestReceiveWebhookDropsNonText(t *testing.T) {
	r, st := newWebhookRig(t)

	body := strings.Replace(textNotification, `"type": "text"`, `"type": "image"`, 1)
	if w := postWebhook(r, body); w.Code != http.StatusOK {
		t.Fatalf("expected 200 even for dropped message, got %d", w.Code)
	}
	if len(st.Snapshot()) != 0 {
		t.Fatalf("expected non-text message to be dropped")
	}
}

func TestReceiveWebhookDropsDuplicateDelivery(t *testing.T) {
	r, st := newWebhookRig(t)

	postWebhook(r, textNotification)
	postWebhook(r, textNotification)

	if got := len(st.Snapshot()["+1555"]); got != 1 {
		t.Fatalf("expected redelivered notification stored once, got %d", got)
	}
}

func TestReceiveWebhookToleratesGarbage(t *testing.T) {
	r, st := newWebhookRig(t)

	if w := postWebhook(r, "{not json"); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for undecodable body, got %d", w.Code)
	}
	if len(st.Snapshot()) != 0 {
		t.Fatalf("expected nothing stored")
	}
}

func TestVerifyWebhookHandshake(t *testing.T) {
	r, _ := newWebhookRig(t)

	req := httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=secret-token&hub.challenge=12345", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "12345" {
		t.Fatalf("expected challenge echoed, got %d %q", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for wrong token, got %d", w.Code)
	}
}
