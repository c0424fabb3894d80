package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"speakit/config"
	"speakit/internal/domain/constants"
	"speakit/internal/domain/entity"
	"speakit/internal/domain/repository"
	"speakit/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventLogStore struct {
	mu      sync.Mutex
	rows    []*entity.AccountEventLog
	nextErr error
}

func (s *fakeEventLogStore) Record(_ context.Context, eventLog *entity.AccountEventLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nextErr != nil {
		return s.nextErr
	}

	eventLog.ID = uuid.New()
	eventLog.RecordedAt = time.Now()
	s.rows = append(s.rows, eventLog)

	return nil
}

func (s *fakeEventLogStore) recorded() []*entity.AccountEventLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*entity.AccountEventLog(nil), s.rows...)
}

func newTestPushHandler(store *fakeEventLogStore) *PushHandler {
	cfg := &config.Config{}
	cfg.Env.Env = constants.EnvDevelop
	cfg.PubSub = &config.PubSubConfig{Provider: constants.PubSubProviderLocal}

	return NewPushHandler(PushHandlerParams{
		Config:       cfg,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		EventLogRepo: store,
	})
}

func pushRequest(t *testing.T, body []byte) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func encodePush(t *testing.T, event *service.AccountEvent, attributes map[string]string) []byte {
	t.Helper()

	payload, err := json.Marshal(event)
	require.NoError(t, err)

	var msg PubSubMessage
	msg.Message.Data = base64.StdEncoding.EncodeToString(payload)
	msg.Message.Attributes = attributes
	msg.Message.MessageID = event.EventID
	msg.Subscription = "projects/local/subscriptions/account-events-sub"

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return body
}

func sampleEvent() *service.AccountEvent {
	return &service.AccountEvent{
		EventID:    uuid.New().String(),
		Type:       service.AccountEventRegistered,
		UserID:     uuid.New().String(),
		Email:      "user@example.com",
		OccurredAt: time.Now().UTC(),
	}
}

func TestHandlePush_RecordsEvent(t *testing.T) {
	store := &fakeEventLogStore{}
	h := newTestPushHandler(store)
	event := sampleEvent()

	c, rec := pushRequest(t, encodePush(t, event, nil))
	require.NoError(t, h.HandlePush(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	rows := store.recorded()
	require.Len(t, rows, 1)
	assert.Equal(t, event.EventID, rows[0].EventID)
	assert.Equal(t, string(service.AccountEventRegistered), rows[0].EventType)
	assert.Equal(t, event.UserID, rows[0].UserID.String())
	assert.Equal(t, event.Email, rows[0].Email)
}

func TestHandlePush_RequestIDFromAttributes(t *testing.T) {
	store := &fakeEventLogStore{}
	h := newTestPushHandler(store)
	event := sampleEvent()
	event.RequestID = "from-event"

	c, rec := pushRequest(t, encodePush(t, event, map[string]string{"request_id": "from-attributes"}))
	require.NoError(t, h.HandlePush(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	rows := store.recorded()
	require.Len(t, rows, 1)
	assert.Equal(t, "from-attributes", rows[0].RequestID)
}

func TestHandlePush_DuplicateEventAcked(t *testing.T) {
	store := &fakeEventLogStore{nextErr: repository.ErrEventAlreadyRecorded}
	h := newTestPushHandler(store)

	c, rec := pushRequest(t, encodePush(t, sampleEvent(), nil))
	require.NoError(t, h.HandlePush(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.recorded())
}

func TestHandlePush_StorageFailureIsRetried(t *testing.T) {
	store := &fakeEventLogStore{nextErr: context.DeadlineExceeded}
	h := newTestPushHandler(store)

	c, rec := pushRequest(t, encodePush(t, sampleEvent(), nil))
	require.NoError(t, h.HandlePush(c))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandlePush_MalformedUserIDNotRetried(t *testing.T) {
	store := &fakeEventLogStore{}
	h := newTestPushHandler(store)
	event := sampleEvent()
	event.UserID = "not-a-uuid"

	c, rec := pushRequest(t, encodePush(t, event, nil))
	require.NoError(t, h.HandlePush(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.recorded())
}

func TestHandlePush_InvalidBase64Rejected(t *testing.T) {
	store := &fakeEventLogStore{}
	h := newTestPushHandler(store)

	var msg PubSubMessage
	msg.Message.Data = "%%% not base64 %%%"
	body, err := json.Marshal(msg)
	require.NoError(t, err)

	c, rec := pushRequest(t, body)
	require.NoError(t, h.HandlePush(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePush_InvalidEventJSONRejected(t *testing.T) {
	store := &fakeEventLogStore{}
	h := newTestPushHandler(store)

	var msg PubSubMessage
	msg.Message.Data = base64.StdEncoding.EncodeToString([]byte("not json"))
	body, err := json.Marshal(msg)
	require.NoError(t, err)

	c, rec := pushRequest(t, body)
	require.NoError(t, h.HandlePush(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
