package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/thereayou/chatrooms/internal/database"
	"github.com/thereayou/chatrooms/internal/models"
	"github.com/thereayou/chatrooms/internal/websocket"
)

type mockRoomStore struct{ mock.Mock }

func (m *mockRoomStore) CreateRoom(ctx context.Context, name string) (*models.Room, error) {
	args := m.Called(ctx, name)
	room, _ := args.Get(0).(*models.Room)
	return room, args.Error(1)
}

func (m *mockRoomStore) ListRooms(ctx context.Context) ([]models.Room, error) {
	args := m.Called(ctx)
	rooms, _ := args.Get(0).([]models.Room)
	return rooms, args.Error(1)
}

func (m *mockRoomStore) DeleteRoom(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

type mockMessageLog struct{ mock.Mock }

func (m *mockMessageLog) AppendMessage(ctx context.Context, roomName, sender, body string) (*models.Message, error) {
	args := m.Called(ctx, roomName, sender, body)
	msg, _ := args.Get(0).(*models.Message)
	return msg, args.Error(1)
}

func (m *mockMessageLog) ListRoomMessages(ctx context.Context, roomName string) ([]models.Message, error) {
	args := m.Called(ctx, roomName)
	messages, _ := args.Get(0).([]models.Message)
	return messages, args.Error(1)
}

func (m *mockMessageLog) DeleteRoomMessages(ctx context.Context, roomName string) (int64, error) {
	args := m.Called(ctx, roomName)
	return args.Get(0).(int64), args.Error(1)
}

type mockDirectory struct{ mock.Mock }

func (m *mockDirectory) SubscribersOf(roomName string) []websocket.Subscriber {
	args := m.Called(roomName)
	subs, _ := args.Get(0).([]websocket.Subscriber)
	return subs
}

// recordingSubscriber keeps every pushed payload; fail makes every push error.
type recordingSubscriber struct {
	id     uuid.UUID
	fail   error
	onSend func(data interface{})

	mu       sync.Mutex
	received []*models.Message
}

func newRecordingSubscriber() *recordingSubscriber {
	return &recordingSubscriber{id: uuid.New()}
}

func (r *recordingSubscriber) ID() uuid.UUID { return r.id }

func (r *recordingSubscriber) SendMessage(msgType websocket.MessageType, data interface{}) error {
	if r.fail != nil {
		return r.fail
	}
	if r.onSend != nil {
		r.onSend(data)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if msgType == websocket.TypeNewMessage {
		r.received = append(r.received, data.(*models.Message))
	}
	return nil
}

func (r *recordingSubscriber) messages() []*models.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*models.Message(nil), r.received...)
}

func setupStore(t *testing.T) *database.Database {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return database.NewDatabase(db, 2*time.Second)
}
