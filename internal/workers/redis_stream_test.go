package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"secret-santa-backend/internal/features/exchange/models"
)

type mockDrawService struct {
	mock.Mock
}

func (m *mockDrawService) Draw(ctx context.Context, exchangeID string) (*models.DrawResult, error) {
	args := m.Called(ctx, exchangeID)
	r, _ := args.Get(0).(*models.DrawResult)
	return r, args.Error(1)
}

func (m *mockDrawService) Reset(ctx context.Context, exchangeID string) (int, error) {
	args := m.Called(ctx, exchangeID)
	return args.Int(0), args.Error(1)
}

func (m *mockDrawService) ListAssignments(ctx context.Context, exchangeID string) (*models.AssignmentsResponse, error) {
	args := m.Called(ctx, exchangeID)
	r, _ := args.Get(0).(*models.AssignmentsResponse)
	return r, args.Error(1)
}

func (m *mockDrawService) GetAssignment(ctx context.Context, exchangeID, giverID string) (*models.AssignmentResponse, error) {
	args := m.Called(ctx, exchangeID, giverID)
	r, _ := args.Get(0).(*models.AssignmentResponse)
	return r, args.Error(1)
}

func (m *mockDrawService) ListExchanges(ctx context.Context) ([]models.ExchangeSummary, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).([]models.ExchangeSummary)
	return r, args.Error(1)
}

func newTestWorker(t *testing.T, draws *mockDrawService) (*RedisStreamWorker, *redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	w := NewRedisStreamWorker(client, draws, StreamConfig{
		Stream:            "santa:events",
		Group:             "santa_backend_consumers",
		Consumer:          "test",
		Block:             20 * time.Millisecond,
		DefaultExchangeID: "global-exchange",
	}, zerolog.Nop())
	return w, client, mr
}

func TestProcessMessage(t *testing.T) {
	draws := new(mockDrawService)
	w, _, _ := newTestWorker(t, draws)
	ctx := context.Background()

	draws.On("Draw", ctx, "office").Return(&models.DrawResult{ParticipantsCount: 3}, nil).Once()
	draws.On("Draw", ctx, "global-exchange").Return(nil, errors.New("not enough participants")).Once()
	draws.On("Reset", ctx, "office").Return(3, nil).Once()

	w.processMessage(ctx, "1-0", map[string]interface{}{"type": EventDrawRequested, "exchange_id": "office"})
	w.processMessage(ctx, "2-0", map[string]interface{}{"type": EventDrawRequested})
	w.processMessage(ctx, "3-0", map[string]interface{}{"type": EventResetRequested, "exchange_id": "office"})
	w.processMessage(ctx, "4-0", map[string]interface{}{"type": "bot_removed"})
	w.processMessage(ctx, "5-0", map[string]interface{}{})
	w.processMessage(ctx, "6-0", map[string]interface{}{"type": EventDrawRequested, "exchange_id": "bad id!"})

	draws.AssertExpectations(t)
}

func TestStartConsumesAndAcks(t *testing.T) {
	draws := new(mockDrawService)
	w, client, mr := newTestWorker(t, draws)

	done := make(chan struct{})
	draws.On("Draw", mock.Anything, "office").Return(&models.DrawResult{ParticipantsCount: 2}, nil).Once().
		Run(func(mock.Arguments) { close(done) })

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(stopped)
	}()

	require.Eventually(t, func() bool { return mr.Exists("santa:events") }, time.Second, 5*time.Millisecond)
	require.NoError(t, client.XAdd(context.Background(), &redis.XAddArgs{
		Stream: "santa:events",
		Values: map[string]interface{}{"type": EventDrawRequested, "exchange_id": "office"},
	}).Err())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("draw request was not consumed")
	}

	require.Eventually(t, func() bool {
		pending, err := client.XPending(context.Background(), "santa:events", "santa_backend_consumers").Result()
		return err == nil && pending.Count == 0
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
	draws.AssertExpectations(t)
}
