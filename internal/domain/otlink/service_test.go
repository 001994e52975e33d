package otlink

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"passvault/internal/domain/audit"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, link *Link) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockRepository) Fetch(ctx context.Context, id uuid.UUID, now time.Time) (*Link, error) {
	args := m.Called(ctx, id, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Link), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, userID *uuid.UUID, action string, details map[string]any) {
	m.Called(ctx, userID, action, details)
}

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(repo Repository, rec audit.Recorder) *Service {
	return NewService(repo, rec, slog.Default()).WithClock(func() time.Time { return fixedNow })
}

func TestService_Create(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRec := new(MockRecorder)
	service := newTestService(mockRepo, mockRec)

	owner := uuid.New()
	draft := Draft{
		EncryptedPayload: []byte("payload"),
		IV:               []byte("iv"),
		Salt:             []byte("salt"),
		Expiry:           fixedNow.Add(time.Hour),
		SingleUse:        true,
	}

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(l *Link) bool {
		return l.OwnerID == owner && !l.Used && l.SingleUse && l.CreatedAt.Equal(fixedNow)
	})).Return(nil)
	mockRec.On("Record", mock.Anything, &owner, audit.ActionLinkCreated, mock.MatchedBy(func(d map[string]any) bool {
		return d["single_use"] == true && d["ot_link_id"] != ""
	})).Return()

	link, err := service.Create(context.Background(), owner, draft)
	require.NoError(t, err)
	assert.Equal(t, StateActive, link.State(fixedNow))

	mockRepo.AssertExpectations(t)
	mockRec.AssertExpectations(t)
}

func TestService_Create_PastExpiryAccepted(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRec := new(MockRecorder)
	service := newTestService(mockRepo, mockRec)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockRec.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

	link, err := service.Create(context.Background(), uuid.New(), Draft{
		EncryptedPayload: []byte("p"), IV: []byte("i"), Salt: []byte("s"),
		Expiry: fixedNow.Add(-time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, StateExpired, link.State(fixedNow))
}

func TestService_Create_InvalidData(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockRecorder))

	_, err := service.Create(context.Background(), uuid.New(), Draft{
		EncryptedPayload: []byte("p"), IV: []byte("i"), Salt: []byte("s"),
	})
	assert.ErrorIs(t, err, ErrInvalidData)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Fetch_RecordsAnonymousAudit(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRec := new(MockRecorder)
	service := newTestService(mockRepo, mockRec)

	link := &Link{ID: uuid.New(), OwnerID: uuid.New(), Expiry: fixedNow.Add(time.Hour), SingleUse: true, Used: true}

	mockRepo.On("Fetch", mock.Anything, link.ID, fixedNow).Return(link, nil)
	mockRec.On("Record", mock.Anything, (*uuid.UUID)(nil), audit.ActionLinkFetched, map[string]any{"ot_link_id": link.ID.String()}).Return()

	got, err := service.Fetch(context.Background(), link.ID)
	require.NoError(t, err)
	assert.Equal(t, link, got)

	mockRec.AssertExpectations(t)
}

func TestService_Fetch_NotFound(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRec := new(MockRecorder)
	service := newTestService(mockRepo, mockRec)

	id := uuid.New()
	mockRepo.On("Fetch", mock.Anything, id, fixedNow).Return(nil, ErrNotFound)

	_, err := service.Fetch(context.Background(), id)
	assert.Equal(t, ErrNotFound, err)
	mockRec.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Fetch_StorageError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockRecorder))

	id := uuid.New()
	mockRepo.On("Fetch", mock.Anything, id, fixedNow).Return(nil, errors.New("connection reset"))

	_, err := service.Fetch(context.Background(), id)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestService_Delete(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRec := new(MockRecorder)
	service := newTestService(mockRepo, mockRec)

	owner, id := uuid.New(), uuid.New()
	mockRepo.On("Delete", mock.Anything, owner, id).Return(nil)
	mockRec.On("Record", mock.Anything, &owner, audit.ActionLinkDeleted, map[string]any{"ot_link_id": id.String()}).Return()

	require.NoError(t, service.Delete(context.Background(), owner, id))
	mockRec.AssertExpectations(t)
}

func TestService_Delete_NotOwner(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRec := new(MockRecorder)
	service := newTestService(mockRepo, mockRec)

	stranger, id := uuid.New(), uuid.New()
	mockRepo.On("Delete", mock.Anything, stranger, id).Return(ErrNotFound)

	assert.Equal(t, ErrNotFound, service.Delete(context.Background(), stranger, id))
	mockRec.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
