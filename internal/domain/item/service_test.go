package item

import (
	"context"
	"errors"
	"fmt"
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

func (m *MockRepository) Create(ctx context.Context, item *Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context, ownerID uuid.UUID) ([]Meta, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Meta), args.Error(1)
}

func (m *MockRepository) Get(ctx context.Context, ownerID, id uuid.UUID) (*Item, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Item), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, item *Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockRepository) FindByTitleHMAC(ctx context.Context, ownerID uuid.UUID, titleHMAC string) ([]Meta, error) {
	args := m.Called(ctx, ownerID, titleHMAC)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Meta), args.Error(1)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, userID *uuid.UUID, action string, details map[string]any) {
	m.Called(ctx, userID, action, details)
}

var fixedNow = time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

func newTestService(repo Repository, rec audit.Recorder, now time.Time) *Service {
	return NewService(repo, rec, slog.Default()).WithClock(func() time.Time { return now })
}

func strPtr(s string) *string { return &s }

func TestService_Create(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRec := new(MockRecorder)
	service := newTestService(mockRepo, mockRec, fixedNow)

	owner := uuid.New()
	draft := Draft{
		TitleHMAC:     strPtr("hmac-1"),
		EncryptedBlob: []byte{0x00, 0xff, 0x10},
		IV:            []byte("iv-bytes"),
		Salt:          []byte("salt-bytes"),
		Tags:          []string{"work", "2fa"},
	}

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(i *Item) bool {
		return i.OwnerID == owner && i.Version == 1 && i.CreatedAt.Equal(fixedNow) && i.UpdatedAt.Equal(fixedNow)
	})).Return(nil)
	mockRec.On("Record", mock.Anything, &owner, audit.ActionItemCreated, mock.Anything).Return()

	item, err := service.Create(context.Background(), owner, draft)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, item.ID)
	assert.Equal(t, draft.EncryptedBlob, item.EncryptedBlob)
	assert.Equal(t, draft.IV, item.IV)
	assert.Equal(t, draft.Salt, item.Salt)
	assert.Equal(t, []string{"work", "2fa"}, item.Tags)

	mockRepo.AssertExpectations(t)
	mockRec.AssertExpectations(t)
}

func TestService_Create_KeepsExplicitVersion(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRec := new(MockRecorder)
	service := newTestService(mockRepo, mockRec, fixedNow)

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(i *Item) bool { return i.Version == 3 })).Return(nil)
	mockRec.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

	item, err := service.Create(context.Background(), uuid.New(), Draft{
		EncryptedBlob: []byte("b"), IV: []byte("i"), Salt: []byte("s"), Version: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, item.Version)
}

func TestService_Create_MissingCiphertext(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockRecorder), fixedNow)

	_, err := service.Create(context.Background(), uuid.New(), Draft{IV: []byte("i"), Salt: []byte("s")})
	assert.ErrorIs(t, err, ErrInvalidData)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_RepositoryErrorSkipsAudit(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRec := new(MockRecorder)
	service := newTestService(mockRepo, mockRec, fixedNow)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("database error"))

	_, err := service.Create(context.Background(), uuid.New(), Draft{
		EncryptedBlob: []byte("b"), IV: []byte("i"), Salt: []byte("s"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRec.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Get_NotFound(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockRecorder), fixedNow)

	owner, id := uuid.New(), uuid.New()
	mockRepo.On("Get", mock.Anything, owner, id).Return(nil, fmt.Errorf("select item: %w", ErrNotFound))

	_, err := service.Get(context.Background(), owner, id)
	assert.Equal(t, ErrNotFound, err)
}

func TestService_Update_OnlyTags(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRec := new(MockRecorder)
	later := fixedNow.Add(time.Hour)
	service := newTestService(mockRepo, mockRec, later)

	owner := uuid.New()
	stored := &Item{
		ID:            uuid.New(),
		OwnerID:       owner,
		TitleHMAC:     strPtr("hmac-1"),
		EncryptedBlob: []byte("blob"),
		IV:            []byte("iv"),
		Salt:          []byte("salt"),
		Version:       1,
		Tags:          []string{"work", "2fa"},
		CreatedAt:     fixedNow,
		UpdatedAt:     fixedNow,
	}

	mockRepo.On("Get", mock.Anything, owner, stored.ID).Return(stored, nil)
	mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	mockRec.On("Record", mock.Anything, &owner, audit.ActionItemUpdated, mock.Anything).Return()

	updated, err := service.Update(context.Background(), owner, stored.ID, Patch{Tags: Some([]string{"personal"})})
	require.NoError(t, err)

	assert.Equal(t, []byte("blob"), updated.EncryptedBlob)
	assert.Equal(t, []byte("iv"), updated.IV)
	assert.Equal(t, []byte("salt"), updated.Salt)
	assert.Equal(t, "hmac-1", *updated.TitleHMAC)
	assert.Equal(t, 1, updated.Version)
	assert.Equal(t, []string{"personal"}, updated.Tags)
	assert.True(t, updated.UpdatedAt.Equal(later))
	assert.True(t, updated.CreatedAt.Equal(fixedNow))

	mockRepo.AssertExpectations(t)
}

func TestService_Update_AllFields(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRec := new(MockRecorder)
	service := newTestService(mockRepo, mockRec, fixedNow.Add(time.Minute))

	owner := uuid.New()
	stored := &Item{ID: uuid.New(), OwnerID: owner, EncryptedBlob: []byte("old"), IV: []byte("old"), Salt: []byte("old"), Version: 1, UpdatedAt: fixedNow}

	mockRepo.On("Get", mock.Anything, owner, stored.ID).Return(stored, nil)
	mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	mockRec.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

	v := 2
	updated, err := service.Update(context.Background(), owner, stored.ID, Patch{
		TitleHMAC:     Some(strPtr("hmac-2")),
		EncryptedBlob: []byte("new-blob"),
		IV:            []byte("new-iv"),
		Salt:          []byte("new-salt"),
		Version:       &v,
	})
	require.NoError(t, err)
	assert.Equal(t, "hmac-2", *updated.TitleHMAC)
	assert.Equal(t, []byte("new-blob"), updated.EncryptedBlob)
	assert.Equal(t, []byte("new-iv"), updated.IV)
	assert.Equal(t, []byte("new-salt"), updated.Salt)
	assert.Equal(t, 2, updated.Version)
}

func TestService_Update_ClearsSearchFields(t *testing.T) {
	tests := []struct {
		name      string
		patch     Patch
		wantTitle *string
		wantTags  []string
	}{
		{name: "clear title hmac", patch: Patch{TitleHMAC: Some[*string](nil)}, wantTags: []string{"work"}},
		{name: "clear tags", patch: Patch{Tags: Some[[]string](nil)}, wantTitle: strPtr("hmac-1")},
		{name: "clear both", patch: Patch{TitleHMAC: Some[*string](nil), Tags: Some[[]string](nil)}},
		{name: "unset keeps both", patch: Patch{}, wantTitle: strPtr("hmac-1"), wantTags: []string{"work"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			mockRec := new(MockRecorder)
			service := newTestService(mockRepo, mockRec, fixedNow.Add(time.Minute))

			owner := uuid.New()
			stored := &Item{
				ID:        uuid.New(),
				OwnerID:   owner,
				TitleHMAC: strPtr("hmac-1"),
				Tags:      []string{"work"},
				UpdatedAt: fixedNow,
			}

			mockRepo.On("Get", mock.Anything, owner, stored.ID).Return(stored, nil)
			mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(i *Item) bool {
				return assert.ObjectsAreEqual(tt.wantTitle, i.TitleHMAC) && assert.ObjectsAreEqual(tt.wantTags, i.Tags)
			})).Return(nil)
			mockRec.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

			updated, err := service.Update(context.Background(), owner, stored.ID, tt.patch)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, updated.TitleHMAC)
			assert.Equal(t, tt.wantTags, updated.Tags)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestService_Update_BumpsUpdatedAtOnClockTie(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRec := new(MockRecorder)
	service := newTestService(mockRepo, mockRec, fixedNow)

	owner := uuid.New()
	stored := &Item{ID: uuid.New(), OwnerID: owner, CreatedAt: fixedNow, UpdatedAt: fixedNow}

	mockRepo.On("Get", mock.Anything, owner, stored.ID).Return(stored, nil)
	mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	mockRec.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

	updated, err := service.Update(context.Background(), owner, stored.ID, Patch{})
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(fixedNow))
}

func TestService_Update_NotOwned(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRec := new(MockRecorder)
	service := newTestService(mockRepo, mockRec, fixedNow)

	stranger, id := uuid.New(), uuid.New()
	mockRepo.On("Get", mock.Anything, stranger, id).Return(nil, ErrNotFound)

	_, err := service.Update(context.Background(), stranger, id, Patch{})
	assert.Equal(t, ErrNotFound, err)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockRec.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Delete(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRec := new(MockRecorder)
	service := newTestService(mockRepo, mockRec, fixedNow)

	owner, id := uuid.New(), uuid.New()
	mockRepo.On("Delete", mock.Anything, owner, id).Return(nil)
	mockRec.On("Record", mock.Anything, &owner, audit.ActionItemDeleted, map[string]any{"item_id": id.String()}).Return()

	require.NoError(t, service.Delete(context.Background(), owner, id))

	mockRepo.AssertExpectations(t)
	mockRec.AssertExpectations(t)
}

func TestService_Delete_NotFound(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRec := new(MockRecorder)
	service := newTestService(mockRepo, mockRec, fixedNow)

	owner, id := uuid.New(), uuid.New()
	mockRepo.On("Delete", mock.Anything, owner, id).Return(ErrNotFound)

	assert.Equal(t, ErrNotFound, service.Delete(context.Background(), owner, id))
	mockRec.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_ListAndSearch(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockRecorder), fixedNow)

	owner := uuid.New()
	metas := []Meta{{ID: uuid.New(), TitleHMAC: strPtr("h"), Version: 1}}

	mockRepo.On("List", mock.Anything, owner).Return(metas, nil)
	mockRepo.On("FindByTitleHMAC", mock.Anything, owner, "h").Return(metas, nil)

	got, err := service.List(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, metas, got)

	found, err := service.Search(context.Background(), owner, "h")
	require.NoError(t, err)
	assert.Equal(t, metas, found)

	empty, err := service.Search(context.Background(), owner, "")
	require.NoError(t, err)
	assert.Empty(t, empty)
	mockRepo.AssertNumberOfCalls(t, "FindByTitleHMAC", 1)
}
