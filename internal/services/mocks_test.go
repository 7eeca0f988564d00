package services

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fitness-journal/internal/domain"
	"fitness-journal/internal/errors"
	"fitness-journal/internal/metrics"
)

// MockEntryRepository is a mock for repository.EntryRepository
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) Create(ctx context.Context, entry domain.Entry) (*domain.Entry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) Get(ctx context.Context, userID, id string) (*domain.Entry, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) List(ctx context.Context, opts domain.ListOptions) ([]domain.Entry, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) Count(ctx context.Context, opts domain.ListOptions) (int, error) {
	args := m.Called(ctx, opts)
	return args.Int(0), args.Error(1)
}

func (m *MockEntryRepository) ListAll(ctx context.Context, userID string) ([]domain.Entry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) Update(ctx context.Context, userID, id string, update domain.UpdateEntryInput) (*domain.Entry, error) {
	args := m.Called(ctx, userID, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// MockUserRepository is a mock for repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func TestStatsService_StoreFailure(t *testing.T) {
	repo := new(MockEntryRepository)
	dbErr := errors.NewDatabaseError("select entries", stderrors.New("disk I/O error"))
	repo.On("ListAll", mock.Anything, "user-1").Return(nil, dbErr)

	cache := newFakeStatsCache()
	service := NewStatsService(repo, cache, time.UTC)

	_, err := service.GetStats(context.Background(), "user-1")
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDatabase))
	assert.Zero(t, cache.sets, "failures are never cached")
	repo.AssertExpectations(t)
}

func TestEntryService_ListFailure(t *testing.T) {
	repo := new(MockEntryRepository)
	opts := domain.DefaultListOptions("user-1")
	dbErr := errors.NewDatabaseError("count entries", stderrors.New("connection reset"))
	repo.On("List", mock.Anything, opts).Return([]domain.Entry{}, nil)
	repo.On("Count", mock.Anything, opts).Return(0, dbErr)

	_, err := NewEntryService(repo, nil).List(context.Background(), opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDatabase))
}

func TestEntryService_FailedCreateKeepsCache(t *testing.T) {
	repo := new(MockEntryRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("domain.Entry")).
		Return(nil, errors.NewDatabaseError("insert entry", stderrors.New("disk full")))

	cache := newFakeStatsCache()
	_, err := NewEntryService(repo, cache).Create(context.Background(), "user-1", domain.CreateEntryInput{
		Date:        time.Date(2026, 10, 14, 7, 0, 0, 0, time.UTC),
		WorkoutType: "Rowing",
		Duration:    20,
	})
	require.Error(t, err)
	assert.Empty(t, cache.invalidated)
	repo.AssertExpectations(t)
}

func TestAuthService_LoginStoreFailureIsNotInvalidCredentials(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "jane@example.com").
		Return(nil, errors.NewDatabaseError("select user", stderrors.New("timeout")))

	tokens := NewTokenService("test-secret-key-min-32-characters-long", "fitness-journal", time.Hour)
	service := NewAuthService(users, tokens, bcrypt.MinCost)

	_, err := service.Login(context.Background(), domain.LoginInput{Email: "jane@example.com", Password: "secret123"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDatabase))
	users.AssertExpectations(t)
}

func TestAuthService_RegisterHashesPassword(t *testing.T) {
	users := new(MockUserRepository)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "jane@example.com" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")) == nil
	})).Return(&domain.User{ID: "2d0f3a52-8c1e-4a57-9d0b-3f4b7e2c9a10", Email: "jane@example.com", Name: "Jane"}, nil)

	tokens := NewTokenService("test-secret-key-min-32-characters-long", "fitness-journal", time.Hour)
	service := NewAuthService(users, tokens, bcrypt.MinCost)

	result, err := service.Register(context.Background(), domain.RegisterInput{
		Email:    " Jane@Example.com ",
		Password: "secret123",
		Name:     "Jane",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	userID, err := tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, userID)
	users.AssertExpectations(t)
}

// storeSamples returns how many store call latencies were recorded for operation.
func storeSamples(t *testing.T, operation string) uint64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, metrics.DBQueryDuration.WithLabelValues(operation).(prometheus.Metric).Write(&m))
	return m.GetHistogram().GetSampleCount()
}

func TestEntryService_EmptyUpdateWritesNothing(t *testing.T) {
	id := "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	stored := &domain.Entry{
		ID:          id,
		UserID:      "user-1",
		Date:        time.Date(2026, 10, 14, 7, 0, 0, 0, time.UTC),
		WorkoutType: "Rowing",
		Duration:    20,
	}
	repo := new(MockEntryRepository)
	repo.On("Get", mock.Anything, "user-1", id).Return(stored, nil)

	selects := storeSamples(t, "select_entry")
	updates := storeSamples(t, "update_entry")

	cache := newFakeStatsCache()
	got, err := NewEntryService(repo, cache).Update(context.Background(), "user-1", id, domain.UpdateEntryInput{})
	require.NoError(t, err)
	assert.Equal(t, stored, got)
	assert.Empty(t, cache.invalidated, "nothing changed, so cached stats stay valid")
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)

	assert.Equal(t, selects+1, storeSamples(t, "select_entry"))
	assert.Equal(t, updates, storeSamples(t, "update_entry"))
}

func TestEntryService_EmptyUpdateOfMissingEntry(t *testing.T) {
	id := "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	repo := new(MockEntryRepository)
	repo.On("Get", mock.Anything, "user-1", id).Return(nil, errors.NewNotFoundError("entry", id))

	_, err := NewEntryService(repo, nil).Update(context.Background(), "user-1", id, domain.UpdateEntryInput{})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestEntryService_RejectedRequestsRecordNoStoreLatency(t *testing.T) {
	repo := new(MockEntryRepository)
	service := NewEntryService(repo, nil)
	ctx := context.Background()

	before := map[string]uint64{}
	for _, op := range []string{"insert_entry", "select_entry", "update_entry", "delete_entry"} {
		before[op] = storeSamples(t, op)
	}

	_, err := service.Create(ctx, "user-1", domain.CreateEntryInput{WorkoutType: "Rowing", Duration: 20})
	assert.Error(t, err)
	_, err = service.Get(ctx, "user-1", "not-a-uuid")
	assert.Error(t, err)
	_, err = service.Update(ctx, "user-1", "not-a-uuid", domain.UpdateEntryInput{Duration: intPtr(5)})
	assert.Error(t, err)
	assert.Error(t, service.Delete(ctx, "user-1", "not-a-uuid"))

	for op, n := range before {
		assert.Equal(t, n, storeSamples(t, op), "no store call was made for %s", op)
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
