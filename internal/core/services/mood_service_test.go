package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/queue_mood_board/internal/adapters/memory"
	"github.com/SscSPs/queue_mood_board/internal/apperrors"
	"github.com/SscSPs/queue_mood_board/internal/core/domain"
	portssvc "github.com/SscSPs/queue_mood_board/internal/core/ports/services"
	"github.com/SscSPs/queue_mood_board/internal/core/services"
	"github.com/SscSPs/queue_mood_board/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mock MoodEntryRepository ---
type MockMoodEntryRepository struct {
	mock.Mock
}

func (m *MockMoodEntryRepository) Append(ctx context.Context, entry domain.MoodEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockMoodEntryRepository) ReadAll(ctx context.Context) ([]domain.MoodEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MoodEntry), args.Error(1)
}

var (
	boardLoc = time.FixedZone("board", -7*60*60)
	fixedNow = time.Date(2026, 10, 19, 9, 30, 15, 987654321, boardLoc)
)

func testMoodSet(t *testing.T) domain.MoodSet {
	t.Helper()
	set, err := domain.NewMoodSet([]domain.MoodOption{
		{Emoji: "😊", Label: "happy"},
		{Emoji: "😐", Label: "neutral"},
		{Emoji: "😤", Label: "frustrated"},
		{Emoji: "😵", Label: "overwhelmed"},
		{Emoji: "😌", Label: "calm"},
	})
	require.NoError(t, err)
	return set
}

// --- Test Suite ---
type MoodServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockMoodEntryRepository
	service   portssvc.MoodSvcFacade
	submitted int
}

func (suite *MoodServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockMoodEntryRepository)
	suite.submitted = 0
	suite.service = services.NewMoodService(
		suite.mockRepo,
		testMoodSet(suite.T()),
		services.WithLocation(boardLoc),
		services.WithClock(func() time.Time { return fixedNow }),
		services.WithSubmitHook(func() { suite.submitted++ }),
	)
}

func (suite *MoodServiceTestSuite) TestSubmitMood_Success() {
	ctx := context.Background()
	expected := domain.MoodEntry{
		Timestamp: time.Date(2026, 10, 19, 9, 30, 15, 0, boardLoc),
		Mood:      "😤",
		Note:      "queue on fire",
	}
	suite.mockRepo.On("Append", ctx, expected).Return(nil).Once()

	entry, err := suite.service.SubmitMood(ctx, dto.SubmitMoodRequest{Mood: "Frustrated", Note: "queue on fire"})

	suite.Require().NoError(err)
	suite.Equal(expected, *entry)
	suite.Equal(1, suite.submitted)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MoodServiceTestSuite) TestSubmitMood_NoMoodNeverAppends() {
	for _, mood := range []string{"", "   ", "ecstatic"} {
		_, err := suite.service.SubmitMood(context.Background(), dto.SubmitMoodRequest{Mood: mood, Note: "hello"})
		suite.Require().Error(err)
		suite.True(errors.Is(err, apperrors.ErrValidation), "mood %q", mood)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "Append", mock.Anything, mock.Anything)
	suite.Zero(suite.submitted)
}

func (suite *MoodServiceTestSuite) TestSubmitMood_PersistFailure() {
	ctx := context.Background()
	storeErr := apperrors.NewPersistError("append", errors.New("backend unreachable"))
	suite.mockRepo.On("Append", ctx, mock.AnythingOfType("domain.MoodEntry")).Return(storeErr).Once()

	entry, err := suite.service.SubmitMood(ctx, dto.SubmitMoodRequest{Mood: "😊"})

	suite.Nil(entry)
	suite.True(errors.Is(err, apperrors.ErrPersist))
	suite.Zero(suite.submitted, "no refresh after a failed submission")
}

func (suite *MoodServiceTestSuite) TestTodayDistribution() {
	ctx := context.Background()
	today := domain.DateOf(fixedNow)
	rows := []domain.MoodEntry{
		{Timestamp: time.Date(2026, 10, 19, 0, 0, 0, 0, boardLoc), Mood: "😊"},
		{Timestamp: time.Date(2026, 10, 18, 23, 59, 59, 0, boardLoc), Mood: "😊"},
		{Timestamp: time.Date(2026, 10, 19, 8, 0, 0, 0, boardLoc), Mood: "😌"},
	}
	suite.mockRepo.On("ReadAll", ctx).Return(rows, nil).Once()

	dist, err := suite.service.TodayDistribution(ctx)

	suite.Require().NoError(err)
	suite.Equal(today, dist.Start)
	suite.Equal(map[string]int{"😊": 1, "😌": 1}, dist.Counts)
	suite.Equal(2, dist.Total)
}

func (suite *MoodServiceTestSuite) TestTodayDistribution_ReadFailure() {
	ctx := context.Background()
	suite.mockRepo.On("ReadAll", ctx).Return(nil, apperrors.NewPersistError("read all", errors.New("403"))).Once()

	dist, err := suite.service.TodayDistribution(ctx)

	suite.Nil(dist)
	suite.True(errors.Is(err, apperrors.ErrPersist))
}

func (suite *MoodServiceTestSuite) TestRangeDistribution_InvalidRange() {
	today := suite.service.Today()

	_, err := suite.service.RangeDistribution(context.Background(), today, today.AddDays(-1))

	suite.True(errors.Is(err, apperrors.ErrValidation))
	suite.mockRepo.AssertNotCalled(suite.T(), "ReadAll", mock.Anything)
}

func (suite *MoodServiceTestSuite) TestListEntries() {
	ctx := context.Background()
	rows := []domain.MoodEntry{
		{Timestamp: time.Date(2026, 10, 12, 9, 0, 0, 0, boardLoc), Mood: "😊"},
		{Timestamp: time.Date(2026, 10, 13, 9, 0, 0, 0, boardLoc), Mood: "😐"},
		{Timestamp: time.Date(2026, 10, 19, 9, 0, 0, 0, boardLoc), Mood: "😵"},
	}
	suite.mockRepo.On("ReadAll", ctx).Return(rows, nil).Once()

	today := suite.service.Today()
	got, err := suite.service.ListEntries(ctx, today.AddDays(-6), today)

	suite.Require().NoError(err)
	suite.Equal(rows[1:], got)
}

func (suite *MoodServiceTestSuite) TestOptionsAndToday() {
	suite.Len(suite.service.Options(), 5)
	suite.Equal(domain.Date{Year: 2026, Month: time.October, Day: 19}, suite.service.Today())
}

func (suite *MoodServiceTestSuite) TestResolve_MatchesSubmitRule() {
	for _, value := range []string{"😤", "Frustrated", "  FRUSTRATED "} {
		mood, ok := suite.service.Resolve(value)
		suite.True(ok, value)
		suite.Equal("😤", mood, value)
	}
	_, ok := suite.service.Resolve("ecstatic")
	suite.False(ok)
	_, ok = suite.service.Resolve("")
	suite.False(ok)
}

func TestMoodServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MoodServiceTestSuite))
}

// --- End-to-end scenarios against the in-memory store ---

// flakyRepository fails appends while down is set.
type flakyRepository struct {
	*memory.MoodEntryRepository
	down bool
}

func (f *flakyRepository) Append(ctx context.Context, entry domain.MoodEntry) error {
	if f.down {
		return apperrors.NewPersistError("append", errors.New("simulated backend outage"))
	}
	return f.MoodEntryRepository.Append(ctx, entry)
}

func TestMoodService_EndToEndDistribution(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewMoodEntryRepository()
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, boardLoc)
	clock := func() time.Time { return now }
	svc := services.NewMoodService(repo, testMoodSet(t), services.WithLocation(boardLoc), services.WithClock(clock))

	// Yesterday's reading is appended first, as it would have been a day earlier.
	now = time.Date(2026, 10, 18, 10, 0, 0, 0, boardLoc)
	_, err := svc.SubmitMood(ctx, dto.SubmitMoodRequest{Mood: "calm"})
	require.NoError(t, err)

	for _, step := range []struct {
		at   time.Time
		mood string
		note string
	}{
		{time.Date(2026, 10, 19, 9, 0, 0, 0, boardLoc), "happy", ""},
		{time.Date(2026, 10, 19, 9, 5, 0, 0, boardLoc), "happy", "busy"},
		{time.Date(2026, 10, 19, 9, 10, 0, 0, boardLoc), "frustrated", ""},
	} {
		now = step.at
		_, err := svc.SubmitMood(ctx, dto.SubmitMoodRequest{Mood: step.mood, Note: step.note})
		require.NoError(t, err)
	}

	dist, err := svc.TodayDistribution(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"😊": 2, "😤": 1}, dist.Counts)
	assert.Equal(t, 3, dist.Total)

	rows, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "busy", rows[2].Note, "readings come back in append order")
}

func TestMoodService_OutageThenRetry(t *testing.T) {
	ctx := context.Background()
	repo := &flakyRepository{MoodEntryRepository: memory.NewMoodEntryRepository(), down: true}
	svc := services.NewMoodService(repo, testMoodSet(t), services.WithLocation(boardLoc), services.WithClock(func() time.Time { return fixedNow }))
	req := dto.SubmitMoodRequest{Mood: "overwhelmed", Note: "backlog"}

	_, err := svc.SubmitMood(ctx, req)
	require.ErrorIs(t, err, apperrors.ErrPersist)

	rows, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows, "a failed append leaves nothing behind")

	repo.down = false
	entry, err := svc.SubmitMood(ctx, req)
	require.NoError(t, err)

	rows, err = repo.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, *entry, rows[0])
}
