package assigner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vestern/vestern/internal/domain"
	"github.com/vestern/vestern/internal/mocks"
	"github.com/vestern/vestern/internal/store/schema"
)

const testToken = "aa00000000000000000000000000000000000000000000000000000000000000"

type testAssignerMocks struct {
	ctrl      *gomock.Controller
	store     *mocks.MockStore
	generator *mocks.MockTokenGenerator
	clock     *mocks.MockClock
}

func setupTestAssigner(t *testing.T, cfg *Config) (*testAssignerMocks, Assigner) {
	ctrl := gomock.NewController(t)
	tm := &testAssignerMocks{
		ctrl:      ctrl,
		store:     mocks.NewMockStore(ctrl),
		generator: mocks.NewMockTokenGenerator(ctrl),
		clock:     mocks.NewMockClock(ctrl),
	}
	return tm, New(cfg, tm.store, tm.generator, tm.clock)
}

// firedAfter returns a channel that has already fired
func firedAfter() <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}

func TestAssign_UpdatesLatestTransaction(t *testing.T) {
	cfg := &Config{Delay: 2 * time.Second, Field: domain.TokenFieldTransactionNumber}
	tm, a := setupTestAssigner(t, cfg)
	defer tm.ctrl.Finish()

	ctx := context.Background()
	gomock.InOrder(
		tm.store.EXPECT().GetLatestTransaction(ctx).Return(&schema.Transaction{TransactionID: 42}, nil),
		tm.generator.EXPECT().Generate().Return(testToken, nil),
		tm.clock.EXPECT().After(2*time.Second).Return(firedAfter()),
		tm.store.EXPECT().
			UpdateTransactionField(ctx, domain.TransactionID(42), domain.TokenFieldTransactionNumber, testToken).
			Return(nil),
	)

	result, err := a.Assign(ctx)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, domain.TransactionID(42), result.TransactionID)
	assert.Equal(t, domain.TokenFieldTransactionNumber, result.Field)
	assert.Equal(t, testToken, result.Token)
}

func TestAssign_EmptyTableIsNoop(t *testing.T) {
	tm, a := setupTestAssigner(t, &Config{Delay: time.Second, Field: domain.TokenFieldTransactionNumber})
	defer tm.ctrl.Finish()

	tm.store.EXPECT().GetLatestTransaction(gomock.Any()).Return(nil, nil)

	result, err := a.Assign(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestAssign_ZeroDelaySkipsWait(t *testing.T) {
	tm, a := setupTestAssigner(t, &Config{Field: domain.TokenFieldTransactionNumber})
	defer tm.ctrl.Finish()

	tm.store.EXPECT().GetLatestTransaction(gomock.Any()).Return(&schema.Transaction{TransactionID: 7}, nil)
	tm.generator.EXPECT().Generate().Return(testToken, nil)
	tm.store.EXPECT().
		UpdateTransactionField(gomock.Any(), domain.TransactionID(7), domain.TokenFieldTransactionNumber, testToken).
		Return(nil)

	result, err := a.Assign(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.TokenFieldTransactionNumber, result.Field)
}

func TestAssign_Errors(t *testing.T) {
	dbErr := errors.New("connection refused")

	tests := []struct {
		name      string
		setup     func(tm *testAssignerMocks)
		expectErr error
	}{
		{
			name: "query fails",
			setup: func(tm *testAssignerMocks) {
				tm.store.EXPECT().GetLatestTransaction(gomock.Any()).Return(nil, dbErr)
			},
			expectErr: dbErr,
		},
		{
			name: "entropy source fails",
			setup: func(tm *testAssignerMocks) {
				tm.store.EXPECT().GetLatestTransaction(gomock.Any()).Return(&schema.Transaction{TransactionID: 1}, nil)
				tm.generator.EXPECT().Generate().Return("", dbErr)
			},
			expectErr: dbErr,
		},
		{
			name: "update fails",
			setup: func(tm *testAssignerMocks) {
				tm.store.EXPECT().GetLatestTransaction(gomock.Any()).Return(&schema.Transaction{TransactionID: 1}, nil)
				tm.generator.EXPECT().Generate().Return(testToken, nil)
				tm.store.EXPECT().
					UpdateTransactionField(gomock.Any(), domain.TransactionID(1), domain.TokenFieldTransactionNumber, testToken).
					Return(domain.ErrTransactionNotFound)
			},
			expectErr: domain.ErrTransactionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm, a := setupTestAssigner(t, &Config{Field: domain.TokenFieldTransactionNumber})
			defer tm.ctrl.Finish()
			tt.setup(tm)

			result, err := a.Assign(context.Background())
			assert.ErrorIs(t, err, tt.expectErr)
			assert.Nil(t, result)
		})
	}
}

func TestAssign_CancelledDuringDelay(t *testing.T) {
	tm, a := setupTestAssigner(t, &Config{Delay: time.Hour, Field: domain.TokenFieldTransactionNumber})
	defer tm.ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	tm.store.EXPECT().GetLatestTransaction(gomock.Any()).Return(&schema.Transaction{TransactionID: 3}, nil)
	tm.generator.EXPECT().Generate().Return(testToken, nil)
	tm.clock.EXPECT().After(time.Hour).DoAndReturn(func(time.Duration) <-chan time.Time {
		cancel()
		return make(chan time.Time)
	})
	// UpdateTransactionField must not be called

	result, err := a.Assign(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}
