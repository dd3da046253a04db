package reconcile

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExecute_CallsPerActionType(t *testing.T) {
	a := src("A", 100, 5)
	plan := []Action{
		NewCreate(a),
		NewUpdatePrice(listing("B", 1, 1), src("B", 2, 1)),
		NewUpdateStock(listing("C", 1, 1), src("C", 1, 2)),
		NewUpdateBoth(listing("D", 1, 1), src("D", 2, 2)),
		NewNoOp(listing("E", 1, 1)),
	}

	client := new(mockMarketplace)
	client.On("CreateListing", mock.Anything, a).Return("new-A", nil).Once()
	client.On("UpdatePrice", mock.Anything, "mp-B", decimal.NewFromInt(2)).Return(nil).Once()
	client.On("UpdateStock", mock.Anything, "mp-C", 2).Return(nil).Once()
	client.On("UpdateBoth", mock.Anything, "mp-D", decimal.NewFromInt(2), 2).Return(nil).Once()

	outcomes := Execute(context.Background(), plan, client, ExecuteOptions{Logger: zap.NewNop()})

	require.Len(t, outcomes, len(plan))
	for i, o := range outcomes {
		assert.Equal(t, StatusSuccess, o.Status)
		assert.Equal(t, plan[i].Key, o.Action.Key, "outcomes follow plan order")
	}
	assert.Equal(t, "new-A", outcomes[0].MarketplaceID)
	client.AssertExpectations(t)
	client.AssertNumberOfCalls(t, "CreateListing", 1)
}

func TestExecute_NoOpMakesNoCalls(t *testing.T) {
	client := new(mockMarketplace)

	outcomes := Execute(context.Background(), []Action{NewNoOp(listing("A", 100, 5))}, client, ExecuteOptions{})

	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Succeeded())
	assert.Empty(t, client.Calls)
}

func TestExecute_PartialFailureIsolation(t *testing.T) {
	var plan []Action
	for i := 0; i < 10; i++ {
		key := fmt.Sprintf("K%d", i)
		plan = append(plan, NewUpdateStock(listing(key, 1, 1), src(key, 1, 2)))
	}

	client := new(mockMarketplace)
	client.On("UpdateStock", mock.Anything, "mp-K4", 2).Return(fmt.Errorf("%w: 500 internal error", ErrClientFailure))
	client.On("UpdateStock", mock.Anything, mock.Anything, 2).Return(nil)

	outcomes := Execute(context.Background(), plan, client, ExecuteOptions{})

	require.Len(t, outcomes, 10)
	for i, o := range outcomes {
		if i == 4 {
			assert.Equal(t, StatusFailure, o.Status)
			assert.Equal(t, KindClientFailure, o.Kind)
			assert.Contains(t, o.Reason, "500")
			continue
		}
		assert.Equal(t, StatusSuccess, o.Status, "action %d", i)
	}
	client.AssertNumberOfCalls(t, "UpdateStock", 10)

	summary := SummarizeOutcomes(outcomes)
	assert.Equal(t, 9, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
}

func TestExecute_CreateConflict(t *testing.T) {
	a := src("A", 1, 1)
	client := new(mockMarketplace)
	client.On("CreateListing", mock.Anything, a).Return("", fmt.Errorf("ozon: %w", ErrCreateConflict))

	outcomes := Execute(context.Background(), []Action{NewCreate(a)}, client, ExecuteOptions{})

	require.Len(t, outcomes, 1)
	assert.Equal(t, StatusFailure, outcomes[0].Status)
	assert.Equal(t, KindCreateConflict, outcomes[0].Kind)
	assert.Equal(t, 1, SummarizeOutcomes(outcomes).Conflicts)
	client.AssertNumberOfCalls(t, "CreateListing", 1)
}

func TestExecute_PartialCreateKeepsListingID(t *testing.T) {
	a := src("A", 1, 5)
	client := new(mockMarketplace)
	client.On("CreateListing", mock.Anything, a).
		Return("A", fmt.Errorf("listing created but stock not set: %w", ErrClientFailure))

	outcomes := Execute(context.Background(), []Action{NewCreate(a)}, client, ExecuteOptions{})

	require.Len(t, outcomes, 1)
	assert.Equal(t, StatusFailure, outcomes[0].Status)
	assert.Equal(t, KindClientFailure, outcomes[0].Kind)
	assert.Equal(t, "A", outcomes[0].MarketplaceID)
}

func TestExecute_TimeoutIsAFailure(t *testing.T) {
	client := new(mockMarketplace)
	client.On("UpdatePrice", mock.Anything, "mp-A", mock.Anything).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			<-ctx.Done()
		}).
		Return(context.DeadlineExceeded)
	client.On("UpdatePrice", mock.Anything, "mp-B", mock.Anything).Return(nil)

	plan := []Action{
		NewUpdatePrice(listing("A", 1, 1), src("A", 2, 1)),
		NewUpdatePrice(listing("B", 1, 1), src("B", 2, 1)),
	}

	outcomes := Execute(context.Background(), plan, client, ExecuteOptions{CallTimeout: 20 * time.Millisecond})

	require.Len(t, outcomes, 2)
	assert.Equal(t, KindClientFailure, outcomes[0].Kind)
	assert.Contains(t, outcomes[0].Reason, "deadline exceeded")
	assert.True(t, outcomes[1].Succeeded(), "run continues after a timeout")
}

func TestExecute_CancelledRunStopsIssuingCalls(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	client := new(mockMarketplace)
	client.On("UpdateStock", mock.Anything, "mp-A", 2).Run(func(mock.Arguments) { cancel() }).Return(nil)

	plan := []Action{
		NewUpdateStock(listing("A", 1, 1), src("A", 1, 2)),
		NewUpdateStock(listing("B", 1, 1), src("B", 1, 2)),
		NewNoOp(listing("C", 1, 1)),
		NewUpdateStock(listing("D", 1, 1), src("D", 1, 2)),
	}

	outcomes := Execute(ctx, plan, client, ExecuteOptions{})

	require.Len(t, outcomes, 4)
	assert.True(t, outcomes[0].Succeeded())
	assert.Equal(t, KindCancelled, outcomes[1].Kind)
	assert.True(t, outcomes[2].Succeeded())
	assert.Equal(t, KindCancelled, outcomes[3].Kind)
	client.AssertNumberOfCalls(t, "UpdateStock", 1)

	summary := SummarizeOutcomes(outcomes)
	assert.Equal(t, 2, summary.Cancelled)
}

func TestExecute_CreateWithoutRecord(t *testing.T) {
	client := new(mockMarketplace)
	outcomes := Execute(context.Background(), []Action{{Type: ActionCreate, Key: "A"}}, client, ExecuteOptions{})

	require.Len(t, outcomes, 1)
	assert.Equal(t, StatusFailure, outcomes[0].Status)
	assert.Empty(t, client.Calls)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, KindCreateConflict, classify(fmt.Errorf("wrapped: %w", ErrCreateConflict)))
	assert.Equal(t, KindClientFailure, classify(errors.New("boom")))
}
