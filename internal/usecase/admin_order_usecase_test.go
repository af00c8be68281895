package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTransition_LegalEdgeAppendsHistory(t *testing.T) {
	tx, repos := newTxManagerStub()
	uc := usecase.NewAdminOrderUsecase(tx)

	repos.orders.On("FindByID", mock.Anything, int64(1)).
		Return(model.Order{ID: 1, Status: model.OrderStatusPending}, nil)
	repos.orders.On("UpdateStatus", mock.Anything, int64(1), model.OrderStatusConfirmed, mock.Anything).
		Return(nil)
	repos.history.On("Create", mock.Anything, mock.MatchedBy(func(e model.StatusHistoryEntry) bool {
		return e.OrderID == 1 &&
			e.OldStatus != nil && *e.OldStatus == model.OrderStatusPending &&
			e.NewStatus == model.OrderStatusConfirmed &&
			e.ChangedBy == "admin@example.com"
	})).Return(nil)

	out, err := uc.Transition(context.Background(), 1, usecase.TransitionInput{
		Status: "confirmed",
		Actor:  "admin@example.com",
	})

	require.NoError(t, err)
	assert.False(t, out.NoOp)
	require.NotNil(t, out.Entry)
	assert.Equal(t, model.OrderStatusConfirmed, out.Entry.NewStatus)
	assert.Equal(t, model.OrderStatusConfirmed, out.Order.Status)
	repos.history.AssertExpectations(t)
}

func TestTransition_IllegalJumpRejected(t *testing.T) {
	tx, repos := newTxManagerStub()
	uc := usecase.NewAdminOrderUsecase(tx)

	repos.orders.On("FindByID", mock.Anything, int64(1)).
		Return(model.Order{ID: 1, Status: model.OrderStatusPending}, nil)

	_, err := uc.Transition(context.Background(), 1, usecase.TransitionInput{
		Status: "shipped",
		Actor:  "admin@example.com",
	})

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 422, he.Status)
	repos.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repos.history.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTransition_TerminalStatusHasNoEdges(t *testing.T) {
	tx, repos := newTxManagerStub()
	uc := usecase.NewAdminOrderUsecase(tx)

	repos.orders.On("FindByID", mock.Anything, int64(1)).
		Return(model.Order{ID: 1, Status: model.OrderStatusCompleted}, nil)

	_, err := uc.Transition(context.Background(), 1, usecase.TransitionInput{
		Status: "pending",
		Actor:  "admin@example.com",
	})

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 422, he.Status)
}

func TestTransition_SameStatusIsNoOp(t *testing.T) {
	tx, repos := newTxManagerStub()
	uc := usecase.NewAdminOrderUsecase(tx)

	repos.orders.On("FindByID", mock.Anything, int64(1)).
		Return(model.Order{ID: 1, Status: model.OrderStatusConfirmed}, nil)

	out, err := uc.Transition(context.Background(), 1, usecase.TransitionInput{
		Status: "confirmed",
		Actor:  "admin@example.com",
	})

	require.NoError(t, err)
	// no fabricated history row comes back, just the untouched order
	assert.True(t, out.NoOp)
	assert.Nil(t, out.Entry)
	assert.Equal(t, int64(1), out.Order.ID)
	assert.Equal(t, model.OrderStatusConfirmed, out.Order.Status)
	repos.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repos.history.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTransition_UnknownStatus(t *testing.T) {
	tx, _ := newTxManagerStub()
	uc := usecase.NewAdminOrderUsecase(tx)

	_, err := uc.Transition(context.Background(), 1, usecase.TransitionInput{
		Status: "cancelled",
		Actor:  "admin@example.com",
	})

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

func TestDetail_IncludesNextStatuses(t *testing.T) {
	tx, repos := newTxManagerStub()
	uc := usecase.NewAdminOrderUsecase(tx)

	repos.orders.On("FindByID", mock.Anything, int64(1)).
		Return(model.Order{ID: 1, Status: model.OrderStatusConfirmed}, nil)
	repos.history.On("ListByOrderID", mock.Anything, int64(1)).
		Return([]model.StatusHistoryEntry{}, nil)
	repos.notes.On("ListByOrderID", mock.Anything, int64(1)).
		Return([]model.OrderNote{}, nil)

	out, err := uc.Detail(context.Background(), 1)

	require.NoError(t, err)
	assert.ElementsMatch(t, []model.OrderStatus{
		model.OrderStatusInvoiceCreated,
		model.OrderStatusExchanged,
		model.OrderStatusDown,
	}, out.NextStatuses)
}

func TestDetail_NotFound(t *testing.T) {
	tx, repos := newTxManagerStub()
	uc := usecase.NewAdminOrderUsecase(tx)

	repos.orders.On("FindByID", mock.Anything, int64(99)).
		Return(model.Order{}, repo.ErrNotFound)

	_, err := uc.Detail(context.Background(), 99)

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

func TestAddNote_RequiresText(t *testing.T) {
	tx, _ := newTxManagerStub()
	uc := usecase.NewAdminOrderUsecase(tx)

	_, err := uc.AddNote(context.Background(), 1, "admin@example.com", "   ")

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

func TestList_ValidatesFilter(t *testing.T) {
	tx, _ := newTxManagerStub()
	uc := usecase.NewAdminOrderUsecase(tx)

	_, err := uc.List(context.Background(), repo.AdminOrderListFilter{Page: 1, Limit: 50, Status: "bogus"})

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 400, he.Status)
}
