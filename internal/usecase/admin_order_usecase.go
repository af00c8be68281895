package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type AdminOrderUsecase struct {
	tx repo.TransactionManager
}

func NewAdminOrderUsecase(tx repo.TransactionManager) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx}
}

type OrderListOutput struct {
	Orders []model.Order `json:"orders"`
	Total  int64         `json:"total"`
}

type OrderDetailOutput struct {
	Order        model.Order                `json:"order"`
	History      []model.StatusHistoryEntry `json:"history"`
	Notes        []model.OrderNote          `json:"notes"`
	NextStatuses []model.OrderStatus        `json:"next_statuses"`
}

func (u *AdminOrderUsecase) List(ctx context.Context, f repo.AdminOrderListFilter) (OrderListOutput, error) {
	if f.Page < 1 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if f.Status != "" && !model.IsValidStatus(model.OrderStatus(f.Status)) {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out OrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListAdmin(ctx, f)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = OrderListOutput{Orders: orders, Total: total}
		return nil
	})

	if err != nil {
		return OrderListOutput{}, err
	}
	return out, nil
}

func (u *AdminOrderUsecase) Detail(ctx context.Context, orderID int64) (OrderDetailOutput, error) {
	if orderID <= 0 {
		return OrderDetailOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderDetailOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		history, err := r.StatusHistory().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		notes, err := r.OrderNotes().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = OrderDetailOutput{
			Order:        o,
			History:      history,
			Notes:        notes,
			NextStatuses: model.NextStatuses(o.Status),
		}
		return nil
	})

	if err != nil {
		return OrderDetailOutput{}, err
	}
	return out, nil
}

type TransitionInput struct {
	Status string
	Actor  string
	Notes  string
}

type TransitionOutput struct {
	Order model.Order `json:"order"`
	// Entry is the appended history row; nil when the request was a
	// same-status no-op.
	Entry *model.StatusHistoryEntry `json:"history_entry,omitempty"`
	NoOp  bool                      `json:"no_op,omitempty"`
}

// Transition moves an order along the status table and appends exactly one
// history entry. Illegal edges are rejected, history is never rewritten.
func (u *AdminOrderUsecase) Transition(ctx context.Context, orderID int64, in TransitionInput) (TransitionOutput, error) {
	if orderID <= 0 {
		return TransitionOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	actor := strings.TrimSpace(in.Actor)
	if actor == "" {
		return TransitionOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	newStatus := model.OrderStatus(strings.TrimSpace(in.Status))
	if !model.IsValidStatus(newStatus) {
		return TransitionOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out TransitionOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// same status is a no-op, no history entry
		if o.Status == newStatus {
			out = TransitionOutput{Order: o, NoOp: true}
			return nil
		}

		if !model.CanTransition(o.Status, newStatus) {
			return NewHTTPError(http.StatusUnprocessableEntity,
				"invalid transition from "+string(o.Status)+" to "+string(newStatus))
		}

		now := time.Now()
		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus, now); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		old := o.Status
		entry := model.StatusHistoryEntry{
			OrderID:   orderID,
			OldStatus: &old,
			NewStatus: newStatus,
			ChangedBy: actor,
			Notes:     strings.TrimSpace(in.Notes),
			CreatedAt: now,
		}
		if err := r.StatusHistory().Create(ctx, entry); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o.Status = newStatus
		o.LatestStatusChange = &now
		o.UpdatedAt = now
		out = TransitionOutput{Order: o, Entry: &entry}
		return nil
	})

	if err != nil {
		return TransitionOutput{}, err
	}
	return out, nil
}

func (u *AdminOrderUsecase) AddNote(ctx context.Context, orderID int64, author string, text string) (model.OrderNote, error) {
	if orderID <= 0 {
		return model.OrderNote{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	author = strings.TrimSpace(author)
	if author == "" {
		return model.OrderNote{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return model.OrderNote{}, NewHTTPError(http.StatusBadRequest, "note text is required")
	}

	note := model.OrderNote{
		OrderID:   orderID,
		Author:    author,
		Text:      text,
		CreatedAt: time.Now(),
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Orders().FindByID(ctx, orderID); err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		} else if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.OrderNotes().Create(ctx, note); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})

	if err != nil {
		return model.OrderNote{}, err
	}
	return note, nil
}
