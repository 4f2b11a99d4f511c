package rest

import (
	"context"
	"net/http"

	"fractional/core"
	"fractional/handler/param"
	"fractional/handler/render"

	"github.com/fox-one/pkg/store/db"
	"github.com/go-chi/chi"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

type lendingParams struct {
	User   string          `json:"user"`
	Amount decimal.Decimal `json:"amount"`
}

type lendingOp func(ctx context.Context, tx *db.DB, tokenID string, params lendingParams) (*core.Position, error)

// lendingHandler binds the shared user/amount params and runs one serialized
// ledger operation
func (s *server) lendingHandler(op string, fn lendingOp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tokenID := tokenParam(r)

		var params lendingParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		var position *core.Position
		err := s.mutate(tokenID, func(tx *db.DB) error {
			var err error
			position, err = fn(ctx, tx, tokenID, params)
			return err
		})

		s.audit(ctx, op, params.User, tokenID, map[string]decimal.Decimal{"amount": params.Amount}, err)

		if err != nil {
			render.OperationError(w, err)
			return
		}

		render.JSON(w, position)
	}
}

func (s *server) depositHandler() http.HandlerFunc {
	return s.lendingHandler(core.OpDeposit, func(ctx context.Context, tx *db.DB, tokenID string, params lendingParams) (*core.Position, error) {
		return s.lendingz.Deposit(ctx, tx, tokenID, params.User, params.Amount)
	})
}

func (s *server) withdrawHandler() http.HandlerFunc {
	return s.lendingHandler(core.OpWithdraw, func(ctx context.Context, tx *db.DB, tokenID string, params lendingParams) (*core.Position, error) {
		return s.lendingz.Withdraw(ctx, tx, tokenID, params.User, params.Amount)
	})
}

func (s *server) borrowHandler() http.HandlerFunc {
	return s.lendingHandler(core.OpBorrow, func(ctx context.Context, tx *db.DB, tokenID string, params lendingParams) (*core.Position, error) {
		return s.lendingz.Borrow(ctx, tx, tokenID, params.User, params.Amount)
	})
}

func (s *server) repayHandler() http.HandlerFunc {
	return s.lendingHandler(core.OpRepay, func(ctx context.Context, tx *db.DB, tokenID string, params lendingParams) (*core.Position, error) {
		return s.lendingz.Repay(ctx, tx, tokenID, params.User, params.Amount)
	})
}

func (s *server) liquidateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tokenID := tokenParam(r)

		var params struct {
			User    string `json:"user"`
			Account string `json:"account"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		var position *core.Position
		err := s.mutate(tokenID, func(tx *db.DB) error {
			var err error
			position, err = s.lendingz.Liquidate(ctx, tx, tokenID, params.User, params.Account)
			return err
		})

		s.audit(ctx, core.OpLiquidate, params.User, tokenID, nil, err)

		if err != nil {
			render.OperationError(w, err)
			return
		}

		render.JSON(w, position)
	}
}

func (s *server) positionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tokenID := tokenParam(r)
		userID := chi.URLParam(r, "user")

		protocol, err := s.protocolStore.FindByToken(ctx, tokenID)
		if gorm.IsRecordNotFoundError(err) {
			render.OperationError(w, core.ErrProtocolNotFound)
			return
		}
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		position, err := s.positionStore.Find(ctx, protocol.ID, userID)
		if gorm.IsRecordNotFoundError(err) {
			position = &core.Position{ProtocolID: protocol.ID, UserID: userID}
		} else if err != nil {
			render.BadRequest(w, err)
			return
		}

		maxWithdraw, err := s.lendingz.MaxWithdraw(ctx, tokenID, userID)
		if err != nil {
			maxWithdraw = decimal.Zero
		}

		render.JSON(w, render.H{
			"position":     position,
			"max_withdraw": maxWithdraw,
		})
	}
}
