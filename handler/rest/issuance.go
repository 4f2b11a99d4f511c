package rest

import (
	"context"
	"net/http"

	"fractional/core"
	"fractional/handler/param"
	"fractional/handler/render"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

func (s *server) buyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tokenID := tokenParam(r)

		var params struct {
			User    string          `json:"user"`
			Amount  decimal.Decimal `json:"amount"`
			Payment decimal.Decimal `json:"payment"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		var sale *core.Sale
		err := s.mutate(tokenID, func(tx *db.DB) error {
			var err error
			sale, err = s.issuancez.BuyTokens(ctx, tx, tokenID, params.User, params.Amount, params.Payment)
			return err
		})

		s.audit(ctx, core.OpBuyTokens, params.User, tokenID, map[string]decimal.Decimal{
			"amount":  params.Amount,
			"payment": params.Payment,
		}, err)

		if err != nil {
			render.OperationError(w, err)
			return
		}

		render.JSON(w, sale)
	}
}

func (s *server) sellHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tokenID := tokenParam(r)

		var params struct {
			User             string          `json:"user"`
			Amount           decimal.Decimal `json:"amount"`
			ExpectedProceeds decimal.Decimal `json:"expected_proceeds"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		var sale *core.Sale
		err := s.mutate(tokenID, func(tx *db.DB) error {
			var err error
			sale, err = s.issuancez.SellTokens(ctx, tx, tokenID, params.User, params.Amount, params.ExpectedProceeds)
			return err
		})

		s.audit(ctx, core.OpSellTokens, params.User, tokenID, map[string]decimal.Decimal{
			"amount":            params.Amount,
			"expected_proceeds": params.ExpectedProceeds,
		}, err)

		if err != nil {
			render.OperationError(w, err)
			return
		}

		render.JSON(w, sale)
	}
}

type claimOp func(ctx context.Context, tx *db.DB, tokenID, caller string) (decimal.Decimal, error)

func (s *server) claimHandler(op string, fn claimOp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tokenID := tokenParam(r)

		var params struct {
			User string `json:"user"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		var paid decimal.Decimal
		err := s.mutate(tokenID, func(tx *db.DB) error {
			var err error
			paid, err = fn(ctx, tx, tokenID, params.User)
			return err
		})

		s.audit(ctx, op, params.User, tokenID, map[string]decimal.Decimal{"paid": paid}, err)

		if err != nil {
			render.OperationError(w, err)
			return
		}

		render.JSON(w, map[string]interface{}{
			"token_id": tokenID,
			"paid":     paid,
		})
	}
}

func (s *server) claimSalesHandler() http.HandlerFunc {
	return s.claimHandler(core.OpClaimTokenSales, func(ctx context.Context, tx *db.DB, tokenID, caller string) (decimal.Decimal, error) {
		return s.issuancez.ClaimTokenSales(ctx, tx, tokenID, caller)
	})
}

func (s *server) claimSeedHandler() http.HandlerFunc {
	return s.claimHandler(core.OpClaimInitialValue, func(ctx context.Context, tx *db.DB, tokenID, caller string) (decimal.Decimal, error) {
		return s.issuancez.ClaimInitialValue(ctx, tx, tokenID, caller)
	})
}
