package rest

import (
	"net/http"

	"fractional/core"
	"fractional/handler/param"
	"fractional/handler/render"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

func (s *server) listAssetsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assets, err := s.assetz.ListAssets(r.Context())
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, assets)
	}
}

func (s *server) assetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		asset, err := s.assetz.GetAsset(r.Context(), tokenParam(r))
		if err != nil {
			render.OperationError(w, err)
			return
		}

		render.JSON(w, asset)
	}
}

func (s *server) saleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sale, err := s.issuancez.GetSale(r.Context(), tokenParam(r))
		if err != nil {
			render.OperationError(w, err)
			return
		}

		render.JSON(w, sale)
	}
}

func (s *server) createAssetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			User string `json:"user"`
			core.CreateProtocolReq
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		var sale *core.Sale
		err := s.mutate("create", func(tx *db.DB) error {
			var err error
			sale, err = s.issuancez.CreateAssetAndProtocol(ctx, tx, params.User, &params.CreateProtocolReq)
			return err
		})

		tokenID := ""
		if sale != nil {
			tokenID = sale.TokenID
		}
		s.audit(ctx, core.OpCreateAssetAndProtocol, params.User, tokenID, map[string]decimal.Decimal{
			"supply":  params.Supply,
			"funding": params.Funding,
		}, err)

		if err != nil {
			render.OperationError(w, err)
			return
		}

		render.JSON(w, sale)
	}
}

func (s *server) auditsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			From  uint64 `json:"from"`
			Limit int    `json:"limit"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		audits, err := s.auditStore.List(r.Context(), params.From, params.Limit)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, audits)
	}
}
