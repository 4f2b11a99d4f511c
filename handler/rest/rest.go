package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"fractional/core"
	"fractional/pkg/concurrency"

	"fractional/handler/render"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
)

type server struct {
	db     *db.DB
	locker *concurrency.Locker

	assetStore    core.IAssetStore
	positionStore core.IPositionStore
	protocolStore core.IProtocolStore
	auditStore    core.IAuditStore
	tokenStore    core.ITokenStore
	walletStore   core.IWalletStore

	assetz    core.IAssetService
	lendingz  core.ILendingService
	issuancez core.IIssuanceService
}

// Handle handle rest api request
func Handle(
	database *db.DB,
	assetStore core.IAssetStore,
	positionStore core.IPositionStore,
	protocolStore core.IProtocolStore,
	auditStore core.IAuditStore,
	tokenStore core.ITokenStore,
	walletStore core.IWalletStore,
	assetz core.IAssetService,
	lendingz core.ILendingService,
	issuancez core.IIssuanceService,
) http.Handler {
	s := &server{
		db:            database,
		locker:        concurrency.NewLocker(),
		assetStore:    assetStore,
		positionStore: positionStore,
		protocolStore: protocolStore,
		auditStore:    auditStore,
		tokenStore:    tokenStore,
		walletStore:   walletStore,
		assetz:        assetz,
		lendingz:      lendingz,
		issuancez:     issuancez,
	}

	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/assets", s.listAssetsHandler())
	router.Post("/assets", s.createAssetHandler())
	router.Get("/assets/{token}", s.assetHandler())
	router.Get("/assets/{token}/sale", s.saleHandler())
	router.Post("/assets/{token}/buy", s.buyHandler())
	router.Post("/assets/{token}/sell", s.sellHandler())
	router.Post("/assets/{token}/claims/sales", s.claimSalesHandler())
	router.Post("/assets/{token}/claims/seed", s.claimSeedHandler())

	router.Get("/assets/{token}/positions/{user}", s.positionHandler())
	router.Post("/assets/{token}/deposit", s.depositHandler())
	router.Post("/assets/{token}/withdraw", s.withdrawHandler())
	router.Post("/assets/{token}/borrow", s.borrowHandler())
	router.Post("/assets/{token}/repay", s.repayHandler())
	router.Post("/assets/{token}/liquidate", s.liquidateHandler())

	router.Get("/audits", s.auditsHandler())

	return router
}

// mutate serializes the operation on its token id and runs it as one
// transaction, so partial writes are never observable
func (s *server) mutate(tokenID string, fn func(tx *db.DB) error) error {
	unlock := s.locker.Lock(tokenID)
	defer unlock()

	return s.db.Tx(fn)
}

// audit appends the operation record after the outcome is settled. Audit
// failures are logged, never surfaced: the operation itself already
// committed or aborted.
func (s *server) audit(ctx context.Context, op, actor, tokenID string, amounts map[string]decimal.Decimal, opErr error) {
	outcome := "ok"
	if code, ok := opErr.(core.ErrorCode); ok {
		outcome = code.Msg()
	} else if opErr != nil {
		outcome = opErr.Error()
	}

	encoded, _ := json.Marshal(amounts)
	record := &core.Audit{
		Operation: op,
		Actor:     actor,
		TokenID:   tokenID,
		Amounts:   string(encoded),
		Outcome:   outcome,
	}

	if err := s.auditStore.Append(ctx, s.db, record); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("append audit", op)
	}
}

func tokenParam(r *http.Request) string {
	return chi.URLParam(r, "token")
}
