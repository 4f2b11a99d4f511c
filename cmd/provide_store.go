package cmd

import (
	"fractional/core"
	"fractional/store/asset"
	"fractional/store/audit"
	"fractional/store/position"
	"fractional/store/protocol"
	"fractional/store/sale"
	"fractional/store/token"
	"fractional/store/wallet"

	"github.com/fox-one/pkg/store/db"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideAssetStore(db *db.DB) core.IAssetStore {
	return asset.New(db)
}

func provideProtocolStore(db *db.DB) core.IProtocolStore {
	return protocol.New(db)
}

func providePositionStore(db *db.DB) core.IPositionStore {
	return position.New(db)
}

func provideSaleStore(db *db.DB) core.ISaleStore {
	return sale.New(db)
}

func provideTokenStore(db *db.DB) core.ITokenStore {
	return token.New(db)
}

func provideWalletStore(db *db.DB) core.IWalletStore {
	return wallet.New(db)
}

func provideAuditStore(db *db.DB) core.IAuditStore {
	return audit.New(db)
}
