package cmd

import (
	"fractional/core"
	assetservice "fractional/service/asset"
	issuanceservice "fractional/service/issuance"
	lendingservice "fractional/service/lending"
	oracleservice "fractional/service/oracle"
)

func provideOracleService() core.IPriceOracleService {
	return oracleservice.New(cfg.PriceOracle)
}

func provideAssetService(assetStore core.IAssetStore, tokenStore core.ITokenStore) core.IAssetService {
	return assetservice.New(assetStore, tokenStore)
}

func provideLendingService(
	protocolStore core.IProtocolStore,
	positionStore core.IPositionStore,
	assetStore core.IAssetStore,
	tokenStore core.ITokenStore,
	walletStore core.IWalletStore,
	priceSrv core.IPriceOracleService,
) core.ILendingService {
	return lendingservice.New(protocolStore, positionStore, assetStore, tokenStore, walletStore, priceSrv)
}

func provideIssuanceService(
	saleStore core.ISaleStore,
	tokenStore core.ITokenStore,
	walletStore core.IWalletStore,
	assetSrv core.IAssetService,
	lendingSrv core.ILendingService,
	priceSrv core.IPriceOracleService,
) core.IIssuanceService {
	return issuanceservice.New(cfg.App.MinFunding, saleStore, tokenStore, walletStore, assetSrv, lendingSrv, priceSrv)
}
