package cmd

import (
	"fmt"

	"fractional/core"
	"fractional/pkg/number"

	"github.com/fox-one/pkg/store/db"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var assetCmd = &cobra.Command{
	Use:   "asset",
	Short: "inspect and create assets",
}

var assetListCmd = &cobra.Command{
	Use:   "list",
	Short: "list all assets",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		assetStore := provideAssetStore(database)
		assets, err := assetStore.All(ctx)
		if err != nil {
			cmd.PrintErrln("list assets error:", err)
			return
		}

		for _, a := range assets {
			fmt.Printf("%d\t%s\t%s\t%s\t%s usd\n", a.ID, a.TokenID, a.Name, a.Symbol, a.PriceUSD)
		}
	},
}

// asset create <creator> <name> <symbol> <supply> <price_usd> <funding>
var assetCreateCmd = &cobra.Command{
	Use:   "create <creator> <name> <symbol> <supply> <price_usd> <funding>",
	Short: "create an asset with its lending protocol and public sale",
	Args:  cobra.ExactArgs(6),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		assetStore := provideAssetStore(database)
		protocolStore := provideProtocolStore(database)
		positionStore := providePositionStore(database)
		saleStore := provideSaleStore(database)
		tokenStore := provideTokenStore(database)
		walletStore := provideWalletStore(database)

		oracleService := provideOracleService()
		assetService := provideAssetService(assetStore, tokenStore)
		lendingService := provideLendingService(protocolStore, positionStore, assetStore, tokenStore, walletStore, oracleService)
		issuanceService := provideIssuanceService(saleStore, tokenStore, walletStore, assetService, lendingService, oracleService)

		req := &core.CreateProtocolReq{
			Name:                 cast.ToString(args[1]),
			Symbol:               cast.ToString(args[2]),
			Supply:               number.Decimal(args[3]),
			PriceUSD:             number.Decimal(args[4]),
			Funding:              number.Decimal(args[5]),
			MaxLTV:               number.Decimal(cmd.Flag("max-ltv").Value.String()),
			LiquidationThreshold: number.Decimal(cmd.Flag("liq-threshold").Value.String()),
			LiqFeeProtocol:       number.Decimal(cmd.Flag("liq-fee-protocol").Value.String()),
			LiqFeeSender:         number.Decimal(cmd.Flag("liq-fee-sender").Value.String()),
			BorrowThreshold:      number.Decimal(cmd.Flag("borrow-threshold").Value.String()),
			InterestRate:         number.Decimal(cmd.Flag("interest-rate").Value.String()),
		}

		var sale *core.Sale
		err := database.Tx(func(tx *db.DB) error {
			var err error
			sale, err = issuanceService.CreateAssetAndProtocol(ctx, tx, cast.ToString(args[0]), req)
			return err
		})
		if err != nil {
			cmd.PrintErrln("create asset error:", err)
			return
		}

		fmt.Println("created", sale.TokenID, "held supply", sale.HeldSupply, "seed funds", sale.SeedFunds)
	},
}

// asset price <token> <price_usd>
var assetPriceCmd = &cobra.Command{
	Use:   "price <token> <price_usd>",
	Short: "set the usd price of an asset",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		assetStore := provideAssetStore(database)
		tokenStore := provideTokenStore(database)
		assetService := provideAssetService(assetStore, tokenStore)

		err := database.Tx(func(tx *db.DB) error {
			return assetService.UpdatePrice(ctx, tx, args[0], number.Decimal(args[1]))
		})
		if err != nil {
			cmd.PrintErrln("update price error:", err)
			return
		}

		fmt.Println("price updated", args[0], args[1])
	},
}

func init() {
	assetCreateCmd.Flags().String("max-ltv", "80", "max loan to value, whole percent")
	assetCreateCmd.Flags().String("liq-threshold", "85", "liquidation threshold, whole percent")
	assetCreateCmd.Flags().String("liq-fee-protocol", "5", "protocol liquidation fee, whole percent")
	assetCreateCmd.Flags().String("liq-fee-sender", "10", "liquidator incentive, whole percent")
	assetCreateCmd.Flags().String("borrow-threshold", "0", "minimal borrow amount, native units")
	assetCreateCmd.Flags().String("interest-rate", "10", "yearly interest, whole percent")

	assetCmd.AddCommand(assetListCmd)
	assetCmd.AddCommand(assetCreateCmd)
	assetCmd.AddCommand(assetPriceCmd)
	rootCmd.AddCommand(assetCmd)
}
