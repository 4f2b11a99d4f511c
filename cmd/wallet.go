package cmd

import (
	"fmt"

	"fractional/pkg/number"

	"github.com/fox-one/pkg/store/db"
	"github.com/spf13/cobra"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "native currency accounts",
}

var walletBalanceCmd = &cobra.Command{
	Use:   "balance <user>",
	Short: "show the native balance of an account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		database := provideDatabase()
		defer database.Close()

		walletStore := provideWalletStore(database)
		balance, err := walletStore.Balance(cmd.Context(), args[0])
		if err != nil {
			cmd.PrintErrln("balance error:", err)
			return
		}

		fmt.Println(args[0], balance)
	},
}

// admin faucet, credits an account out of thin air
var walletDepositCmd = &cobra.Command{
	Use:   "deposit <user> <amount>",
	Short: "credit native currency to an account",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		walletStore := provideWalletStore(database)
		amount := number.Decimal(args[1])

		err := database.Tx(func(tx *db.DB) error {
			return walletStore.Deposit(ctx, tx, args[0], amount)
		})
		if err != nil {
			cmd.PrintErrln("deposit error:", err)
			return
		}

		fmt.Println("credited", args[0], amount)
	},
}

func init() {
	walletCmd.AddCommand(walletBalanceCmd)
	walletCmd.AddCommand(walletDepositCmd)
	rootCmd.AddCommand(walletCmd)
}
