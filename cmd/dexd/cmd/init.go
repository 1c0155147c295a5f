package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/algoswap/algoswap/app"
)

// InitCmd writes a default config.toml and genesis.json into the home
// directory.
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and genesis files for the daemon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			home := homeDir(cmd)
			overwrite, _ := cmd.Flags().GetBool(flagOverwrite)

			cfg := app.DefaultConfig()
			if chainID, _ := cmd.Flags().GetString(flagChainID); chainID != "" {
				cfg.ChainID = chainID
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			genFile := genesisPath(home)
			if _, err := os.Stat(genFile); err == nil && !overwrite {
				return fmt.Errorf("genesis.json file already exists: %v", genFile)
			}

			if err := writeConfig(home, cfg); err != nil {
				return fmt.Errorf("write config: %w", err)
			}

			doc, err := app.NewGenesisDoc(cfg.ChainID, app.NewDefaultGenesisState())
			if err != nil {
				return err
			}
			if err := doc.SaveAs(genFile); err != nil {
				return fmt.Errorf("write genesis: %w", err)
			}

			cmd.Printf("initialized %s (chain-id %s)\n", home, cfg.ChainID)
			return nil
		},
	}

	cmd.Flags().String(flagChainID, app.DefaultChainID, "genesis file chain-id")
	cmd.Flags().Bool(flagOverwrite, false, "overwrite the genesis.json file")
	return cmd
}
