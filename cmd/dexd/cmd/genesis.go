package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/algoswap/algoswap/app"
)

// ExportCmd dumps the committed state as a genesis document.
func ExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export state to a genesis document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			home := homeDir(cmd)
			cfg, err := loadConfig(cmd, home)
			if err != nil {
				return err
			}
			logger, err := cfg.Log.NewLogger(os.Stderr)
			if err != nil {
				return err
			}

			db, err := cfg.OpenDB(home)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			dexApp, err := app.NewDexApp(logger, db, cfg.ChainID)
			if err != nil {
				_ = db.Close()
				return err
			}
			defer dexApp.Close() //nolint:errcheck

			if dexApp.IsFresh() {
				return fmt.Errorf("no committed state under %s", cfg.DBDir(home))
			}

			gs, err := dexApp.ExportGenesis()
			if err != nil {
				return err
			}
			doc, err := app.NewGenesisDoc(cfg.ChainID, gs)
			if err != nil {
				return err
			}

			if output, _ := cmd.Flags().GetString(flagOutput); output != "" {
				return doc.SaveAs(output)
			}
			bz, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(bz))
			return nil
		},
	}
	cmd.Flags().String(flagOutput, "", "write the document to this file instead of stdout")
	return cmd
}

// ValidateGenesisCmd checks a genesis file, defaulting to the one in home.
func ValidateGenesisCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-genesis [file]",
		Short: "Validate a genesis file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := genesisPath(homeDir(cmd))
			if len(args) == 1 {
				path = args[0]
			}

			_, gs, err := app.LoadGenesisFile(path)
			if err != nil {
				return err
			}
			if err := gs.Validate(); err != nil {
				return fmt.Errorf("error validating genesis file %s: %w", path, err)
			}

			cmd.Printf("File at %s is a valid genesis file\n", path)
			return nil
		},
	}
}
