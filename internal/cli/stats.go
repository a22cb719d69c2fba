package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show memory document statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(_ *cobra.Command, _ []string) {
	cfg, log, err := loadConfig()
	if err != nil {
		exitErr("load config", err)
	}

	store, err := openStore(cfg, log)
	if err != nil {
		exitErr("open memory store", err)
	}

	b, _ := json.MarshalIndent(store.Stats(), "", "  ")
	fmt.Println(string(b))
}
