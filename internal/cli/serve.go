package cli

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/personalmemory/memory-mcp/internal/server"
)

func init() {
	RootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server",
		RunE:  runServe,
	})
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(cfg, log)
	if err != nil {
		return fmt.Errorf("open memory store: %w", err)
	}

	srv := server.New(store)

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch cfg.Server.Transport {
	case "stdio":
		log.Info("personal memory MCP server starting", "transport", "stdio", "storage", store.Path())
		return srv.Run(ctx, &mcp.StdioTransport{})
	case "http":
		handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
			return srv
		}, nil)
		httpSrv := &http.Server{Addr: cfg.Server.Listen, Handler: handler}
		go func() {
			<-ctx.Done()
			httpSrv.Close()
		}()
		log.Info("personal memory MCP server listening", "addr", cfg.Server.Listen, "storage", store.Path())
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unknown transport %q (use stdio or http)", cfg.Server.Transport)
	}
}
