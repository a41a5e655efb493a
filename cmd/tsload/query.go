package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	httpadapter "github.com/tsload/tsload/internal/adapters/http"
	"github.com/tsload/tsload/internal/domain"
)

// newQueryCommand builds the thin read path: run one SQL query against the
// backend and print the raw response.
func newQueryCommand(log zerolog.Logger) *cobra.Command {
	var (
		host    string
		backend string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "query <sql>",
		Short: "Run a SQL query against the backend and print the response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if host == "" {
				return fmt.Errorf("host is required")
			}
			kind, err := domain.ParseBackend(backend)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			client := httpadapter.NewQueryClient(&http.Client{Timeout: timeout})
			body, err := client.Query(ctx, host, kind, args[0])
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(body)
			return err
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "host URL (e.g., http://127.0.0.1:8181)")
	cmd.Flags().StringVar(&backend, "backend", "influxdb", "target backend: questdb or influxdb")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "HTTP timeout")

	return cmd
}
