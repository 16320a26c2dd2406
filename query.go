package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"estate-site/pkg/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	queryParams  []string
	queryTimeout time.Duration
)

const queryExample = `  estate-site query '*[_type == "property" && featured == true]{title, price}'
  estate-site query '*[_type == "post" && slug.current == $slug][0]' --param slug='"buying-land"'`

var queryCmd = &cobra.Command{
	Use:     "query <groq>",
	Short:   "Run a query against the content store and print the result",
	Example: queryExample,
	Args:    cobra.ExactArgs(1),
	RunE:    runQuery,
}

func init() {
	queryCmd.Flags().StringArrayVarP(&queryParams, "param", "p", nil, "Query parameter as name=<json value>")
	queryCmd.Flags().DurationVar(&queryTimeout, "timeout", 30*time.Second, "Request timeout")
}

func parseQueryParams(raw []string) (map[string]interface{}, error) {
	params := make(map[string]interface{}, len(raw))
	for _, p := range raw {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid param %q, want name=value", p)
		}
		var v interface{}
		if err := json.Unmarshal([]byte(value), &v); err != nil {
			// Bare words are treated as strings.
			v = value
		}
		params[strings.TrimPrefix(name, "$")] = v
	}
	return params, nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	if config.SanityProjectID == "" {
		return errors.New("SANITY_PROJECT_ID is not set")
	}
	params, err := parseQueryParams(queryParams)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), queryTimeout)
	defer cancel()

	client := newSanityClient()
	if u, err := client.QueryURL(args[0], params); err == nil {
		logger.Debug("running query", zap.String("url", u))
	}

	var result json.RawMessage
	if err := client.Fetch(ctx, args[0], params, &result); err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
