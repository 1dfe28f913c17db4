package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
)

var (
	executeMethod string
	executeData   string
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Read Tooling API resources",
	Long:  `Prints raw Tooling API responses as indented JSON.`,
}

var queryClassesCmd = &cobra.Command{
	Use:   "classes",
	Short: "List ApexClass records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runQueryRecords(cmd, domain.ApexKindClass)
	},
}

var queryTriggersCmd = &cobra.Command{
	Use:   "triggers",
	Short: "List ApexTrigger records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runQueryRecords(cmd, domain.ApexKindTrigger)
	},
}

var queryContainersCmd = &cobra.Command{
	Use:   "containers",
	Short: "List MetadataContainers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if queryService == nil {
			return apiUnavailable()
		}
		body, err := queryService.Containers(cmd.Context())
		return printBody(cmd, body, err)
	},
}

var queryAsyncCmd = &cobra.Command{
	Use:   "async <id>",
	Short: "Show a ContainerAsyncRequest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if queryService == nil {
			return apiUnavailable()
		}
		body, err := queryService.AsyncRequest(cmd.Context(), args[0])
		return printBody(cmd, body, err)
	},
}

var queryProfileCmd = &cobra.Command{
	Use:   "profile <id>",
	Short: "Show a Profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if queryService == nil {
			return apiUnavailable()
		}
		body, err := queryService.Profile(cmd.Context(), args[0])
		return printBody(cmd, body, err)
	},
}

var queryExecuteCmd = &cobra.Command{
	Use:   "execute <path>",
	Short: "Send a request below /services/data/vXX.X",
	Long: `Sends a GET or POST to a path below the versioned data root, for example
  apexspec query execute /sobjects/Account/describe
  apexspec query execute --method POST --data @body.json /sobjects/Account

--data takes inline JSON, or @file to read it from a file.`,
	Args: cobra.ExactArgs(1),
	RunE: runQueryExecute,
}

func init() {
	queryExecuteCmd.Flags().StringVarP(&executeMethod, "method", "X", "GET", "HTTP method (GET or POST)")
	queryExecuteCmd.Flags().StringVarP(&executeData, "data", "d", "", "request body, or @file")

	queryCmd.AddCommand(queryClassesCmd)
	queryCmd.AddCommand(queryTriggersCmd)
	queryCmd.AddCommand(queryContainersCmd)
	queryCmd.AddCommand(queryAsyncCmd)
	queryCmd.AddCommand(queryProfileCmd)
	queryCmd.AddCommand(queryExecuteCmd)
	rootCmd.AddCommand(queryCmd)
}

func runQueryRecords(cmd *cobra.Command, kind domain.ApexKind) error {
	if queryService == nil {
		return apiUnavailable()
	}
	body, err := queryService.Records(cmd.Context(), kind)
	return printBody(cmd, body, err)
}

func runQueryExecute(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return apiUnavailable()
	}
	body, err := readData(executeData)
	if err != nil {
		return err
	}
	resp, err := queryService.Execute(cmd.Context(), executeMethod, args[0], body)
	return printBody(cmd, resp, err)
}

// readData returns nil for an empty flag, the file contents for @file,
// and the flag value otherwise.
func readData(data string) ([]byte, error) {
	if data == "" {
		return nil, nil
	}
	if name, ok := strings.CutPrefix(data, "@"); ok {
		content, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read data: %w", err)
		}
		return content, nil
	}
	return []byte(data), nil
}

func printBody(cmd *cobra.Command, body []byte, err error) error {
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	var out bytes.Buffer
	if json.Indent(&out, body, "", "  ") != nil {
		cmd.Println(string(body))
		return nil
	}
	cmd.Println(out.String())
	return nil
}
