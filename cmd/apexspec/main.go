// Command apexspec generates Markdown specifications for Salesforce Apex
// classes and triggers.
package main

import (
	"os"

	"github.com/custodia-labs/apexspec-cli/internal/adapters/driving/cli"
)

func main() {
	os.Exit(cli.Main())
}
