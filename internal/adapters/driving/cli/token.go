package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
)

// readToken prompts for the access token without echo on a terminal,
// and reads one line from stdin otherwise.
func readToken(cmd *cobra.Command) (string, error) {
	cmd.PrintErr("Access token: ")
	defer cmd.PrintErrln()

	var token string
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		if err != nil {
			return "", fmt.Errorf("read token: %w", err)
		}
		token = string(secret)
	} else {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("read token: %w", err)
		}
		token = line
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", domain.ErrAuthRequired
	}
	return token, nil
}
