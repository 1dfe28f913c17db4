// Package auth provides driven.TokenProvider implementations.
//
// Tokens are obtained outside apexspec (for example with the Salesforce CLI)
// and handed in through a flag, the environment or a terminal prompt.
package auth
