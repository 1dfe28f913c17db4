// Package connectors holds the clients of remote APIs apexspec talks to.
// The tooling subpackage is the Salesforce Tooling API connector.
package connectors
