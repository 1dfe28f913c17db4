// Package tooling is the Salesforce Tooling API connector.
//
// Endpoint builders are pure functions of a domain.Authorization.
// HTTPTransport performs the requests over an oauth2 client with
// proactive throttling, Sforce-Limit-Info accounting and bounded retries.
// API binds both together into one method per Tooling API resource.
package tooling
