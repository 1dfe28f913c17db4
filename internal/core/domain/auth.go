package domain

import (
	"fmt"
	"strings"
)

// Authorization is the session every Tooling API call is built from.
// It is supplied by the caller and never mutated.
type Authorization struct {
	// AccessToken is the bearer token for the org.
	AccessToken string

	// InstanceURL is the org base URL, e.g. https://example.my.salesforce.com.
	InstanceURL string

	// APIVersion is the REST API version without the "v" prefix, e.g. "52.0".
	APIVersion string
}

// Hostname returns the instance URL without scheme and trailing slash.
func (a Authorization) Hostname() string {
	host := strings.TrimPrefix(a.InstanceURL, "https://")
	host = strings.TrimPrefix(host, "http://")
	return strings.TrimRight(host, "/")
}

// VersionPath returns the versioned data API root, e.g. /services/data/v52.0.
func (a Authorization) VersionPath() string {
	return "/services/data/v" + strings.TrimPrefix(a.APIVersion, "v")
}

// Validate checks that the authorization can be used to build requests.
func (a Authorization) Validate() error {
	if a.AccessToken == "" {
		return ErrAuthRequired
	}
	if a.InstanceURL == "" {
		return fmt.Errorf("%w: instance url is required", ErrInvalidInput)
	}
	if a.APIVersion == "" {
		return fmt.Errorf("%w: api version is required", ErrInvalidInput)
	}
	return nil
}

// Request is a fully qualified HTTP request descriptor for one Tooling API resource.
type Request struct {
	Host    string
	Path    string
	Method  string
	Headers map[string]string
}

// URL returns the request target for the given scheme.
func (r Request) URL(scheme string) string {
	return scheme + "://" + r.Host + r.Path
}
