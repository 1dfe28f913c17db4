package tooling

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
)

// DefaultQueryLimit is the SOQL limit used when none is given.
const DefaultQueryLimit = 50000

// Request header names.
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	ContentTypeJSON     = "application/json"
)

func newRequest(auth domain.Authorization, method, path string) domain.Request {
	return domain.Request{
		Host:   auth.Hostname(),
		Path:   path,
		Method: method,
		Headers: map[string]string{
			HeaderAuthorization: "Bearer " + auth.AccessToken,
			HeaderContentType:   ContentTypeJSON,
		},
	}
}

func toolingPath(auth domain.Authorization, suffix string) string {
	return auth.VersionPath() + "/tooling" + suffix
}

func queryPath(auth domain.Authorization, soql string) string {
	return toolingPath(auth, "/query/?q="+soql)
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return DefaultQueryLimit
	}
	return limit
}

func apexQuery(auth domain.Authorization, sobject string, fields []string, limit int) domain.Request {
	soql := "select+" + strings.Join(fields, ",") +
		"+from+" + sobject +
		"+order+by+Name+limit+" + strconv.Itoa(limitOrDefault(limit))
	return newRequest(auth, http.MethodGet, queryPath(auth, soql))
}

// CompositeEndpoint describes POST /services/data/vXX.X/tooling/composite.
func CompositeEndpoint(auth domain.Authorization) domain.Request {
	return newRequest(auth, http.MethodPost, toolingPath(auth, "/composite"))
}

// ApexClassQueryEndpoint describes the ApexClass query ordered by name.
func ApexClassQueryEndpoint(auth domain.Authorization, fields []string, limit int) domain.Request {
	return apexQuery(auth, "ApexClass", fields, limit)
}

// ApexTriggerQueryEndpoint describes the ApexTrigger query ordered by name.
func ApexTriggerQueryEndpoint(auth domain.Authorization, fields []string, limit int) domain.Request {
	return apexQuery(auth, "ApexTrigger", fields, limit)
}

// MetadataContainerQueryEndpoint describes the MetadataContainer listing.
func MetadataContainerQueryEndpoint(auth domain.Authorization, limit int) domain.Request {
	soql := "select+Id+,Name+from+MetadataContainer+order+by+Name+limit+" + strconv.Itoa(limitOrDefault(limit))
	return newRequest(auth, http.MethodGet, queryPath(auth, soql))
}

// MetadataContainerCreateEndpoint describes POST .../tooling/sobjects/MetadataContainer.
func MetadataContainerCreateEndpoint(auth domain.Authorization) domain.Request {
	return newRequest(auth, http.MethodPost, toolingPath(auth, "/sobjects/MetadataContainer"))
}

// ContainerAsyncRequestQueryEndpoint describes the state query of one compile.
func ContainerAsyncRequestQueryEndpoint(auth domain.Authorization, id string, fields []string) domain.Request {
	soql := "select+" + strings.Join(fields, ",") +
		"+from+ContainerAsyncRequest+where+Id+=+'" + id + "'"
	return newRequest(auth, http.MethodGet, queryPath(auth, soql))
}

// ContainerAsyncRequestCreateEndpoint describes POST .../tooling/sobjects/ContainerAsyncRequest.
func ContainerAsyncRequestCreateEndpoint(auth domain.Authorization) domain.Request {
	return newRequest(auth, http.MethodPost, toolingPath(auth, "/sobjects/ContainerAsyncRequest"))
}

// ProfileEndpoint describes GET .../tooling/sobjects/Profile/{id}.
func ProfileEndpoint(auth domain.Authorization, recordID string) domain.Request {
	return newRequest(auth, http.MethodGet, toolingPath(auth, "/sobjects/Profile/"+recordID))
}

// ExecuteEndpoint describes a request below /services/data/vXX.X.
// suffix is appended verbatim and may be empty.
func ExecuteEndpoint(auth domain.Authorization, method, suffix string) domain.Request {
	return newRequest(auth, strings.ToUpper(method), auth.VersionPath()+suffix)
}

// MemberURL is the composite sub-request URL creating members of kind.
func MemberURL(auth domain.Authorization, kind domain.ApexKind) string {
	return toolingPath(auth, "/sobjects/"+kind.MemberSObject()+"/")
}
