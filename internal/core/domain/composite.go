package domain

import "encoding/json"

// CompositeLimit is the maximum number of sub-requests in one composite call.
const CompositeLimit = 25

// MemberBatchSize is the number of members staged per container.
// It stays one below CompositeLimit.
const MemberBatchSize = CompositeLimit - 1

// CompositeRequest bundles sub-requests into one Tooling API call.
type CompositeRequest struct {
	AllOrNone        bool         `json:"allOrNone"`
	CompositeRequest []SubRequest `json:"compositeRequest"`
}

// SubRequest is one operation inside a composite request.
type SubRequest struct {
	Method      string `json:"method"`
	URL         string `json:"url"`
	ReferenceID string `json:"referenceId"`
	Body        any    `json:"body,omitempty"`
}

// MemberBody is the body of an ApexClassMember or ApexTriggerMember create.
type MemberBody struct {
	Body                string `json:"Body"`
	MetadataContainerID string `json:"MetadataContainerId"`
	ContentEntityID     string `json:"ContentEntityId"`
}

// CompositeResponse is the response of a composite request.
type CompositeResponse struct {
	CompositeResponse []SubResponse `json:"compositeResponse"`
}

// SubResponse is the outcome of one sub-request.
type SubResponse struct {
	Body           json.RawMessage `json:"body"`
	HTTPHeaders    HTTPHeaders     `json:"httpHeaders"`
	HTTPStatusCode int             `json:"httpStatusCode"`
	ReferenceID    string          `json:"referenceId"`
}

// OK returns true for a 2xx sub-response.
func (r SubResponse) OK() bool {
	return r.HTTPStatusCode >= 200 && r.HTTPStatusCode < 300
}

// HTTPHeaders holds the headers echoed in a composite sub-response.
type HTTPHeaders struct {
	Location string `json:"Location,omitempty"`
}

// StagedMember is a member created inside a container.
type StagedMember struct {
	// RecordID is the Id of the ApexClass or ApexTrigger.
	RecordID string

	// Location is the member URL returned at creation time.
	Location string
}

// MemberSymbols is the body of a member GET after the compile completed.
type MemberSymbols struct {
	ID          string          `json:"Id"`
	FullName    string          `json:"FullName"`
	SymbolTable json.RawMessage `json:"SymbolTable"`
}
