package domain

// AsyncState is the lifecycle state of a ContainerAsyncRequest.
type AsyncState string

// ContainerAsyncRequest states reported by the Tooling API.
const (
	AsyncStateQueued      AsyncState = "Queued"
	AsyncStateInvalidated AsyncState = "Invalidated"
	AsyncStateCompleted   AsyncState = "Completed"
	AsyncStateFailed      AsyncState = "Failed"
	AsyncStateError       AsyncState = "Error"
	AsyncStateAborted     AsyncState = "Aborted"
)

// IsTerminal returns true once the request will not change state again.
func (s AsyncState) IsTerminal() bool {
	return s == AsyncStateCompleted || s.IsFailure()
}

// IsFailure returns true for terminal states other than Completed.
func (s AsyncState) IsFailure() bool {
	switch s {
	case AsyncStateFailed, AsyncStateError, AsyncStateAborted, AsyncStateInvalidated:
		return true
	default:
		return false
	}
}

// String returns the state name.
func (s AsyncState) String() string {
	return string(s)
}

// MetadataContainer is a server-side staging area for member edits.
type MetadataContainer struct {
	ID   string `json:"Id"`
	Name string `json:"Name"`
}

// ContainerAsyncRequest is the asynchronous compile job of a container.
type ContainerAsyncRequest struct {
	ID                  string     `json:"Id"`
	State               AsyncState `json:"State"`
	MetadataContainerID string     `json:"MetadataContainerId"`
	ErrorMsg            string     `json:"ErrorMsg"`
}

// ContainerAsyncRequestFields are the fields polled while awaiting a compile.
var ContainerAsyncRequestFields = []string{"Id", "State", "MetadataContainerId", "ErrorMsg"}

// QueryResult is the envelope of a Tooling API query response.
type QueryResult[T any] struct {
	TotalSize int  `json:"totalSize"`
	Done      bool `json:"done"`
	Records   []T  `json:"records"`
}

// APIErrorDetail is one entry of a Salesforce error array.
type APIErrorDetail struct {
	Message   string   `json:"message"`
	ErrorCode string   `json:"errorCode"`
	Fields    []string `json:"fields,omitempty"`
}

// CreateResult is the response of an sObject create call.
type CreateResult struct {
	ID      string           `json:"id"`
	Success bool             `json:"success"`
	Errors  []APIErrorDetail `json:"errors"`
}
