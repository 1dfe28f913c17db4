package domain

import (
	"fmt"
	"strings"
)

// ApexKind selects between the two compiled Apex unit types.
type ApexKind int

// Available Apex kinds.
const (
	// ApexKindClass is an ApexClass (.cls).
	ApexKindClass ApexKind = iota + 1

	// ApexKindTrigger is an ApexTrigger (.trigger).
	ApexKindTrigger
)

// ParseApexKind accepts "class", "classes", "trigger" or "triggers".
func ParseApexKind(s string) (ApexKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "class", "classes", "apexclass":
		return ApexKindClass, nil
	case "trigger", "triggers", "apextrigger":
		return ApexKindTrigger, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedKind, s)
	}
}

// IsValid returns true if the kind is recognised.
func (k ApexKind) IsValid() bool {
	return k == ApexKindClass || k == ApexKindTrigger
}

// String returns the lower-case kind name.
func (k ApexKind) String() string {
	switch k {
	case ApexKindClass:
		return "class"
	case ApexKindTrigger:
		return "trigger"
	default:
		return "unknown"
	}
}

// SObject returns the Tooling API object holding records of this kind.
func (k ApexKind) SObject() string {
	switch k {
	case ApexKindClass:
		return "ApexClass"
	case ApexKindTrigger:
		return "ApexTrigger"
	default:
		return ""
	}
}

// MemberSObject returns the MetadataContainer member object for this kind.
func (k ApexKind) MemberSObject() string {
	switch k {
	case ApexKindClass:
		return "ApexClassMember"
	case ApexKindTrigger:
		return "ApexTriggerMember"
	default:
		return ""
	}
}

// Extension returns the source file extension, including the dot.
func (k ApexKind) Extension() string {
	switch k {
	case ApexKindClass:
		return ".cls"
	case ApexKindTrigger:
		return ".trigger"
	default:
		return ""
	}
}

// Dir returns the directory name used for archived and rendered files.
func (k ApexKind) Dir() string {
	return k.String()
}

// Fields returns the fields queried for records of this kind.
func (k ApexKind) Fields() []string {
	switch k {
	case ApexKindClass:
		return ClassFields
	case ApexKindTrigger:
		return TriggerFields
	default:
		return nil
	}
}

// ClassFields are the ApexClass fields retrieved for documentation.
var ClassFields = []string{
	"Id",
	"Name",
	"ApiVersion",
	"Body",
	"BodyCrc",
	"LengthWithoutComments",
	"ManageableState",
	"NamespacePrefix",
}

// TriggerFields are the ApexTrigger fields retrieved for documentation.
var TriggerFields = []string{
	"Id",
	"Name",
	"ApiVersion",
	"Body",
	"BodyCrc",
	"EntityDefinition.DeveloperName",
	"EntityDefinition.NamespacePrefix",
	"LengthWithoutComments",
	"ManageableState",
	"Status",
	"UsageAfterDelete",
	"UsageAfterInsert",
	"UsageAfterUndelete",
	"UsageAfterUpdate",
	"UsageBeforeDelete",
	"UsageBeforeInsert",
	"UsageBeforeUpdate",
	"UsageIsBulk",
}

// managedStates are ManageableState values owned by an installed package.
var managedStates = map[string]bool{
	"beta":       true,
	"deleted":    true,
	"deprecated": true,
	"released":   true,
	"installed":  true,
}

// EntityDefinition is the sObject a trigger is defined on.
type EntityDefinition struct {
	DeveloperName   string `json:"DeveloperName"`
	NamespacePrefix string `json:"NamespacePrefix"`
}

// ApexRecord is one ApexClass or ApexTrigger row.
// Trigger-only fields are zero for classes.
type ApexRecord struct {
	ID                    string            `json:"Id"`
	Name                  string            `json:"Name"`
	APIVersion            float64           `json:"ApiVersion"`
	Body                  string            `json:"Body"`
	BodyCrc               float64           `json:"BodyCrc"`
	LengthWithoutComments int               `json:"LengthWithoutComments"`
	ManageableState       string            `json:"ManageableState"`
	NamespacePrefix       string            `json:"NamespacePrefix"`
	Status                string            `json:"Status,omitempty"`
	EntityDefinition      *EntityDefinition `json:"EntityDefinition,omitempty"`

	UsageBeforeInsert  bool `json:"UsageBeforeInsert,omitempty"`
	UsageBeforeUpdate  bool `json:"UsageBeforeUpdate,omitempty"`
	UsageBeforeDelete  bool `json:"UsageBeforeDelete,omitempty"`
	UsageAfterInsert   bool `json:"UsageAfterInsert,omitempty"`
	UsageAfterUpdate   bool `json:"UsageAfterUpdate,omitempty"`
	UsageAfterDelete   bool `json:"UsageAfterDelete,omitempty"`
	UsageAfterUndelete bool `json:"UsageAfterUndelete,omitempty"`
	UsageIsBulk        bool `json:"UsageIsBulk,omitempty"`
}

// IsManaged returns true if the record belongs to a managed package
// and therefore cannot be staged in a MetadataContainer.
func (r ApexRecord) IsManaged() bool {
	return managedStates[strings.ToLower(r.ManageableState)]
}

// FilterUnmanaged returns the records that can be compiled in a container.
func FilterUnmanaged(records []ApexRecord) []ApexRecord {
	out := make([]ApexRecord, 0, len(records))
	for _, r := range records {
		if !r.IsManaged() {
			out = append(out, r)
		}
	}
	return out
}
