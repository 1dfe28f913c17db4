package domain

import (
	"bytes"
	"encoding/json"
)

// SymbolTable is the server-computed structure of one compiled Apex member.
// Inner classes are symbol tables themselves.
type SymbolTable struct {
	ID                 string              `json:"id"`
	Key                string              `json:"key"`
	Name               string              `json:"name"`
	Namespace          string              `json:"namespace"`
	ParentClass        string              `json:"parentClass"`
	Interfaces         []InterfaceRef      `json:"interfaces"`
	TableDeclaration   *Declaration        `json:"tableDeclaration"`
	InnerClasses       []SymbolTable       `json:"innerClasses"`
	Properties         []Property          `json:"properties"`
	Constructors       []Constructor       `json:"constructors"`
	Methods            []Method            `json:"methods"`
	Variables          []Property          `json:"variables"`
	ExternalReferences []ExternalReference `json:"externalReferences"`
}

// Declaration describes the declared type of a symbol table.
type Declaration struct {
	Name        string       `json:"name"`
	Type        string       `json:"type"`
	Annotations []Annotation `json:"annotations"`
	Modifiers   []string     `json:"modifiers"`
}

// Annotations returns the declaration annotations, or nil.
func (s SymbolTable) Annotations() []Annotation {
	if s.TableDeclaration == nil {
		return nil
	}
	return s.TableDeclaration.Annotations
}

// Modifiers returns the declaration modifiers, or nil.
func (s SymbolTable) Modifiers() []string {
	if s.TableDeclaration == nil {
		return nil
	}
	return s.TableDeclaration.Modifiers
}

// InterfaceRef is an implemented interface. The Tooling API reports these
// either as plain strings or as objects with a name.
type InterfaceRef struct {
	Name string `json:"name"`
}

// UnmarshalJSON accepts both "Name" and {"name": "Name"}.
func (i *InterfaceRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &i.Name)
	}
	type plain InterfaceRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*i = InterfaceRef(p)
	return nil
}

// Annotation is an Apex annotation such as @AuraEnabled.
type Annotation struct {
	Name string `json:"name"`
}

// Parameter is one formal parameter of a method or constructor.
type Parameter struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Method is a declared method.
type Method struct {
	Name        string       `json:"name"`
	ReturnType  string       `json:"returnType"`
	Annotations []Annotation `json:"annotations"`
	Modifiers   []string     `json:"modifiers"`
	Parameters  []Parameter  `json:"parameters"`
}

// Constructor is a declared constructor.
type Constructor struct {
	Name        string       `json:"name"`
	Annotations []Annotation `json:"annotations"`
	Modifiers   []string     `json:"modifiers"`
	Parameters  []Parameter  `json:"parameters"`
}

// Property is a declared property or variable.
type Property struct {
	Name        string       `json:"name"`
	Type        string       `json:"type"`
	Annotations []Annotation `json:"annotations"`
	Modifiers   []string     `json:"modifiers"`
}

// ExternalReference is a type used by the member but declared elsewhere.
type ExternalReference struct {
	Namespace string      `json:"namespace"`
	Name      string      `json:"name"`
	Variables []NamedItem `json:"variables"`
	Methods   []NamedItem `json:"methods"`
}

// NamedItem is a referenced variable or method, only its name is rendered.
type NamedItem struct {
	Name string `json:"name"`
}
