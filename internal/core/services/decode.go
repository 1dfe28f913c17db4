package services

import (
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
)

// decodeQuery parses a query envelope and requires at least one record
// when nonEmpty is set.
func decodeQuery[T any](body []byte, nonEmpty bool) (*domain.QueryResult[T], error) {
	var result domain.QueryResult[T]
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: decode query: %w", domain.ErrUnexpectedResponse, err)
	}
	if nonEmpty && len(result.Records) == 0 {
		return nil, fmt.Errorf("%w: query returned no records", domain.ErrUnexpectedResponse)
	}
	return &result, nil
}

// decodeCreateResult parses an sObject create response and returns the new id.
func decodeCreateResult(body []byte) (string, error) {
	var result domain.CreateResult
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: decode create result: %w", domain.ErrUnexpectedResponse, err)
	}
	if len(result.Errors) > 0 {
		return "", fmt.Errorf("%w: %s: %s", domain.ErrUnexpectedResponse, result.Errors[0].ErrorCode, result.Errors[0].Message)
	}
	if result.ID == "" {
		return "", fmt.Errorf("%w: create result without id", domain.ErrUnexpectedResponse)
	}
	return result.ID, nil
}

func decodeComposite(body []byte) (*domain.CompositeResponse, error) {
	var result domain.CompositeResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: decode composite: %w", domain.ErrUnexpectedResponse, err)
	}
	return &result, nil
}

// decodeAsyncRequest reads the first ContainerAsyncRequest of a query.
func decodeAsyncRequest(body []byte) (*domain.ContainerAsyncRequest, error) {
	result, err := decodeQuery[domain.ContainerAsyncRequest](body, true)
	if err != nil {
		return nil, err
	}
	req := result.Records[0]
	if req.State == "" {
		return nil, fmt.Errorf("%w: async request %s without state", domain.ErrUnexpectedResponse, req.ID)
	}
	return &req, nil
}

func decodeMemberSymbols(body []byte) (*domain.MemberSymbols, error) {
	var member domain.MemberSymbols
	if err := json.Unmarshal(body, &member); err != nil {
		return nil, fmt.Errorf("%w: decode member: %w", domain.ErrUnexpectedResponse, err)
	}
	if member.FullName == "" {
		return nil, fmt.Errorf("%w: member %s without FullName", domain.ErrUnexpectedResponse, member.ID)
	}
	if len(member.SymbolTable) == 0 || string(member.SymbolTable) == "null" {
		return nil, fmt.Errorf("%w: member %s without symbol table", domain.ErrUnexpectedResponse, member.FullName)
	}
	return &member, nil
}

func decodeSymbolTable(body []byte) (*domain.SymbolTable, error) {
	var table domain.SymbolTable
	if err := json.Unmarshal(body, &table); err != nil {
		return nil, fmt.Errorf("%w: decode symbol table: %w", domain.ErrUnexpectedResponse, err)
	}
	return &table, nil
}
