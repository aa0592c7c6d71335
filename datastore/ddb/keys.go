/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package ddb

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Attribute names shared by every item in the table.
const (
	AttrPK         = "PK"
	AttrSK         = "SK"
	AttrEntityType = "EntityType"
)

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// expandMacros fills each template in indexMap with attribute values taken from keysInput.
// A template with any macro naming a missing, empty or non-scalar attribute expands to ""
// as a whole, so half-built keys like "EMAIL#" are never written.
func expandMacros(indexMap map[string]string, keysInput any) (map[string]string, error) {
	av, err := attributevalue.MarshalMap(keysInput)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal keysInput: %w", err)
	}

	res := make(map[string]string, len(indexMap))
	for fieldName, template := range indexMap {
		missing := false
		expanded := macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			v := scalarString(av[strings.Trim(macro, "{}")])
			if v == "" {
				missing = true
			}
			return v
		})
		if missing {
			expanded = ""
		}
		res[fieldName] = expanded
	}
	return res, nil
}

func scalarString(val types.AttributeValue) string {
	switch tv := val.(type) {
	case *types.AttributeValueMemberS:
		return tv.Value
	case *types.AttributeValueMemberN:
		return tv.Value
	case *types.AttributeValueMemberBOOL:
		return fmt.Sprintf("%v", tv.Value)
	default:
		// NULL, binary, sets, documents and missing attributes.
		return ""
	}
}

// expandStringKey replaces every macro in the indexMap values with the provided key.
func expandStringKey(indexMap map[string]string, key string) map[string]string {
	expanded := make(map[string]string, len(indexMap))
	for field, template := range indexMap {
		expanded[field] = macroPattern.ReplaceAllLiteralString(template, key)
	}
	return expanded
}

// expandPattern substitutes value for the macro in a single key pattern. Patterns
// without a macro are static and returned as is.
func expandPattern(pattern, value string) string {
	if !macroPattern.MatchString(pattern) {
		return pattern
	}
	return macroPattern.ReplaceAllLiteralString(pattern, value)
}

// buildKeyFromExpanded builds a DynamoDB primary key from the expanded index map.
// Both PK and SK must be present and non-empty.
func buildKeyFromExpanded(expanded map[string]string) (map[string]types.AttributeValue, error) {
	pk, okPK := expanded[AttrPK]
	sk, okSK := expanded[AttrSK]

	if !okPK || !okSK || pk == "" || sk == "" {
		return nil, fmt.Errorf("expanded index map missing valid PK or SK")
	}

	return map[string]types.AttributeValue{
		AttrPK: &types.AttributeValueMemberS{Value: pk},
		AttrSK: &types.AttributeValueMemberS{Value: sk},
	}, nil
}
