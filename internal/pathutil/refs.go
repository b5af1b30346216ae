// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

import "strings"

// RefPrefixDefinitions is the local reference prefix for reusable schema definitions.
const RefPrefixDefinitions = "#/definitions/"

// DefinitionRef builds "#/definitions/{name}".
func DefinitionRef(name string) string {
	return RefPrefixDefinitions + name
}

// DefinitionName extracts the definition name from a "#/definitions/{name}" reference.
func DefinitionName(ref string) (string, bool) {
	name, ok := strings.CutPrefix(ref, RefPrefixDefinitions)
	if !ok || name == "" {
		return "", false
	}
	return Unescape(name), true
}
