// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

// Package pathutil provides RFC 6901 JSON Pointer helpers used to address
// parameter errors.
//
// A pointer is always normalized: leading and trailing slashes are trimmed and
// a single leading slash is re-added unless the pointer is empty.
//
//	pathutil.Normalize("test/person/")      // "/test/person"
//	pathutil.Join("/test", "person", "3")   // "/test/person/3"
//	pathutil.Escape("a/b~c")                // "a~1b~0c"
//
// # Reference Builders
//
// The package also provides helpers for the local "#/definitions/{name}"
// references used by schema documents:
//
//	ref := pathutil.DefinitionRef("Pet")           // "#/definitions/Pet"
//	name, ok := pathutil.DefinitionName(ref)       // "Pet", true
package pathutil
