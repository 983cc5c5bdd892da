// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"strings"
)

// FallbackName is used when the process was started without an argv[0].
const FallbackName = "cvs-transport"

// GetExecutableName returns the base name of os.Args[0] with any ".exe"
// suffix removed. Both '/' and '\\' are treated as separators, so a Windows
// path is handled the same way on every platform.
//
// Returns:
//   - string: Clean executable name suitable for CLI usage
func GetExecutableName() string {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return FallbackName
	}
	return baseName(os.Args[0])
}

// baseName returns the last non-empty path element of p.
func baseName(p string) string {
	parts := strings.FieldsFunc(p, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(parts) == 0 {
		return FallbackName
	}
	return strings.TrimSuffix(parts[len(parts)-1], ".exe")
}
