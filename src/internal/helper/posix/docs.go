// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix provides [POSIX]-style helpers for command-line presentation.
//
// Key functions:
//   - GetExecutableName: Returns the executable name without extension for CLI usage
//
// Cross-Platform Behavior:
//
//   - Linux/macOS: "/usr/bin/cvs-transport" → "cvs-transport"
//   - Windows: "C:\bin\cvs-transport.exe" → "cvs-transport"
//   - Fallback: Empty args → [FallbackName]
//
// [POSIX]: https://grokipedia.com/page/POSIX
package posix
