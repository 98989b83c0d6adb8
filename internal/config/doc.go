// Package config provides configuration loading, merging, and validation
// for the console.
//
// Configuration is assembled from multiple sources. For every field the
// first source with a non-zero value wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON or YAML config file
//  4. Built-in defaults
//
// The entry point is [GetConsoleConfig].
package config
