// Package types defines the diary record, its date rules and text codec,
// the application configuration, and standard errors for the diary tool.
package types
