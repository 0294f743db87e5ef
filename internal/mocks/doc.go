// Package mocks provides centralized mock implementations for testing.
//
// Mock structs expose function fields for each interface method so tests can
// override just the behavior they need; unset fields fall back to simple
// in-memory defaults.
package mocks
