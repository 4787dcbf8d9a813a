// Package model defines the provider-agnostic abstractions for interacting
// with language models inside reagent.
//
// Core goals:
//   - Unify streaming + non-streaming generation behind a single interface
//   - Normalize tool declarations and partial tool-call deltas so the agent
//     loops never branch per vendor
//   - Keep request/response shapes minimal and transport independent
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (OpenAI, Anthropic) implement the Model interface from this
// package so agent loops remain decoupled from vendor SDKs.
package model
