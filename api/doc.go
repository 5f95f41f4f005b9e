// Package api provides OpenAPI/Swagger documentation for the RealmForge API.
//
// This package anchors the OpenAPI 3.0 specification and related
// documentation for the RealmForge HTTP API.
//
// # API Overview
//
// RealmForge provides a RESTful API for:
//   - Three.js scene generation per player and location
//   - Character model generation with primitive placeholder parts
//   - Scene template resolution with inheritance and customization
//   - Live scene updates over WebSocket
//   - Health monitoring and metrics
//
// # Authentication
//
// When API keys are configured, endpoints require the X-API-Key header:
//
//	X-API-Key: your-api-key
//
// # Base URL
//
// The default base URL for the API is:
//
//	http://localhost:8080
//
// # Generating Documentation
//
// To regenerate Swagger documentation using swag:
//
//	swag init -g cmd/realmforge/main.go -o api --parseDependency --parseInternal
package api
