package amigo

// Regenerate API models from the published OpenAPI document.

//go:generate go run ./cmd/gen-models --output models_gen.go
