// Package ollama implements the ai service interfaces against a local
// Ollama server, using langchaingo for the wire protocol.
//
// Embedding calls are rate limited and issued one text at a time so a large
// ingestion batch cannot saturate the provider.
package ollama
