package download

// Package download fetches remote media sources of a unit into a local cache
// so the speaker can play them. Fetches are limited in parallelism and retried
// with backoff on transient failures.
