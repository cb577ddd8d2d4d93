package platform

// Package platform contains OS/platform integration: resolving media sources of
// a unit to local files and revealing files in the system file manager.
