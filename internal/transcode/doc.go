package transcode

// Package transcode converts media sources the speaker cannot decode into WAV
// using the ffmpeg CLI, caching the result per source file.
