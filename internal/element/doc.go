package element

// Package element provides the base shared by all unit element types. An element
// owns its property set and reflects property changes as render commands queued
// in an Outbox; a driver drains the Outbox and applies the commands to the
// page surface supplied by a RenderTarget.
