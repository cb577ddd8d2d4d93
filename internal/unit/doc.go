package unit

// Package unit assembles pages of elements from unit data, draws them on a
// render target, routes surface events to elements and publishes their
// notifications on a Bus.
