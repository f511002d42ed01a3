package app

// ApplyOptions exposes applyOptions for tests.
var ApplyOptions = applyOptions
