package main

// Version is reported by usagesync --version. Overridden at release time via
// -ldflags "-X main.Version=...".
var Version = "0.2.0"
