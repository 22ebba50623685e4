package csp

// Version is the current version of the gocsp solver.
const Version = "0.1.0"
