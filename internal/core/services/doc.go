// Package services implements the driving port interfaces.
//
// SpecBuilder runs the container compile flow against a driven.ToolingAPI,
// Renderer turns archived symbol tables into documents, and the remaining
// services back the query, runs and settings commands. Services only
// talk to the outside world through driven ports.
package services
