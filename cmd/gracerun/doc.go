// Package main provides the entry point for gracerun.
//
// gracerun hosts a workload and shuts it down gracefully: the first
// Ctrl+C stops new work, lets in-flight work finish within the grace
// period and runs cleanup; a second Ctrl+C exits at once.
//
// Usage:
//
//	gracerun run [--grace-period 30s] [--metrics-addr 127.0.0.1:9090]
//	gracerun --config /path/to/gracerun.yaml config show
//	gracerun version
package main
