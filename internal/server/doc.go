// Package server wires the engine together and runs it.
//
// Lifecycle:
//  1. Load configuration from environment (plus optional TOML file)
//  2. Initialize logger and metrics
//  3. Open the document store and load the last saved document
//  4. Build the session and interpreter strategies
//  5. Mount the REST and WebSocket surfaces
//  6. Serve until SIGINT/SIGTERM, then save and shut down
package server
