// Package internal contains the core implementation packages for
// inlinescripts.
//
// # Package Organization
//
// The internal packages are organized by functional domain:
//
//   - script: Script templates, placeholder substitution and name casing
//   - bundle: Ordered bundles rendered as one content-hashed <script> tag
//   - directive: Binding rendered tags to template engine directives
//   - presets: Embedded color scheme scripts and their placeholder defaults
//   - output: Minification, syntax checking and atomic file writes
//   - config: Configuration loading and validation
//   - watcher: File system monitoring with debouncing
//   - errors: Structured errors with types and codes
//   - logging: Structured logging on log/slog
//   - version: Build metadata
//   - testutils: Fixtures shared by the tests
//
// # Data Flow
//
//   - Config or command line arguments select template files or a preset
//   - Bundle factory splits each path and creates file scripts
//   - Bundle renders every script once and derives the tag id
//   - Output optionally checks and minifies the code and writes the tag
//   - Watcher re-runs the flow when a template changes
//
// # Testing Strategy
//
// Unit tests use testify. Property tests use gopter and run with the
// "property" build tag:
//
//	go test -tags property ./...
package internal
