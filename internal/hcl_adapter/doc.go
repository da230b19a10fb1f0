// Package hcl_adapter loads project files written in HCL and translates
// them into the format-agnostic config.Project model.
//
// Expressions are evaluated with an `env` object holding the process
// environment (plus any .env files) and a small function library, so paths
// can be written as `"${homedir()}/notes/diagram.canvas"` or `env.SRC_DIR`.
package hcl_adapter
