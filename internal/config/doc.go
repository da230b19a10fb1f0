// Package config defines the format-agnostic project model: where the canvas
// lives, where the C++ sources are, how classes are grouped into layers, how
// they relate, and how each command lays out and formats nodes.
//
// Concrete loaders, such as the HCL one, live in separate packages and
// translate their own schema into a *Project.
package config
