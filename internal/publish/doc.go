// Package publish assembles a self-contained runtime artifact directory
// from a project manifest: the compiled entry binary, the dependency
// resolution record, a runtime configuration record, and any declared
// static assets. The output is suitable for direct invocation inside a
// minimal runtime image with no compiler toolchain present.
package publish
