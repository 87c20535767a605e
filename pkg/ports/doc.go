// Package ports defines the interfaces between the remat core and its
// adapters, together with reusable contract test suites that every adapter
// implementation is expected to pass.
package ports
