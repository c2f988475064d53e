// Package contractlifecycle contains the Steward implementation of vendor
// contract lifecycle management: interval-overlap validation, time-driven
// status derivation, and status self-healing on read.
//
// The module keeps domain/application logic decoupled from runtime/platform
// concerns through ports and adapter composition.
package contractlifecycle
