// Package domain contains the core model for sumlist: tagged list elements,
// the summation routine and the error taxonomy.
//
// The domain does not depend on YAML, JSON, HCL or the filesystem. Infra
// adapters map their inputs into these types.
package domain
