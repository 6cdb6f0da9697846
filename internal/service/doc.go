// Package service implements the business flows of the Foundry directory.
//
// Services depend on repository interfaces declared in this package, never on
// concrete storage. The startup service owns the submission pipeline: the
// total mapping from a raw multipart form bundle to a persisted Startup,
// with every default and coercion rule made explicit. Validation is a
// separately callable guard; the submission path stores unvalidated records
// unless strict mode is enabled.
package service
