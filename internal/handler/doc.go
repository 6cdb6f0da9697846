// Package handler contains the HTTP boundary of the Foundry API.
//
// The public startup endpoints keep the original flat response shapes
// ({success, startup}, {startups}, {error}); everything added since follows
// RFC 9457 problem details with a data envelope. Handlers translate between
// wire shapes and service calls and hold no business logic.
package handler
