// Package mint turns raw OpenAPI identifiers — operationIds, schema names,
// property names, parameter names, enum values — into deterministic, valid
// Go identifiers.
//
// Minting is a pure function of (raw, case, already_minted_in_scope): the
// same raw name minted twice against the same Scope state always produces
// the same identifier, and a raw name is never silently dropped — if the
// natural rendering collides with one already minted in scope, a numeric
// suffix is appended and the original spec name is retained on the Scope so
// callers can still serialize under the wire name.
package mint
