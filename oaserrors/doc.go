// Package oaserrors provides the fatal error taxonomy for the openapitor
// generation pipeline.
//
// Import path: github.com/openapitor/openapitor/oaserrors
//
// Every error returned from a pipeline stage (load, patch, resolve, name
// mint, type/operation lowering, render, write) is one of the seven
// concrete types below. Each carries the JSON pointer into the source
// document (or, for IOError, the output path) where the failure was
// detected, supports [errors.Is]/[errors.As] against its matching
// sentinel, and Unwraps to its cause when one exists.
//
// # Error Types
//
//   - [SpecLoadError]: document could not be read, decoded, or structurally validated
//   - [PatchError]: an RFC 6902 JSON Patch operation failed to apply
//   - [RefResolveError]: a $ref failed to resolve, formed a forbidden cycle, or pointed outside the document
//   - [SchemaLoweringError]: a schema could not be lowered to a Type IR node
//   - [NameMintError]: the name mint could not produce a valid, unique identifier
//   - [RenderError]: a Type IR or Method IR value could not be rendered to source
//   - [IOError]: a failure writing the generated workspace to disk
//
// There is no retry taxonomy here: every value is fatal to the run that
// produced it. Non-fatal diagnostics (dropped additionalProperties,
// degraded oneOf branches, and similar) travel separately as
// issues.Issue values in generator.GenerateResult.Issues alongside a
// successful result.
package oaserrors
