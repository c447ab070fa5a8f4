// Package patch applies an RFC 6902 JSON Patch document to a decoded
// OpenAPI document (stage B, before model construction) so spec authors can
// fix upstream bugs without forking. Patch operations are applied
// sequentially, each against the result of the previous one; a failing
// operation aborts the run with oaserrors.PatchError carrying its index and
// target pointer.
//
// No JSON Patch implementation exists anywhere in the generator's
// dependency stack, so this package hand-rolls pointer navigation on
// map[string]any/[]any — the same "decode to a raw tree, apply structured
// actions sequentially" shape the
// generator's patch-adjacent ancestor used for overlay actions, retargeted
// at literal RFC 6902 verbs instead of JSONPath targets.
package patch
