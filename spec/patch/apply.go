package patch

import (
	"encoding/json"
	"fmt"

	"github.com/openapitor/openapitor/oaserrors"
)

// Apply applies a JSON Patch document (an RFC 6902 array) to doc, a tree of
// map[string]any/[]any/scalars as produced by json.Unmarshal into `any`.
// doc is not mutated in place; Apply deep-copies it first so a failing
// patch leaves the caller's original tree untouched.
//
// The patch file's absence is not this function's concern — callers skip
// calling Apply entirely when no patch file was supplied.
func Apply(doc any, patchJSON []byte) (*Result, error) {
	var ops []Op
	if err := json.Unmarshal(patchJSON, &ops); err != nil {
		return nil, &oaserrors.PatchError{OpIndex: -1, Message: "patch document is not a valid JSON Patch array", Cause: err}
	}

	working := deepCopy(doc)
	result := &Result{Document: working}

	for i, op := range ops {
		next, err := applyOp(result.Document, op)
		if err != nil {
			return nil, &oaserrors.PatchError{OpIndex: i, Op: op.Op, Pointer: op.Path, Message: err.Error()}
		}
		result.Document = next
		result.Applied++
		result.Changes = append(result.Changes, ChangeRecord{OpIndex: i, Op: op.Op, Path: op.Path})
	}
	return result, nil
}

func applyOp(root any, op Op) (any, error) {
	switch op.Op {
	case "add":
		return mutate(root, op.Path, "add", op.Value)
	case "remove":
		return mutate(root, op.Path, "remove", nil)
	case "replace":
		return mutate(root, op.Path, "replace", op.Value)
	case "move":
		tokens, err := splitPointer(op.From)
		if err != nil {
			return nil, err
		}
		val, err := getValue(root, tokens)
		if err != nil {
			return nil, fmt.Errorf("move: source %q: %w", op.From, err)
		}
		afterRemove, err := mutate(root, op.From, "remove", nil)
		if err != nil {
			return nil, fmt.Errorf("move: removing source %q: %w", op.From, err)
		}
		return mutate(afterRemove, op.Path, "add", deepCopy(val))
	case "copy":
		tokens, err := splitPointer(op.From)
		if err != nil {
			return nil, err
		}
		val, err := getValue(root, tokens)
		if err != nil {
			return nil, fmt.Errorf("copy: source %q: %w", op.From, err)
		}
		return mutate(root, op.Path, "add", deepCopy(val))
	case "test":
		tokens, err := splitPointer(op.Path)
		if err != nil {
			return nil, err
		}
		val, err := getValue(root, tokens)
		if err != nil {
			return nil, fmt.Errorf("test: %w", err)
		}
		if !deepEqual(val, op.Value) {
			return nil, fmt.Errorf("test: value at %q does not match", op.Path)
		}
		return root, nil
	default:
		return nil, fmt.Errorf("unsupported patch op %q", op.Op)
	}
}

// mutate applies a single add/remove/replace at path against node, returning
// the (possibly new, for append/delete-induced slice reallocation) root
// value. Containers are rebuilt bottom-up on the way back out of the
// recursion so that array length changes at any depth propagate correctly
// to every ancestor slice.
func mutate(node any, path string, kind string, value any) (any, error) {
	tokens, err := splitPointer(path)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		switch kind {
		case "add", "replace":
			return deepCopy(value), nil
		case "remove":
			return nil, fmt.Errorf("cannot remove the document root")
		}
	}
	return mutateAt(node, tokens, kind, value)
}

func mutateAt(node any, tokens []string, kind string, value any) (any, error) {
	if len(tokens) == 1 {
		return applyLeaf(node, tokens[0], kind, value)
	}
	key := tokens[0]
	switch v := node.(type) {
	case map[string]any:
		child, ok := v[key]
		if !ok {
			return nil, fmt.Errorf("no such member %q", key)
		}
		newChild, err := mutateAt(child, tokens[1:], kind, value)
		if err != nil {
			return nil, err
		}
		v[key] = newChild
		return v, nil
	case []any:
		idx, err := arrayIndex(key, len(v))
		if err != nil {
			return nil, err
		}
		newChild, err := mutateAt(v[idx], tokens[1:], kind, value)
		if err != nil {
			return nil, err
		}
		v[idx] = newChild
		return v, nil
	default:
		return nil, fmt.Errorf("cannot descend into non-container at %q", key)
	}
}

func applyLeaf(parent any, key string, kind string, value any) (any, error) {
	switch p := parent.(type) {
	case map[string]any:
		switch kind {
		case "add", "replace":
			if kind == "replace" {
				if _, ok := p[key]; !ok {
					return nil, fmt.Errorf("no such member %q to replace", key)
				}
			}
			p[key] = deepCopy(value)
			return p, nil
		case "remove":
			if _, ok := p[key]; !ok {
				return nil, fmt.Errorf("no such member %q", key)
			}
			delete(p, key)
			return p, nil
		}
	case []any:
		switch kind {
		case "add":
			if key == "-" {
				return append(p, deepCopy(value)), nil
			}
			idx, err := arrayIndex(key, len(p))
			if err != nil {
				return nil, err
			}
			out := make([]any, 0, len(p)+1)
			out = append(out, p[:idx]...)
			out = append(out, deepCopy(value))
			out = append(out, p[idx:]...)
			return out, nil
		case "replace":
			idx, err := arrayIndex(key, len(p))
			if err != nil || idx >= len(p) {
				return nil, fmt.Errorf("no such array element %q to replace", key)
			}
			p[idx] = deepCopy(value)
			return p, nil
		case "remove":
			idx, err := arrayIndex(key, len(p))
			if err != nil || idx >= len(p) {
				return nil, fmt.Errorf("no such array element %q", key)
			}
			out := make([]any, 0, len(p)-1)
			out = append(out, p[:idx]...)
			out = append(out, p[idx+1:]...)
			return out, nil
		}
	}
	return nil, fmt.Errorf("cannot apply %q at %q: not a container", kind, key)
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = deepCopy(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = deepCopy(val)
		}
		return out
	default:
		return v
	}
}

func deepEqual(a, b any) bool {
	aj, errA := json.Marshal(a)
	bj, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return string(aj) == string(bj)
}
