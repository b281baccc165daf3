package exheader

import (
	"strconv"
	"strings"

	"github.com/mseedgo/miniseed/errs"
)

// splitPointer splits an RFC 6901 JSON Pointer ("/a/b/header") into its
// unescaped reference tokens. An empty pointer ("" or "/") addresses the
// root.
func splitPointer(pointer string) []string {
	if pointer == "" || pointer == "/" {
		return nil
	}

	pointer = strings.TrimPrefix(pointer, "/")
	tokens := strings.Split(pointer, "/")
	for i, tok := range tokens {
		tok = strings.ReplaceAll(tok, "~1", "/")
		tok = strings.ReplaceAll(tok, "~0", "~")
		tokens[i] = tok
	}

	return tokens
}

// splitDotPath splits the read-only dot-notation convenience form
// ("a.b.header") into tokens, for compatibility with extra-header JSON
// produced by older tooling.
func splitDotPath(path string) []string {
	if path == "" {
		return nil
	}

	return strings.Split(path, ".")
}

// Get resolves pointer within d, reporting whether the value exists.
func (d *Doc) Get(pointer string) (any, bool) {
	return navigate(d.root, splitPointer(pointer))
}

// GetDot resolves a dot-notation path within d (read-only legacy
// convenience, per §9's redesign note).
func (d *Doc) GetDot(path string) (any, bool) {
	return navigate(d.root, splitDotPath(path))
}

func navigate(node any, tokens []string) (any, bool) {
	cur := node
	for _, tok := range tokens {
		switch v := cur.(type) {
		case map[string]any:
			next, ok := v[tok]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(tok)
			if err != nil || idx < 0 || idx >= len(v) {
				return nil, false
			}
			cur = v[idx]
		default:
			return nil, false
		}
	}

	return cur, true
}

// GetNumber resolves pointer as a float64, coercing from any JSON numeric
// representation.
func (d *Doc) GetNumber(pointer string) (float64, error) {
	v, ok := d.Get(pointer)
	if !ok {
		return 0, errs.ErrPointerNotFound
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	default:
		return 0, errs.ErrWrongType
	}
}

// GetInt resolves pointer as an int64.
func (d *Doc) GetInt(pointer string) (int64, error) {
	f, err := d.GetNumber(pointer)
	if err != nil {
		return 0, err
	}

	return int64(f), nil
}

// GetString resolves pointer as a string.
func (d *Doc) GetString(pointer string) (string, error) {
	v, ok := d.Get(pointer)
	if !ok {
		return "", errs.ErrPointerNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", errs.ErrWrongType
	}

	return s, nil
}

// GetBool resolves pointer as a bool.
func (d *Doc) GetBool(pointer string) (bool, error) {
	v, ok := d.Get(pointer)
	if !ok {
		return false, errs.ErrPointerNotFound
	}
	b, ok := v.(bool)
	if !ok {
		return false, errs.ErrWrongType
	}

	return b, nil
}

// Set creates intermediate objects as needed along pointer and stores
// value at the leaf, replacing any existing leaf of a different type.
func (d *Doc) Set(pointer string, value any) error {
	tokens := splitPointer(pointer)
	if len(tokens) == 0 {
		return errs.ErrInvalidPointer
	}
	if d.root == nil {
		d.root = map[string]any{}
	}

	cur := d.root
	for _, tok := range tokens[:len(tokens)-1] {
		next, ok := cur[tok]
		if !ok {
			m := map[string]any{}
			cur[tok] = m
			cur = m
			continue
		}

		m, ok := next.(map[string]any)
		if !ok {
			m = map[string]any{}
			cur[tok] = m
		}
		cur = m
	}

	cur[tokens[len(tokens)-1]] = value

	return nil
}
