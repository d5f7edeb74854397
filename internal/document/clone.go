package document

// Clone deep-copies a decoded value so callers can mutate the copy freely.
func Clone(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return CloneObject(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Clone(item)
		}
		return out
	default:
		return val
	}
}

// CloneObject deep-copies an object.
func CloneObject(obj map[string]any) map[string]any {
	if obj == nil {
		return nil
	}
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		out[k] = Clone(v)
	}
	return out
}

// StringList converts a decoded array into a []string. ok is false when v is
// not an array or any element is not a string.
func StringList(v any) (list []string, ok bool) {
	items, isArray := v.([]any)
	if !isArray {
		return nil, false
	}
	list = make([]string, 0, len(items))
	for _, item := range items {
		s, isString := item.(string)
		if !isString {
			return nil, false
		}
		list = append(list, s)
	}
	return list, true
}
