// internal/domain/variants/selection.go
package variants

// Selection is a shopper's in-progress choice of attribute values,
// keyed by attribute name. A partial selection is always
// representable; missing keys simply have not been chosen yet.
type Selection map[string]string

// NewSelection returns an empty selection.
func NewSelection() Selection {
	return Selection{}
}

// Set upserts the value for an attribute. An empty value clears the
// attribute entirely, so a selection never holds blank entries.
func (s Selection) Set(name, value string) {
	if value == "" {
		delete(s, name)
		return
	}
	s[name] = value
}

// Clear removes the attribute from the selection.
func (s Selection) Clear(name string) {
	delete(s, name)
}

// withoutBlanks returns the selection minus blank-valued entries.
// The input is untouched; when it holds no blanks it is returned
// as-is.
func (s Selection) withoutBlanks() Selection {
	clean := true
	for _, v := range s {
		if v == "" {
			clean = false
			break
		}
	}
	if clean {
		return s
	}
	out := make(Selection, len(s))
	for k, v := range s {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Clone returns an independent copy of the selection.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
