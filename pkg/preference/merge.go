package preference

// Merge deep-merges overlay on top of base and returns a new document.
// Categories present in both are combined field by field with overlay
// winning on conflict; neither input is mutated.
func Merge(base, overlay Document) Document {
	out := base.Clone()
	for cat, fields := range overlay {
		dst, ok := out[cat]
		if !ok {
			dst = make(Category, len(fields))
			out[cat] = dst
		}
		for name, val := range fields {
			dst[name] = val
		}
	}
	return out
}
