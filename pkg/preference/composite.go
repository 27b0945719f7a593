package preference

import "sort"

// Composite combines the documents of all session participants into one
// derived document. Strategy per field:
//
//   - numeric: lower median of all present values (for an even count the
//     smaller of the two middle values is taken)
//   - boolean: majority vote, true only when strictly more than half of
//     the present values are true; a 50/50 split resolves to false
//   - categorical: mode over the values inside the field's allowed set;
//     ties go to the value seen first scanning participants in input
//     order
//
// Fields present in only a subset of documents are computed over that
// subset. Fields present nowhere are omitted. The input slice order is
// the participant order and the deterministic tie-break key.
func Composite(docs []Document, table FieldTable) Document {
	out := NewDocument()
	if len(docs) == 0 {
		return out
	}
	if table == nil {
		table = DefaultFieldTable
	}

	for _, cat := range collectCategories(docs) {
		combined := make(Category)
		for _, field := range collectFields(docs, cat) {
			present := make([]Value, 0, len(docs))
			for _, doc := range docs {
				if fields, ok := doc[cat]; ok {
					if val, ok := fields[field]; ok {
						present = append(present, val)
					}
				}
			}
			if len(present) == 0 {
				continue
			}
			spec := table.kindOf(cat, field, present[0])
			if val, ok := combineField(spec, present); ok {
				combined[field] = val
			}
		}
		if len(combined) > 0 {
			out[cat] = combined
		}
	}
	return out
}

func combineField(spec FieldSpec, present []Value) (Value, bool) {
	switch spec.Kind {
	case FieldNumeric:
		return medianNumeric(present)
	case FieldBoolean:
		return majorityBool(present)
	default:
		return modeCategorical(spec, present)
	}
}

// medianNumeric returns the lower median of the numeric values present.
func medianNumeric(values []Value) (Value, bool) {
	nums := make([]float64, 0, len(values))
	for _, v := range values {
		if v.Kind == KindNumber {
			nums = append(nums, v.Num)
		}
	}
	if len(nums) == 0 {
		return Value{}, false
	}
	sort.Float64s(nums)
	// lower median: for even counts pick the left of the two middles
	return Number(nums[(len(nums)-1)/2]), true
}

// majorityBool is true only on a strict majority; an exact tie is false.
func majorityBool(values []Value) (Value, bool) {
	var total, trues int
	for _, v := range values {
		if v.Kind == KindBool {
			total++
			if v.Bool {
				trues++
			}
		}
	}
	if total == 0 {
		return Value{}, false
	}
	return Boolean(trues*2 > total), true
}

func modeCategorical(spec FieldSpec, values []Value) (Value, bool) {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0
	for _, v := range values {
		if v.Kind != KindString || !spec.allows(v.Str) {
			continue
		}
		if _, ok := firstSeen[v.Str]; !ok {
			firstSeen[v.Str] = order
		}
		counts[v.Str]++
		order++
	}
	if len(counts) == 0 {
		return Value{}, false
	}
	var best string
	bestCount := -1
	for val, count := range counts {
		if count > bestCount || (count == bestCount && firstSeen[val] < firstSeen[best]) {
			best = val
			bestCount = count
		}
	}
	return Categorical(best), true
}

func collectCategories(docs []Document) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, doc := range docs {
		for cat := range doc {
			if _, ok := seen[cat]; !ok {
				seen[cat] = struct{}{}
				names = append(names, cat)
			}
		}
	}
	sort.Strings(names)
	return names
}

func collectFields(docs []Document, cat string) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, doc := range docs {
		for field := range doc[cat] {
			if _, ok := seen[field]; !ok {
				seen[field] = struct{}{}
				names = append(names, field)
			}
		}
	}
	sort.Strings(names)
	return names
}
