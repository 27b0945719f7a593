package preference

// FieldKind names the composite strategy applied to a field.
type FieldKind int

const (
	FieldNumeric FieldKind = iota
	FieldBoolean
	FieldCategorical
)

// FieldSpec describes one known field. Allowed is only meaningful for
// categorical fields; values outside the set are ignored when computing
// a composite mode.
type FieldSpec struct {
	Kind    FieldKind
	Allowed []string
}

func (s FieldSpec) allows(v string) bool {
	if len(s.Allowed) == 0 {
		return true
	}
	for _, a := range s.Allowed {
		if a == v {
			return true
		}
	}
	return false
}

// FieldTable is the static schema of the preference document: category
// name to field name to spec. Fields not listed here fall back to the
// strategy implied by their runtime value kind.
type FieldTable map[string]map[string]FieldSpec

// DefaultFieldTable covers the categories the music backend ships with.
var DefaultFieldTable = FieldTable{
	"audio": {
		"volume":         {Kind: FieldNumeric},
		"brightness":     {Kind: FieldNumeric},
		"crossfade":      {Kind: FieldNumeric},
		"buffer_size":    {Kind: FieldNumeric},
		"latency":        {Kind: FieldNumeric},
		"mute":           {Kind: FieldBoolean},
		"normalize":      {Kind: FieldBoolean},
		"effects":        {Kind: FieldBoolean},
		"quality":        {Kind: FieldCategorical, Allowed: []string{"low", "medium", "high", "lossless"}},
		"eq_preset":      {Kind: FieldCategorical, Allowed: []string{"flat", "bass_boost", "treble_boost", "vocal", "electronic"}},
		"output_channel": {Kind: FieldCategorical, Allowed: []string{"stereo", "mono", "surround"}},
	},
	"generation": {
		"temperature":   {Kind: FieldNumeric},
		"duration":      {Kind: FieldNumeric},
		"sample_count":  {Kind: FieldNumeric},
		"auto_extend":   {Kind: FieldBoolean},
		"instrumental":  {Kind: FieldBoolean},
		"model_quality": {Kind: FieldCategorical, Allowed: []string{"draft", "standard", "studio"}},
	},
	"interface": {
		"scale":                 {Kind: FieldNumeric},
		"contrast":              {Kind: FieldNumeric},
		"animations":            {Kind: FieldBoolean},
		"tooltips":              {Kind: FieldBoolean},
		"hardware_acceleration": {Kind: FieldBoolean},
		"theme":                 {Kind: FieldCategorical, Allowed: []string{"light", "dark", "system"}},
		"layout":                {Kind: FieldCategorical, Allowed: []string{"compact", "comfortable", "wide"}},
		"color_scheme":          {Kind: FieldCategorical, Allowed: []string{"default", "ocean", "sunset", "mono"}},
	},
}

// Lookup returns the spec for a field when one is declared.
func (t FieldTable) Lookup(category, field string) (FieldSpec, bool) {
	fields, ok := t[category]
	if !ok {
		return FieldSpec{}, false
	}
	spec, ok := fields[field]
	return spec, ok
}

// kindOf resolves the effective strategy for a field: the declared spec
// when present, otherwise the kind implied by the sample value.
func (t FieldTable) kindOf(category, field string, sample Value) FieldSpec {
	if spec, ok := t.Lookup(category, field); ok {
		return spec
	}
	switch sample.Kind {
	case KindNumber:
		return FieldSpec{Kind: FieldNumeric}
	case KindBool:
		return FieldSpec{Kind: FieldBoolean}
	default:
		return FieldSpec{Kind: FieldCategorical}
	}
}
