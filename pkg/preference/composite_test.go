package preference

import "testing"

func docWith(cat, field string, v Value) Document {
	return Document{cat: {field: v}}
}

func TestCompositeNumericMedian(t *testing.T) {
	tests := []struct {
		name   string
		inputs []float64
		want   float64
	}{
		{"odd count", []float64{10, 20, 30}, 20},
		{"odd unsorted", []float64{30, 10, 20}, 20},
		{"even count lower median", []float64{10, 20}, 10},
		{"even count four values", []float64{10, 20, 30, 40}, 20},
		{"single value", []float64{42}, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs := make([]Document, len(tt.inputs))
			for i, n := range tt.inputs {
				docs[i] = docWith("audio", "volume", Number(n))
			}
			got := Composite(docs, nil)
			if !got["audio"]["volume"].Equal(Number(tt.want)) {
				t.Errorf("volume = %v, want %v", got["audio"]["volume"], tt.want)
			}
		})
	}
}

func TestCompositeBooleanMajority(t *testing.T) {
	tests := []struct {
		name   string
		inputs []bool
		want   bool
	}{
		{"majority true", []bool{true, true, false}, true},
		{"majority false", []bool{true, false, false}, false},
		{"tie resolves false", []bool{true, false}, false},
		{"all true", []bool{true, true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs := make([]Document, len(tt.inputs))
			for i, b := range tt.inputs {
				docs[i] = docWith("audio", "mute", Boolean(b))
			}
			got := Composite(docs, nil)
			if !got["audio"]["mute"].Equal(Boolean(tt.want)) {
				t.Errorf("mute = %v, want %v", got["audio"]["mute"], tt.want)
			}
		})
	}
}

func TestCompositeCategoricalMode(t *testing.T) {
	tests := []struct {
		name   string
		inputs []string
		want   string
	}{
		{"clear mode", []string{"high", "high", "low"}, "high"},
		{"tie breaks to first encountered", []string{"low", "high"}, "low"},
		{"disallowed values ignored", []string{"ultra", "low"}, "low"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs := make([]Document, len(tt.inputs))
			for i, s := range tt.inputs {
				docs[i] = docWith("audio", "quality", Categorical(s))
			}
			got := Composite(docs, nil)
			if !got["audio"]["quality"].Equal(Categorical(tt.want)) {
				t.Errorf("quality = %v, want %q", got["audio"]["quality"], tt.want)
			}
		})
	}
}

func TestCompositeSubsetFields(t *testing.T) {
	docs := []Document{
		{"audio": {"volume": Number(10), "mute": Boolean(true)}},
		{"audio": {"volume": Number(30)}},
		{"interface": {"theme": Categorical("dark")}},
	}

	got := Composite(docs, nil)

	// volume computed over the two documents that carry it
	if !got["audio"]["volume"].Equal(Number(10)) {
		t.Errorf("volume = %v, want 10 (lower median of 10,30)", got["audio"]["volume"])
	}
	// mute present in a single document: strict majority of one
	if !got["audio"]["mute"].Equal(Boolean(true)) {
		t.Errorf("mute = %v, want true", got["audio"]["mute"])
	}
	if !got["interface"]["theme"].Equal(Categorical("dark")) {
		t.Errorf("theme = %v, want dark", got["interface"]["theme"])
	}
}

func TestCompositeDeterministic(t *testing.T) {
	docs := []Document{
		{"audio": {"volume": Number(10), "quality": Categorical("low")}},
		{"audio": {"volume": Number(20), "quality": Categorical("high")}},
		{"audio": {"volume": Number(30), "quality": Categorical("high")}},
	}

	first := Composite(docs, nil)
	for i := 0; i < 10; i++ {
		if again := Composite(docs, nil); !again.Equal(first) {
			t.Fatalf("run %d produced %v, first run produced %v", i, again, first)
		}
	}
}

func TestCompositeEmptyInputs(t *testing.T) {
	if got := Composite(nil, nil); !got.IsEmpty() {
		t.Errorf("Composite(nil) = %v, want empty", got)
	}
	if got := Composite([]Document{{}, {}}, nil); !got.IsEmpty() {
		t.Errorf("Composite of empty docs = %v, want empty", got)
	}
}

// Three users voting on mute: two true, one false.
func TestCompositeMajorityScenario(t *testing.T) {
	docs := []Document{
		docWith("audio", "mute", Boolean(true)),
		docWith("audio", "mute", Boolean(true)),
		docWith("audio", "mute", Boolean(false)),
	}

	got := Composite(docs, nil)

	want := Document{"audio": {"mute": Boolean(true)}}
	if !got.Equal(want) {
		t.Errorf("composite = %v, want %v", got, want)
	}
}
