package preference

import "testing"

func TestMergeOverlayWins(t *testing.T) {
	base := Document{
		"audio": {
			"volume": Number(50),
			"mute":   Boolean(false),
		},
	}
	overlay := Document{
		"audio": {
			"volume": Number(80),
		},
	}

	merged := Merge(base, overlay)

	if got := merged["audio"]["volume"]; !got.Equal(Number(80)) {
		t.Errorf("volume = %v, want 80", got)
	}
	if got := merged["audio"]["mute"]; !got.Equal(Boolean(false)) {
		t.Errorf("mute = %v, want false", got)
	}
}

func TestMergeAddsNewCategoryAndField(t *testing.T) {
	base := Document{
		"audio": {"volume": Number(50)},
	}
	overlay := Document{
		"audio":     {"crossfade": Number(5)},
		"interface": {"theme": Categorical("dark")},
	}

	merged := Merge(base, overlay)

	want := Document{
		"audio":     {"volume": Number(50), "crossfade": Number(5)},
		"interface": {"theme": Categorical("dark")},
	}
	if !merged.Equal(want) {
		t.Errorf("merged = %v, want %v", merged, want)
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	base := Document{"audio": {"volume": Number(50)}}
	overlay := Document{"audio": {"volume": Number(80)}}

	_ = Merge(base, overlay)

	if !base["audio"]["volume"].Equal(Number(50)) {
		t.Error("base mutated by Merge")
	}
}

func TestMergeEmptyOverlayIsIdentity(t *testing.T) {
	base := Document{"audio": {"volume": Number(50)}}

	merged := Merge(base, NewDocument())

	if !merged.Equal(base) {
		t.Errorf("merged = %v, want %v", merged, base)
	}
}

func TestDocumentCloneIsDeep(t *testing.T) {
	orig := Document{"audio": {"volume": Number(50)}}
	cp := orig.Clone()
	cp["audio"]["volume"] = Number(10)

	if !orig["audio"]["volume"].Equal(Number(50)) {
		t.Error("Clone shares category map with original")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		doc     Document
		wantErr bool
	}{
		{
			name: "well formed",
			doc: Document{
				"audio": {"volume": Number(50), "quality": Categorical("high")},
			},
			wantErr: false,
		},
		{
			name:    "numeric field with string value",
			doc:     Document{"audio": {"volume": Categorical("loud")}},
			wantErr: true,
		},
		{
			name:    "categorical outside allowed set",
			doc:     Document{"audio": {"quality": Categorical("ultra")}},
			wantErr: true,
		},
		{
			name:    "boolean field with number",
			doc:     Document{"audio": {"mute": Number(1)}},
			wantErr: true,
		},
		{
			name:    "unknown field passes through",
			doc:     Document{"audio": {"custom_knob": Number(3)}},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.doc, nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
