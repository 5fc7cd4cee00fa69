package merge

import (
	"reflect"
	"testing"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name   string
		layers []map[string]any
		want   map[string]any
	}{
		{
			name:   "no layers",
			layers: nil,
			want:   map[string]any{},
		},
		{
			name:   "single layer",
			layers: []map[string]any{{"a": 1, "b": map[string]any{"c": 2}}},
			want:   map[string]any{"a": 1, "b": map[string]any{"c": 2}},
		},
		{
			name: "nested merge keeps siblings",
			layers: []map[string]any{
				{"a": map[string]any{"x": 1, "y": 2}},
				{"a": map[string]any{"y": 3}},
			},
			want: map[string]any{"a": map[string]any{"x": 1, "y": 3}},
		},
		{
			name: "disjoint keys",
			layers: []map[string]any{
				{"a": 1},
				{"b": 2},
			},
			want: map[string]any{"a": 1, "b": 2},
		},
		{
			name: "sequences replaced",
			layers: []map[string]any{
				{"a": []any{1, 2}},
				{"a": []any{3}},
			},
			want: map[string]any{"a": []any{3}},
		},
		{
			name: "scalar replaces mapping",
			layers: []map[string]any{
				{"a": map[string]any{"x": 1}},
				{"a": 5},
			},
			want: map[string]any{"a": 5},
		},
		{
			name: "mapping replaces scalar",
			layers: []map[string]any{
				{"a": 5},
				{"a": map[string]any{"x": 1}},
			},
			want: map[string]any{"a": map[string]any{"x": 1}},
		},
		{
			name: "nil is an explicit value",
			layers: []map[string]any{
				{"a": 1, "b": 2},
				{"a": nil},
			},
			want: map[string]any{"a": nil, "b": 2},
		},
		{
			name: "three layers in order",
			layers: []map[string]any{
				{"a": map[string]any{"b": 1, "c": 1, "d": 1}},
				{"a": map[string]any{"c": 2, "d": 2}},
				{"a": map[string]any{"d": 3}},
			},
			want: map[string]any{"a": map[string]any{"b": 1, "c": 2, "d": 3}},
		},
		{
			name: "empty layers skipped",
			layers: []map[string]any{
				{},
				{"a": 1},
				nil,
			},
			want: map[string]any{"a": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.layers...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Merge() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	a := map[string]any{"a": map[string]any{"x": 1}}
	b := map[string]any{"a": map[string]any{"y": 2}}

	out := Merge(a, b)

	if !reflect.DeepEqual(a, map[string]any{"a": map[string]any{"x": 1}}) {
		t.Errorf("first input mutated: %#v", a)
	}
	if !reflect.DeepEqual(b, map[string]any{"a": map[string]any{"y": 2}}) {
		t.Errorf("second input mutated: %#v", b)
	}

	// The result must not share nested mappings with any input.
	out["a"].(map[string]any)["z"] = 3
	if _, ok := a["a"].(map[string]any)["z"]; ok {
		t.Error("result aliases first input")
	}
	if _, ok := b["a"].(map[string]any)["z"]; ok {
		t.Error("result aliases second input")
	}
}

func TestMerge_SingleLayerIsCopy(t *testing.T) {
	in := map[string]any{"list": []any{1, 2}, "m": map[string]any{"k": "v"}}
	out := Merge(in)

	out["m"].(map[string]any)["k"] = "changed"
	out["list"].([]any)[0] = 99

	if in["m"].(map[string]any)["k"] != "v" {
		t.Error("nested mapping shared with input")
	}
	if in["list"].([]any)[0] != 1 {
		t.Error("sequence shared with input")
	}
}

func TestClone_Nil(t *testing.T) {
	got := Clone(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("Clone(nil) = %#v, want empty mapping", got)
	}
}

func TestSet(t *testing.T) {
	layer := map[string]any{"a": "scalar"}

	Set(layer, 1, "a", "b")
	Set(layer, 2, "x", "y", "z")
	Set(layer, 3)

	want := map[string]any{
		"a": map[string]any{"b": 1},
		"x": map[string]any{"y": map[string]any{"z": 2}},
	}
	if !reflect.DeepEqual(layer, want) {
		t.Errorf("Set() result = %#v, want %#v", layer, want)
	}
}
