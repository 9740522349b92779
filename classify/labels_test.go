package classify

import (
	"reflect"
	"testing"
)

func TestConvertLabels(t *testing.T) {
	tests := []struct {
		name        string
		labels      []string
		want        []int
		wantMapping map[int]string
	}{
		{
			name:        "Lexical assignment",
			labels:      []string{"rrlyr", "cep", "rrlyr", "dsct"},
			want:        []int{2, 0, 2, 1},
			wantMapping: map[int]string{0: "cep", 1: "dsct", 2: "rrlyr"},
		},
		{
			name:        "Single class",
			labels:      []string{"lpv", "lpv"},
			want:        []int{0, 0},
			wantMapping: map[int]string{0: "lpv"},
		},
		{
			name:        "Empty input",
			labels:      nil,
			want:        []int{},
			wantMapping: map[int]string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, mapping := ConvertLabels(tt.labels)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("indices = %v, want %v", got, tt.want)
			}
			if !reflect.DeepEqual(mapping, tt.wantMapping) {
				t.Errorf("mapping = %v, want %v", mapping, tt.wantMapping)
			}
		})
	}
}

func TestConvertLabelsStableAcrossOrder(t *testing.T) {
	// The same label set in a different sample order yields the same
	// label-to-index assignment.
	_, m1 := ConvertLabels([]string{"a", "b", "c"})
	_, m2 := ConvertLabels([]string{"c", "a", "b", "b"})
	if !reflect.DeepEqual(m1, m2) {
		t.Errorf("mappings differ: %v vs %v", m1, m2)
	}
}
