package classify

import (
	"sort"
)

// ConvertLabels maps string class labels to contiguous integer indices,
// assigned in lexical order for run-to-run stability. The returned mapping
// inverts the conversion for reporting.
func ConvertLabels(labels []string) ([]int, map[int]string) {
	uniq := make(map[string]struct{}, 8)
	for _, l := range labels {
		uniq[l] = struct{}{}
	}
	names := make([]string, 0, len(uniq))
	for l := range uniq {
		names = append(names, l)
	}
	sort.Strings(names)

	toInt := make(map[string]int, len(names))
	mapping := make(map[int]string, len(names))
	for i, name := range names {
		toInt[name] = i
		mapping[i] = name
	}

	out := make([]int, len(labels))
	for i, l := range labels {
		out[i] = toInt[l]
	}
	return out, mapping
}
