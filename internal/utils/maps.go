package utils

// MergeMaps merges the passed maps into a new map. Later maps win over
// earlier ones when overwrite is true; otherwise existing keys are kept.
func MergeMaps(overwrite bool, maps ...map[string]any) map[string]any {
	merged := make(map[string]any)
	for _, m := range maps {
		for k, v := range m {
			if _, ok := merged[k]; ok && !overwrite {
				continue
			}
			merged[k] = v
		}
	}
	return merged
}

// SubMap returns the map stored under key, or an empty map if the value is
// missing or not a map.
func SubMap(m map[string]any, key string) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	sub, ok := m[key].(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return sub
}
