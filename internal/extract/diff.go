package extract

// DiffAdded returns the elements of current absent from previous, preserving
// current's order. Membership is exact string equality; normalization has
// already been applied upstream. The result is not capped.
func DiffAdded(previous, current []string) []string {
	previousSet := make(map[string]struct{}, len(previous))
	for _, item := range previous {
		previousSet[item] = struct{}{}
	}

	added := make([]string, 0, len(current))
	for _, item := range current {
		if _, ok := previousSet[item]; !ok {
			added = append(added, item)
		}
	}
	return added
}
