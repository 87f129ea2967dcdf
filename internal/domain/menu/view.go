package menu

// Categories returns the distinct categories of items in first-occurrence order.
func Categories(items []Item) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		out = append(out, it.Category)
	}
	return out
}

// Tabs returns the category tabs as shown to the user: AllCategories first,
// then Categories(items).
func Tabs(items []Item) []string {
	return append([]string{AllCategories}, Categories(items)...)
}

// Filter returns the items visible under category. AllCategories returns
// items unchanged; any other value matches Category exactly (case-sensitive,
// no trimming). No match yields an empty, non-nil slice.
func Filter(items []Item, category string) []Item {
	if category == AllCategories {
		return items
	}
	out := make([]Item, 0)
	for _, it := range items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

// HasCategory reports whether category is AllCategories or is carried by at
// least one item.
func HasCategory(items []Item, category string) bool {
	if category == AllCategories {
		return true
	}
	for _, it := range items {
		if it.Category == category {
			return true
		}
	}
	return false
}

// Find returns the first item whose canonical identifier equals id.
func Find(items []Item, id string) (Item, bool) {
	for _, it := range items {
		if ResolveID(it) == id {
			return it, true
		}
	}
	return Item{}, false
}
