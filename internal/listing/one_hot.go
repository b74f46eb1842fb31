package listing

import "sort"

// AmenityVocabulary returns the sorted set of distinct amenities across
// all listings.
func AmenityVocabulary(listings []Listing) []string {
	seen := make(map[string]struct{})
	for _, l := range listings {
		for _, a := range l.Amenities {
			if a == "" {
				continue
			}
			seen[a] = struct{}{}
		}
	}
	vocab := make([]string, 0, len(seen))
	for a := range seen {
		vocab = append(vocab, a)
	}
	sort.Strings(vocab)
	return vocab
}

// OneHotAmenities expands the amenities list into one boolean column
// per distinct amenity. The returned rows align positionally with the
// input listings and the columns with the returned vocabulary.
func OneHotAmenities(listings []Listing) ([]string, [][]bool) {
	vocab := AmenityVocabulary(listings)
	index := make(map[string]int, len(vocab))
	for i, a := range vocab {
		index[a] = i
	}

	rows := make([][]bool, len(listings))
	for i, l := range listings {
		row := make([]bool, len(vocab))
		for _, a := range l.Amenities {
			if j, ok := index[a]; ok {
				row[j] = true
			}
		}
		rows[i] = row
	}
	return vocab, rows
}

// MaxAmenityCount returns the length of the longest amenities list.
func MaxAmenityCount(listings []Listing) int {
	max := 0
	for _, l := range listings {
		if len(l.Amenities) > max {
			max = len(l.Amenities)
		}
	}
	return max
}
