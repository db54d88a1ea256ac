package rank

// Dataset is the rank data of one policy, looked up by token ID and by decoded
// on-chain token name.
type Dataset struct {
	byTokenID  map[string]int
	byName     map[string]int
	collisions int
}

// NewDataset returns an empty Dataset.
func NewDataset() *Dataset {
	return &Dataset{
		byTokenID: make(map[string]int),
		byName:    make(map[string]int),
	}
}

// Add records the rank of a token. An empty tokenID indexes by name only. When two
// tokens share a name, the name keeps the better (lower) rank.
func (d *Dataset) Add(tokenID, name string, rank int) {
	if tokenID != "" {
		d.byTokenID[tokenID] = rank
	}
	if prev, ok := d.byName[name]; ok {
		d.collisions++
		if prev <= rank {
			return
		}
	}
	d.byName[name] = rank
}

// Rank returns the rank of a token, matching its token ID first and its decoded name
// second. Tokens without an entry get 0.
func (d *Dataset) Rank(tokenID, name string) int {
	if d == nil {
		return 0
	}
	if r, ok := d.byTokenID[tokenID]; ok {
		return r
	}
	return d.byName[name]
}

// Len returns the number of distinct names in the dataset.
func (d *Dataset) Len() int {
	return len(d.byName)
}

// Collisions returns how many entries shared a name with an earlier entry.
func (d *Dataset) Collisions() int {
	return d.collisions
}

// FromNames builds a Dataset keyed by token name only.
func FromNames(ranks map[string]int) *Dataset {
	d := NewDataset()
	for name, r := range ranks {
		d.Add("", name, r)
	}
	return d
}
