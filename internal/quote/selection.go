package quote

import (
	"encoding/json"
	"sort"
)

// ExtraSet is a set of extra feature ids. It marshals as a sorted JSON array.
type ExtraSet map[string]struct{}

// NewExtraSet builds a set from ids, ignoring duplicates.
func NewExtraSet(ids ...string) ExtraSet {
	s := make(ExtraSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set.
func (s ExtraSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the members in sorted order.
func (s ExtraSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns an independent copy.
func (s ExtraSet) Clone() ExtraSet {
	out := make(ExtraSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

func (s ExtraSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

func (s *ExtraSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewExtraSet(ids...)
	return nil
}

// Selection is the customer's current choice in the calculator.
type Selection struct {
	SiteTypeID string   `json:"site_type"`
	PageCount  int      `json:"pages"`
	ExtraIDs   ExtraSet `json:"extras"`
}

// NewSelection is a convenience constructor.
func NewSelection(siteType string, pages int, extras ...string) Selection {
	return Selection{SiteTypeID: siteType, PageCount: pages, ExtraIDs: NewExtraSet(extras...)}
}

// Equal reports whether two selections describe the same choice.
func (s Selection) Equal(o Selection) bool {
	if s.SiteTypeID != o.SiteTypeID || s.PageCount != o.PageCount || len(s.ExtraIDs) != len(o.ExtraIDs) {
		return false
	}
	for id := range s.ExtraIDs {
		if !o.ExtraIDs.Has(id) {
			return false
		}
	}
	return true
}
