package indexer

import (
	"fmt"
	"strconv"
)

// AssignIDs derives stable identifiers for an ordered fragment sequence.
// The id is "source_path:page:seq" where seq counts fragments within the
// current (source_path, page) group and resets to 0 whenever the group
// changes from the previous fragment. It is a pure function of the input
// order: the caller must pass fragments in document load order, then split
// order, or ids will not be stable across runs.
//
// The input slice is not modified; a new slice with ids set is returned.
func AssignIDs(fragments []Fragment) []Fragment {
	out := make([]Fragment, len(fragments))

	lastGroup := ""
	seq := 0
	for i, frag := range fragments {
		group := frag.SourcePath + ":" + pageLabel(frag.Page)
		if i > 0 && group == lastGroup {
			seq++
		} else {
			seq = 0
		}
		lastGroup = group

		frag.SeqInPage = seq
		frag.StableID = fmt.Sprintf("%s:%d", group, seq)
		out[i] = frag
	}
	return out
}

// pageLabel renders the page component of a stable id. Unpaged sources use
// the literal "None"; that exact token is persisted in existing indexes, so
// it must not change.
func pageLabel(page *int) string {
	if page == nil {
		return "None"
	}
	return strconv.Itoa(*page)
}
