package files

import "sort"

// Snapshot is the full sorted listing of one directory at one point in time.
type Snapshot struct {
	// Dir is the absolute directory-form path that was listed.
	Dir     string
	Entries []Entry
}

func (s Snapshot) Len() int {
	return len(s.Entries)
}

// Find returns the entry with the given filename.
func (s Snapshot) Find(name string) (Entry, bool) {
	for _, entry := range s.Entries {
		if entry.Filename() == name {
			return entry, true
		}
	}
	return Entry{}, false
}

// SortEntries orders folders before files and each group by filename, byte-wise.
func SortEntries(entries []Entry) []Entry {
	sort.Slice(entries, func(i, j int) bool {
		// Directories first
		if entries[i].IsFolder() && !entries[j].IsFolder() {
			return true
		} else if !entries[i].IsFolder() && entries[j].IsFolder() {
			return false
		}
		// Then sort by name
		return entries[i].Filename() < entries[j].Filename()
	})
	return entries
}
