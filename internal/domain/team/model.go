package team

import "strings"

// Team is one entry of the statistics source's team directory.
type Team struct {
	ID   int64
	Name string
}

// Stat is one team's season penalty-exposure record.
type Stat struct {
	TeamID           int64
	TeamName         string
	TimesShorthanded int
}

// Directory maps canonical team names to identifiers. Lookup is exact first,
// then a case-insensitive scan, mirroring how the upstream names drift in
// casing but not in spelling.
type Directory struct {
	nameToID map[string]int64
	idToName map[int64]string
}

func NewDirectory(teams []Team) *Directory {
	d := &Directory{
		nameToID: make(map[string]int64, len(teams)),
		idToName: make(map[int64]string, len(teams)),
	}
	for _, t := range teams {
		if t.ID == 0 || t.Name == "" {
			continue
		}
		d.nameToID[t.Name] = t.ID
		d.idToName[t.ID] = t.Name
	}
	return d
}

// IDByName resolves a canonical name to a team id, falling back to a
// case-insensitive scan over all known names.
func (d *Directory) IDByName(name string) (int64, bool) {
	if id, ok := d.nameToID[name]; ok {
		return id, true
	}
	for known, id := range d.nameToID {
		if strings.EqualFold(known, name) {
			return id, true
		}
	}
	return 0, false
}

func (d *Directory) NameByID(id int64) (string, bool) {
	name, ok := d.idToName[id]
	return name, ok
}

func (d *Directory) Len() int {
	return len(d.nameToID)
}
