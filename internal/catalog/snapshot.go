package catalog

import (
	"regexp"
	"time"
)

// IDFormat is the snapshot id layout. The id doubles as the directory name
// and as the chronological sort key: lexicographic order is creation order.
const IDFormat = "20060102_150405"

var idPattern = regexp.MustCompile(`^\d{8}_\d{6}$`)

// Snapshot represents one base backup registered in the catalog.
// WALMethod is only known on the creating side; snapshots read back from
// the catalog leave it empty, since the directory name is the only
// persisted metadata.
type Snapshot struct {
	ID        string
	Path      string
	CreatedAt time.Time
	WALMethod string
}

// ParseID returns the creation time encoded in a snapshot id and whether
// the name is a valid id at all.
func ParseID(name string) (time.Time, bool) {
	if !idPattern.MatchString(name) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(IDFormat, name, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
