// Package schedule reads the episode schedule sheet: it resolves header
// columns to field roles, selects the row due for publication, and marks
// a row processed after a successful run.
package schedule

import (
	"fmt"
	"strings"
)

// Role is a logical field the pipeline needs from the schedule sheet.
type Role string

const (
	RolePublishDate Role = "publish-date"
	RoleTitle       Role = "title"
	RoleDescription Role = "description"
	RoleFileName    Role = "file-name"
	RoleProcessed   Role = "processed"
	RoleImage       Role = "image-reference"
)

// DefaultRoleCandidates maps each role to the header names it accepts,
// in preference order. Matching is exact after trimming whitespace.
var DefaultRoleCandidates = map[Role][]string{
	RolePublishDate: {"Publish Date", "Date", "Publish"},
	RoleTitle:       {"Title", "Episode Title"},
	RoleDescription: {"Description", "Summary"},
	RoleFileName:    {"File Name", "Filename", "Audio File"},
	RoleProcessed:   {"Processed", "Done", "Published"},
	RoleImage:       {"Image16x9FileId", "Image 16x9 File Id", "Image File Id"},
}

// ColumnMap resolves roles to zero-based column positions.
type ColumnMap map[Role]int

// SchemaError reports a role that no header column satisfied.
type SchemaError struct {
	Role       Role
	Candidates []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schedule header missing column for %s (tried %s)",
		e.Role, strings.Join(e.Candidates, ", "))
}

// ResolveColumns maps each role to a column position in the header row.
// For every role the first candidate present in the header wins.
func ResolveColumns(header []string, candidates map[Role][]string) (ColumnMap, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	cols := make(ColumnMap, len(candidates))
	for role, names := range candidates {
		found := false
		for _, name := range names {
			if i, ok := index[name]; ok {
				cols[role] = i
				found = true
				break
			}
		}
		if !found {
			return nil, &SchemaError{Role: role, Candidates: names}
		}
	}
	return cols, nil
}
