package schedule

import (
	"errors"
	"testing"
)

func TestResolveColumns_CanonicalHeader(t *testing.T) {
	header := []string{"Publish Date", "Title", "Description", "File Name", "Processed", "Image16x9FileId"}

	cols, err := ResolveColumns(header, DefaultRoleCandidates)
	if err != nil {
		t.Fatalf("ResolveColumns() error: %v", err)
	}

	want := ColumnMap{
		RolePublishDate: 0,
		RoleTitle:       1,
		RoleDescription: 2,
		RoleFileName:    3,
		RoleProcessed:   4,
		RoleImage:       5,
	}
	for role, idx := range want {
		if cols[role] != idx {
			t.Errorf("role %s resolved to column %d, want %d", role, cols[role], idx)
		}
	}
}

func TestResolveColumns_SynonymsAndPermutations(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   map[Role]int
	}{
		{
			name:   "Synonyms for every role",
			header: []string{"Date", "Episode Title", "Summary", "Filename", "Done", "Image File Id"},
			want: map[Role]int{
				RolePublishDate: 0,
				RoleTitle:       1,
				RoleDescription: 2,
				RoleFileName:    3,
				RoleProcessed:   4,
				RoleImage:       5,
			},
		},
		{
			name:   "Reordered columns",
			header: []string{"Processed", "Image16x9FileId", "Publish Date", "File Name", "Title", "Description"},
			want: map[Role]int{
				RoleProcessed:   0,
				RoleImage:       1,
				RolePublishDate: 2,
				RoleFileName:    3,
				RoleTitle:       4,
				RoleDescription: 5,
			},
		},
		{
			name:   "First candidate wins over later synonym",
			header: []string{"Publish Date", "Date", "Title", "Description", "File Name", "Processed", "Image16x9FileId"},
			want: map[Role]int{
				RolePublishDate: 0,
			},
		},
		{
			name:   "Whitespace around header names is trimmed",
			header: []string{" Publish Date ", "Title", "Description", "File Name", "  Processed", "Image16x9FileId"},
			want: map[Role]int{
				RolePublishDate: 0,
				RoleProcessed:   4,
			},
		},
		{
			name:   "Extra unknown columns are ignored",
			header: []string{"Notes", "Publish Date", "Title", "Description", "File Name", "Processed", "Owner", "Image16x9FileId"},
			want: map[Role]int{
				RolePublishDate: 1,
				RoleImage:       7,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, err := ResolveColumns(tt.header, DefaultRoleCandidates)
			if err != nil {
				t.Fatalf("ResolveColumns() error: %v", err)
			}
			for role, idx := range tt.want {
				if cols[role] != idx {
					t.Errorf("role %s resolved to column %d, want %d", role, cols[role], idx)
				}
			}
		})
	}
}

func TestResolveColumns_MissingRole(t *testing.T) {
	header := []string{"Publish Date", "Title", "Description", "File Name", "Image16x9FileId"}

	_, err := ResolveColumns(header, DefaultRoleCandidates)
	if err == nil {
		t.Fatal("expected error for header missing processed column")
	}

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %T", err)
	}
	if schemaErr.Role != RoleProcessed {
		t.Errorf("SchemaError.Role = %s, want %s", schemaErr.Role, RoleProcessed)
	}
	if len(schemaErr.Candidates) == 0 {
		t.Error("SchemaError should name the attempted candidates")
	}
}

func TestResolveColumns_MatchIsCaseSensitive(t *testing.T) {
	header := []string{"publish date", "Title", "Description", "File Name", "Processed", "Image16x9FileId"}

	_, err := ResolveColumns(header, DefaultRoleCandidates)
	if err == nil {
		t.Fatal("expected lowercase header to fail exact matching")
	}
}
