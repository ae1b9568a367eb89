package query_test

import (
	"strings"
	"testing"

	"github.com/JaimeStill/promptiverse/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "style_profiles", "s").
		Project("id", "ID").
		Project("name", "Name").
		Project("tags", "Tags").
		Project("created_at", "CreatedAt")
}

func joinedProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "prompts", "p").
		Project("id", "ID").
		Project("title", "Title").
		Join("public", "style_profiles", "s", "LEFT JOIN", "s.id = p.style_profile_id").
		Project("name", "StyleName")
}

func ptr(s string) *string { return &s }

func TestProjectionMap(t *testing.T) {
	p := testProjection()

	if got := p.Table(); got != "public.style_profiles s" {
		t.Errorf("Table() = %q", got)
	}
	if got := p.Alias(); got != "s" {
		t.Errorf("Alias() = %q", got)
	}
	if got := p.Columns(); got != "s.id, s.name, s.tags, s.created_at" {
		t.Errorf("Columns() = %q", got)
	}
	if got := p.From(); got != p.Table() {
		t.Errorf("From() = %q, want table only", got)
	}

	tests := []struct {
		viewName string
		want     string
	}{
		{"Name", "s.name"},
		{"CreatedAt", "s.created_at"},
		{"unknown", "unknown"},
	}
	for _, tt := range tests {
		if got := p.Column(tt.viewName); got != tt.want {
			t.Errorf("Column(%q) = %q, want %q", tt.viewName, got, tt.want)
		}
	}
}

func TestProjectionMapJoin(t *testing.T) {
	p := joinedProjection()

	if got := p.Column("StyleName"); got != "s.name" {
		t.Errorf("Column(StyleName) = %q, want s.name", got)
	}
	if got := p.Column("Title"); got != "p.title" {
		t.Errorf("Column(Title) = %q, want p.title", got)
	}
	if got := p.Alias(); got != "p" {
		t.Errorf("Alias() = %q, want base alias p", got)
	}

	want := "public.prompts p LEFT JOIN public.style_profiles s ON s.id = p.style_profile_id"
	if got := p.From(); got != want {
		t.Errorf("From() = %q, want %q", got, want)
	}

	sql, args := query.NewBuilder(p).BuildSingle("ID", "x")
	wantSQL := "SELECT p.id, p.title, s.name FROM " + want + " WHERE p.id = $1"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 || args[0] != "x" {
		t.Errorf("args = %v", args)
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{"empty string", "", nil},
		{"single descending", "-CreatedAt", []query.SortField{{Field: "CreatedAt", Descending: true}}},
		{"mixed with spaces", " Name , -CreatedAt ", []query.SortField{{Field: "Name"}, {Field: "CreatedAt", Descending: true}}},
		{"empty parts skipped", "Name,,Tags", []query.SortField{{Field: "Name"}, {Field: "Tags"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuilderQueries(t *testing.T) {
	tests := []struct {
		name     string
		build    func(*query.Builder) (string, []any)
		wantSQL  string
		wantArgs int
	}{
		{
			name:    "build with default sort",
			build:   func(b *query.Builder) (string, []any) { return b.Build() },
			wantSQL: "SELECT s.id, s.name, s.tags, s.created_at FROM public.style_profiles s ORDER BY s.name ASC",
		},
		{
			name:    "count ignores sort",
			build:   func(b *query.Builder) (string, []any) { return b.BuildCount() },
			wantSQL: "SELECT COUNT(*) FROM public.style_profiles s",
		},
		{
			name:    "page",
			build:   func(b *query.Builder) (string, []any) { return b.BuildPage(3, 10) },
			wantSQL: "SELECT s.id, s.name, s.tags, s.created_at FROM public.style_profiles s ORDER BY s.name ASC LIMIT 10 OFFSET 20",
		},
		{
			name: "overlap and contains",
			build: func(b *query.Builder) (string, []any) {
				return b.WhereContains("Name", ptr("noir")).WhereOverlaps("Tags", []string{"city", "rain"}).BuildCount()
			},
			wantSQL:  "SELECT COUNT(*) FROM public.style_profiles s WHERE s.name ILIKE $1 AND s.tags && $2",
			wantArgs: 2,
		},
		{
			name: "empty overlap skipped",
			build: func(b *query.Builder) (string, []any) {
				return b.WhereOverlaps("Tags", nil).WhereContains("Name", ptr("")).BuildCount()
			},
			wantSQL: "SELECT COUNT(*) FROM public.style_profiles s",
		},
		{
			name: "search across fields",
			build: func(b *query.Builder) (string, []any) {
				return b.WhereSearch(ptr("x"), "Name", "Tags").BuildCount()
			},
			wantSQL:  "SELECT COUNT(*) FROM public.style_profiles s WHERE (s.name ILIKE $1 OR s.tags ILIKE $2)",
			wantArgs: 2,
		},
		{
			name: "nil equals skipped, nullable emits IS NULL",
			build: func(b *query.Builder) (string, []any) {
				var flag *bool
				return b.WhereEquals("ID", flag).WhereNullable("CreatedAt", nil).BuildCount()
			},
			wantSQL: "SELECT COUNT(*) FROM public.style_profiles s WHERE s.created_at IS NULL",
		},
		{
			name: "explicit order overrides default",
			build: func(b *query.Builder) (string, []any) {
				return b.OrderByFields([]query.SortField{{Field: "CreatedAt", Descending: true}}).Build()
			},
			wantSQL: "SELECT s.id, s.name, s.tags, s.created_at FROM public.style_profiles s ORDER BY s.created_at DESC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := query.NewBuilder(testProjection(), query.SortField{Field: "Name"})
			sql, args := tt.build(b)
			if sql != tt.wantSQL {
				t.Errorf("sql = %q\nwant  %q", sql, tt.wantSQL)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("args = %v, want %d", args, tt.wantArgs)
			}
		})
	}
}

func TestBuilderWhereIn(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).
		WhereIn("ID", []any{"a", "b"}).
		WhereEquals("Name", ptr("n")).
		BuildCount()

	want := "SELECT COUNT(*) FROM public.style_profiles s WHERE s.id IN ($1, $2) AND s.name = $3"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 3 || args[0] != "a" || args[1] != "b" {
		t.Errorf("args = %v, want [a b n]", args)
	}
}

func TestBuilderSortResolution(t *testing.T) {
	tests := []struct {
		name string
		sort string
		want string
	}{
		{"view name", "-CreatedAt", " ORDER BY s.created_at DESC"},
		{"column name", "created_at,name", " ORDER BY s.created_at ASC, s.name ASC"},
		{"case-insensitive view name", "-createdat", " ORDER BY s.created_at DESC"},
		{"unknown fields dropped", "name;drop table x,-CreatedAt", " ORDER BY s.created_at DESC"},
		{"all unknown falls back to default", "bogus", " ORDER BY s.name ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, _ := query.NewBuilder(testProjection(), query.SortField{Field: "Name"}).
				OrderByFields(query.ParseSortFields(tt.sort)).
				Build()
			if !strings.HasSuffix(sql, tt.want) {
				t.Errorf("sql = %q, want suffix %q", sql, tt.want)
			}
		})
	}
}

func TestBuilderEscapesLikeWildcards(t *testing.T) {
	_, args := query.NewBuilder(testProjection()).
		WhereContains("Name", ptr(`50%_off\`)).
		WhereSearch(ptr("a_b"), "Name").
		BuildCount()

	want := []any{`%50\%\_off\\%`, `%a\_b%`}
	if len(args) != len(want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}

func TestProjectionLookup(t *testing.T) {
	p := joinedProjection()

	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"StyleName", "s.name", true},
		{"title", "p.title", true},
		{"name", "s.name", true},
		{"missing", "", false},
	}
	for _, tt := range tests {
		got, ok := p.Lookup(tt.name)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Lookup(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}
