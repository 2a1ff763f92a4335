// SPDX-License-Identifier: MPL-2.0

package condition

import (
	"testing"

	"github.com/invowk/pkgsurface/pkg/types"

	"github.com/google/go-cmp/cmp"
)

func TestBuild(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		typ         types.ResolutionType
		environment string
		extra       []string
		want        []string
	}{
		{"import in node", types.ResolutionImport, "node", nil, []string{"default", "import", "node"}},
		{"require in node", types.ResolutionRequire, "node", nil, []string{"default", "node", "require"}},
		{"default only", types.ResolutionDefault, "", nil, []string{"default"}},
		{"no type keeps environment", types.ResolutionNone, "deno", nil, []string{"deno"}},
		{"empty type behaves like none", "", "", []string{"browser"}, []string{"browser"}},
		{"extra conditions are merged", types.ResolutionImport, "node", []string{"development", "import"}, []string{"default", "development", "import", "node"}},
		{"nothing at all", types.ResolutionNone, "", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Build(tt.typ, tt.environment, tt.extra...)
			if diff := cmp.Diff(tt.want, got.Sorted()); diff != "" {
				t.Errorf("Build() mismatch (-want +got):\n%s", diff)
			}
			if got.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", got.Len(), len(tt.want))
			}
		})
	}
}

func TestSet_Has(t *testing.T) {
	t.Parallel()

	s := Of("node", "default")
	if !s.Has("node") || !s.Has("default") {
		t.Error("expected node and default to be present")
	}
	if s.Has("import") {
		t.Error("import should not be present")
	}

	var zero Set
	if zero.Has("default") || zero.Len() != 0 {
		t.Error("zero Set should be empty")
	}
}
