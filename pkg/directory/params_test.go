package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/unitmap/pkg/resolver"
	"github.com/agentstation/unitmap/pkg/units"
)

func TestBuild(t *testing.T) {
	b := NewParamBuilder(resolver.New(units.NewTestCatalog()))

	tests := []struct {
		name      string
		query     Query
		want      Params
		resolved  bool
		canonical string
	}{
		{
			name:  "defaults",
			query: Query{},
			want:  Params{Division: "All", Department: "All"},
		},
		{
			name:  "explicit all is not resolved",
			query: Query{Faculty: "all", Name: " Tan "},
			want:  Params{Division: "All", Department: "All", Name: "Tan"},
		},
		{
			name:      "resolved faculty uses acronym",
			query:     Query{Faculty: "lkc fec", Expertise: "robotics"},
			want:      Params{Division: "LKC FES", Department: "All", Expertise: "robotics"},
			resolved:  true,
			canonical: "Lee Kong Chian Faculty of Engineering and Science",
		},
		{
			name:      "resolved faculty without acronym uses canonical",
			query:     Query{Faculty: "human resource", Department: "Payroll"},
			want:      Params{Division: "Division of Human Resource", Department: "Payroll"},
			resolved:  true,
			canonical: "Division of Human Resource",
		},
		{
			name:      "unresolved faculty passes through",
			query:     Query{Faculty: "Zzyzx Qqq"},
			want:      Params{Division: "Zzyzx Qqq", Department: "All"},
			resolved:  true,
			canonical: "Zzyzx Qqq",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, res := b.Build(tt.query)
			assert.Equal(t, tt.want, got)
			if !tt.resolved {
				assert.Nil(t, res.Faculty)
				return
			}
			require.NotNil(t, res.Faculty)
			assert.Equal(t, tt.canonical, res.Faculty.Canonical)
		})
	}
}

func TestBuildWithoutResolver(t *testing.T) {
	p, res := NewParamBuilder(nil).Build(Query{Faculty: "FICT"})
	assert.Equal(t, "FICT", p.Division)
	assert.Nil(t, res.Faculty)
}

func TestParamsValues(t *testing.T) {
	p := Params{Division: "LKC FES", Department: "All", Name: "Tan", Expertise: "robotics"}

	v := p.Values()
	assert.Equal(t, []string{"LKC FES"}, v["searchDiv"])
	assert.Equal(t, []string{"All"}, v["searchDept"])
	assert.Equal(t, []string{"Tan", "robotics"}, v["searchName"])
	assert.Equal(t, "searchDept=All&searchDiv=LKC+FES&searchName=Tan&searchName=robotics", p.Encode())

	empty := Params{Division: "All", Department: "All"}.Values()
	assert.Equal(t, []string{"", ""}, empty["searchName"])
}
