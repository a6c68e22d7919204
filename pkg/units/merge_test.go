package units

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestInferType(t *testing.T) {
	tests := map[string]string{
		"Faculty of Science":                            TypeFaculty,
		"Institute of Postgraduate Studies and Research": TypeInstitute,
		"Centre for Cancer Research":                    TypeCentre,
		"Division of Finance":                           TypeDivision,
		"Department of Safety and Security":             TypeDepartment,
		"Office of the President":                       TypeOffice,
		"Library":                                       TypeLibrary,
		"Chancellery":                                   TypeChancellery,
		"Faculty Research Centre":                       TypeFaculty,
		"Tunku Abdul Rahman Hall":                       TypeOrganisation,
	}
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, InferType(name))
		})
	}
}

func TestMerge(t *testing.T) {
	existing := []Unit{
		{Canonical: "Centre for Cancer Research", Acronym: "NULL", Type: TypeUnknown},
		{Canonical: "Faculty of Science", Acronym: "FSc", Type: TypeFaculty, Aliases: []string{"FSc"}},
	}
	incoming := []Unit{
		{Canonical: "Centre For Cancer Research", Acronym: "CCR", Type: TypeCentre, Aliases: []string{"Centre For Cancer Research", "CCR"}},
		{Canonical: "Faculty of Science (Kampar)", Acronym: "fsc", Type: TypeFaculty},
		{Canonical: "Library", Acronym: "LIB", Type: TypeLibrary, Aliases: []string{"Library", "LIB"}},
	}

	merged, stats := Merge(existing, incoming)

	want := []Unit{
		{Canonical: "Centre for Cancer Research", Acronym: "CCR", Type: TypeCentre, Aliases: []string{"Centre For Cancer Research", "CCR"}},
		{Canonical: "Faculty of Science", Acronym: "FSc", Type: TypeFaculty, Aliases: []string{"FSc", "Faculty of Science (Kampar)", "fsc"}},
		{Canonical: "Library", Acronym: "LIB", Type: TypeLibrary, Aliases: []string{"Library", "LIB"}},
	}
	if diff := cmp.Diff(want, merged); diff != "" {
		t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, MergeStats{Processed: 3, Added: 1, Updated: 1}, stats)

	assert.Equal(t, "NULL", existing[0].Acronym, "existing slice must not be modified")
	assert.Equal(t, []string{"FSc"}, existing[1].Aliases)
}

func TestMergeKeepsSpecificType(t *testing.T) {
	merged, stats := Merge(
		[]Unit{{Canonical: "Student Affairs", Type: TypeDivision}},
		[]Unit{{Canonical: "student affairs", Acronym: "DSA", Type: TypeOrganisation}},
	)
	assert.Equal(t, TypeDivision, merged[0].Type)
	assert.Equal(t, "DSA", merged[0].Acronym)
	assert.Equal(t, 1, stats.Updated)
}

func TestMergeDeduplicatesIncoming(t *testing.T) {
	merged, stats := Merge(nil, []Unit{
		{Canonical: "Library", Acronym: "LIB"},
		{Canonical: "LIBRARY", Acronym: "LIB"},
	})
	assert.Len(t, merged, 1)
	assert.Equal(t, MergeStats{Processed: 2, Added: 1}, stats)
	assert.Equal(t, []string{"LIBRARY", "LIB"}, merged[0].Aliases)
}
