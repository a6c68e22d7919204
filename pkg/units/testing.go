package units

// NewTestCatalog builds a small catalog for tests in other packages.
func NewTestCatalog(records ...Unit) *Catalog {
	if len(records) == 0 {
		records = []Unit{
			{Canonical: "Centre for Cancer Research", Acronym: "CCR", Type: TypeCentre, Aliases: []string{"Cancer Research Centre"}},
			{Canonical: "Lee Kong Chian Faculty of Engineering and Science", Acronym: "LKC FES", Type: TypeFaculty, Aliases: []string{"Faculty of Engineering and Science"}},
			{Canonical: "Faculty of Information and Communication Technology", Acronym: "FICT", Type: TypeFaculty},
			{Canonical: "Division of Human Resource", Acronym: "NULL", Type: TypeDivision, Aliases: []string{"Human Resource"}},
		}
	}
	return New(records)
}
