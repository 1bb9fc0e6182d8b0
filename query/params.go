package query

// Params carries the raw query inputs exactly as a transport hands them
// over: strings and string slices, possibly absent, possibly malformed.
// Normalization into a well-typed spec happens inside the engine; a bad
// value never fails the request, it degrades to the documented default.
//
// Each element of a list field may itself be a comma-delimited string
// ("North,South"), so callers can pass either a native list or a single
// delimited query parameter.
type Params struct {
	Search string

	Regions           []string
	Genders           []string
	ProductCategories []string
	Tags              []string
	PaymentMethods    []string

	AgeMin string
	AgeMax string

	DateStart string
	DateEnd   string

	SortBy    string
	SortOrder string

	Page     string
	PageSize string
}
