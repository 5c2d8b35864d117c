package domain

// SourcePlace is one entry as the external nationwide address directory
// reports it. Its numeric id is internal to the adapter/resolver pair.
type SourcePlace struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SourceProvinceDetail is the province payload carrying its districts.
type SourceProvinceDetail struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Districts []SourcePlace `json:"districts"`
}

// SourceDistrictDetail is the district payload. Villages are a distinct
// directory concept; the resolver merges them into the neighborhood level.
type SourceDistrictDetail struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Neighborhoods []SourcePlace `json:"neighborhoods"`
	Villages      []SourcePlace `json:"villages"`
}
