package model

// Mapping describes where the engine columns live in an uploaded table.
type Mapping struct {
	BrandKey  string `json:"brandKey"`
	NameKey   string `json:"nameKey"`
	ColorKey  string `json:"colorKey"`
	SizeKey   string `json:"sizeKey"`
	QtyKey    string `json:"qtyKey"`
	AmountKey string `json:"amountKey"` // order: line total; catalog: unit wholesale price
	HeaderRow int    `json:"headerRow"` // 1-based
}

// Row is one line of either dataset. Idx is the row index within its
// dataset and is the line's identity everywhere in the engine.
type Row struct {
	Idx    int     `json:"idx"`
	Brand  string  `json:"brand"`
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Size   string  `json:"size"`
	Qty    int     `json:"qty"`
	Amount float64 `json:"amount"`

	// normalized columns, computed once per dataset load
	BrandNorm  string   `json:"-"`
	NameNorm   string   `json:"-"`
	ColorNorm  string   `json:"-"`
	SizeTokens []string `json:"-"` // sorted unique canonical tokens
}

// Breakdown holds the per-component scores behind a confidence value.
// Brand/color/size are fixed at 100 once their exact gates pass.
type Breakdown struct {
	Brand float64 `json:"brand"`
	Name  float64 `json:"name"`
	Color float64 `json:"color"`
	Size  float64 `json:"size"`
}

// MatchResult is emitted once per matched unit: a match of quantity N
// produces N instances referencing the same pair of rows.
type MatchResult struct {
	OrderIdx   int       `json:"orderIdx"`
	CatalogIdx int       `json:"catalogIdx"`
	Confidence float64   `json:"confidence"`
	Detail     Breakdown `json:"detail"`
}

type Distribution struct {
	High   int `json:"high"`   // >= 90
	Medium int `json:"medium"` // [70, 90)
	Low    int `json:"low"`    // < 70
}

type Report struct {
	Total             int          `json:"total"`
	AverageConfidence float64      `json:"averageConfidence"`
	Distribution      Distribution `json:"distribution"`
}

// Residual is a line that kept unallocated quantity after the run.
type Residual struct {
	Idx       int    `json:"idx"`
	Name      string `json:"name"`
	Remaining int    `json:"remaining"`
}

type Result struct {
	Matches          []MatchResult `json:"matches"`
	Report           Report        `json:"report"`
	UnmatchedOrders  []Residual    `json:"unmatchedOrders"`
	UnmatchedCatalog []Residual    `json:"unmatchedCatalog"`

	// echo of what was actually applied, for UI and curl debugging
	Weights    Weights `json:"weights"`
	NameCutoff float64 `json:"nameCutoff"`
	MapOrder   Mapping `json:"mapOrder"`
	MapCatalog Mapping `json:"mapCatalog"`
}

type Weights struct {
	Brand float64 `toml:"brand" json:"brand"`
	Name  float64 `toml:"name" json:"name"`
	Color float64 `toml:"color" json:"color"`
	Size  float64 `toml:"size" json:"size"`
}

// SynonymGroup collapses every variant to its canonical label. Groups are
// a slice, not a map: for name synonyms the application order of
// overlapping variants follows configuration order, and that order is a
// contract, not an accident.
type SynonymGroup struct {
	Canon    string   `toml:"canon" json:"canon"`
	Variants []string `toml:"variants" json:"variants"`
}

// AnnotateColors are RRGGBB fills for the annotated workbooks.
type AnnotateColors struct {
	Matched  string `toml:"matched" json:"matched"`   // matched rows
	Checked  string `toml:"checked" json:"checked"`   // matched rows already marked checked in the sheet
	Mismatch string `toml:"mismatch" json:"mismatch"` // price mismatch cells
}

// MatchConfig is the full engine configuration. It is plain data threaded
// through the normalizer/scorer at construction time, never global state.
type MatchConfig struct {
	NameSynonyms []SynonymGroup    `toml:"name_synonyms" json:"name_synonyms"`
	SizeSynonyms []SynonymGroup    `toml:"size_synonyms" json:"size_synonyms"`
	ColorAliases map[string]string `toml:"color_aliases" json:"color_aliases"`
	Weights      Weights           `toml:"weights" json:"weights"`
	NameCutoff   float64           `toml:"name_cutoff" json:"name_cutoff"`
	Colors       AnnotateColors    `toml:"colors" json:"colors"`
}

// DefaultMatchConfig returns the built-in tables used when no config file
// is supplied. Weights need not sum to 1.0: confidence is a direct
// weighted sum, not a normalized average.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		NameSynonyms: []SynonymGroup{
			{Canon: "맨투맨", Variants: []string{"mtm", "맨투맨티"}},
			{Canon: "티셔츠", Variants: []string{"tshirts", "tshirt", "tee", "티셔쓰"}},
			{Canon: "원피스", Variants: []string{"onepiece", "ops"}},
			{Canon: "레깅스", Variants: []string{"leggings", "래깅스"}},
			{Canon: "가디건", Variants: []string{"cardigan", "카디건"}},
		},
		SizeSynonyms: []SynonymGroup{
			{Canon: "xs", Variants: []string{"엑스스몰", "x스몰"}},
			{Canon: "s", Variants: []string{"small", "스몰"}},
			{Canon: "m", Variants: []string{"medium", "미디움", "미듐"}},
			{Canon: "l", Variants: []string{"large", "라지"}},
			{Canon: "xl", Variants: []string{"엑스라지"}},
			{Canon: "xxl", Variants: []string{"2xl", "투엑스라지"}},
			{Canon: "free", Variants: []string{"f", "fr", "프리"}},
		},
		ColorAliases: map[string]string{
			"검정": "black", "검은색": "black", "블랙": "black",
			"흰색": "white", "하양": "white", "화이트": "white",
			"남색": "navy", "곤색": "navy", "네이비": "navy",
			"빨강": "red", "레드": "red",
			"파랑": "blue", "블루": "blue",
			"노랑": "yellow", "옐로우": "yellow",
			"초록": "green", "그린": "green",
			"회색": "gray", "그레이": "gray", "grey": "gray",
			"분홍": "pink", "핑크": "pink",
			"베이지": "beige", "카키": "khaki", "아이보리": "ivory",
			"하늘": "skyblue", "소라": "skyblue",
		},
		Weights:    Weights{Brand: 0.25, Name: 0.35, Color: 0.25, Size: 0.15},
		NameCutoff: 70,
		Colors: AnnotateColors{
			Matched:  "FFFF00",
			Checked:  "00FFFF",
			Mismatch: "FF0000",
		},
	}
}
