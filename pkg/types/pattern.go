package domain

// PatternData holds the visual statistics of one pattern of one item.
// Percentages are in [0, 100]; contour values count distinct regions.
type PatternData struct {
	PlaysideBlue          float64 `json:"playside_blue"`
	PlaysidePurple        float64 `json:"playside_purple"`
	PlaysideGold          float64 `json:"playside_gold"`
	PlaysideContourBlue   int     `json:"playside_contour_blue"`
	PlaysideContourPurple int     `json:"playside_contour_purple"`
	BacksideBlue          float64 `json:"backside_blue"`
	BacksidePurple        float64 `json:"backside_purple"`
	BacksideGold          float64 `json:"backside_gold"`
	BacksideContourBlue   int     `json:"backside_contour_blue"`
	BacksideContourPurple int     `json:"backside_contour_purple"`

	// Optional
	Pattern     *int                    `json:"pattern,omitempty"`
	Quantity    *int                    `json:"quantity,omitempty"`
	Screenshots *PatternDataScreenshots `json:"screenshots,omitempty"`
	Extra       *PatternDataExtra       `json:"extra,omitempty"`
}

// PatternDataScreenshots links to example images of a pattern.
type PatternDataScreenshots struct {
	CSBlueGemScreenshot string `json:"csbluegem_screenshot"`
	AQOiled             string `json:"aq_oiled"`
}

// PatternDataExtra holds related links for a pattern.
type PatternDataExtra struct {
	SimilarPlayside string `json:"similar_playside"`
	SimilarBackside string `json:"similar_backside"`
	CSFloatLink     string `json:"csfloat_link"`
	Search          string `json:"search"`
}
