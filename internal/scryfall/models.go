package scryfall

// BulkData describes one downloadable bulk dataset.
type BulkData struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	DownloadURI string `json:"download_uri"`
	UpdatedAt   string `json:"updated_at"`
	Size        int64  `json:"size"`
}

// BulkDataList is the /bulk-data response.
type BulkDataList struct {
	Object string     `json:"object"`
	Data   []BulkData `json:"data"`
}

// bulkCard is the subset of a bulk-file card object the catalog keeps.
type bulkCard struct {
	Name        string            `json:"name"`
	ManaCost    string            `json:"mana_cost"`
	CMC         float64           `json:"cmc"`
	TypeLine    string            `json:"type_line"`
	ScryfallURI string            `json:"scryfall_uri"`
	Legalities  map[string]string `json:"legalities"`
	CardFaces   []bulkCardFace    `json:"card_faces,omitempty"`
}

// bulkCardFace carries the front-face fields of multi-faced cards, whose
// top-level mana cost and type line may be empty.
type bulkCardFace struct {
	Name     string `json:"name"`
	ManaCost string `json:"mana_cost"`
	TypeLine string `json:"type_line"`
}
