package boss

// Payload is the table data served for one page endpoint. Every field may
// be missing upstream and is then left at its zero value.
type Payload struct {
	Title        string     `json:"title"`
	Headers      []string   `json:"headers"`
	Rows         [][]string `json:"rows"`
	LastUpdated  string     `json:"last_updated,omitempty"`
	HeaderImages []string   `json:"header_images,omitempty"`
	BodyImages   [][]string `json:"body_images,omitempty"`
}

// HasImages reports whether any image reference was supplied
func (p *Payload) HasImages() bool {
	for _, name := range p.HeaderImages {
		if name != "" {
			return true
		}
	}
	for _, row := range p.BodyImages {
		for _, name := range row {
			if name != "" {
				return true
			}
		}
	}
	return false
}
