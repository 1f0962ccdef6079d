package requests

// ParseOptions controls a single parse call.
type ParseOptions struct {
	UseCache    bool `json:"use_cache,omitempty"`    // Consult and fill the result cache
	NilDefaults bool `json:"nil_defaults,omitempty"` // Leave unmatched fields null instead of ""
}

// ParseNameRequest asks for one person name to be parsed. Text is a pointer
// so that a missing field can be told apart from a valid empty string.
type ParseNameRequest struct {
	Text    *string      `json:"text" binding:"required"`
	Options ParseOptions `json:"options,omitempty"`
}

// ParseAddressRequest asks for one street address to be parsed.
type ParseAddressRequest struct {
	Text    *string      `json:"text" binding:"required"`
	Options ParseOptions `json:"options,omitempty"`
}

// BatchParseRequest submits a batch job over many inputs of one kind.
type BatchParseRequest struct {
	Kind    string       `json:"kind" binding:"required,oneof=name address"`
	Texts   []string     `json:"texts" binding:"required,min=1,max=20000"`
	Options ParseOptions `json:"options,omitempty"`
}

// ReviewApproveRequest accepts an automatic result under review.
type ReviewApproveRequest struct {
	ReviewerID string `json:"reviewer_id" binding:"required"`
}
