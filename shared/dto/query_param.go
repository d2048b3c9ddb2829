package dto

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams carries the ordering applied to list queries. Reads are always
// full scans; there is no pagination surface.
type QueryParams struct {
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`

	// TieBreaker orders rows sharing the same SortBy value, typically the
	// primary key. Empty disables it.
	TieBreaker string `json:"-"`
}
