// internal/app/system/limits/limits.go
package limits

// Request body size limits for form posts.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxCategoryFormSize covers the category form, whose description is
	// free-form HTML.
	MaxCategoryFormSize = 256 << 10 // 256 KB

	// MaxWorkflowFormSize covers the workflow confirmation form (notes,
	// condition, dates).
	MaxWorkflowFormSize = 64 << 10 // 64 KB
)
