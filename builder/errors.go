package builder

import "fmt"

// EmptyBundleError means the bucket produced no files after ignore rules
// were applied.
type EmptyBundleError struct {
	Bucket string
}

func (e *EmptyBundleError) Error() string {
	return fmt.Sprintf("generated manifest is empty: no files found in %s", e.Bucket)
}
