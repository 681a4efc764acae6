package audiotag

import (
	"github.com/simonhull/audiotag/internal/types"
)

// Tags is the format-agnostic view of a file's metadata.
type Tags = types.Tags
