package audiotag

import (
	"github.com/simonhull/audiotag/internal/types"
)

// AudioInfo holds technical audio properties.
type AudioInfo = types.AudioInfo
