package internal

import (
	"bytes"
	"sync"
)

// BufferPool holds buffers reused to format strikes.
var BufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 256))
	},
}
