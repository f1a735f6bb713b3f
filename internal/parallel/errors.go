package parallel

import "errors"

// ErrPoolClosed is returned by Run on a closed pool.
var ErrPoolClosed = errors.New("parallel: pool is closed")
