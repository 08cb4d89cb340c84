package runtime

import "errors"

var ErrExternalTool = errors.New("external tool failed")
