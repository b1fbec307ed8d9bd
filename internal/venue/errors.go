package venue

import "errors"

// ErrInvalidArgument is returned, before any state changes, for malformed
// caller input such as non-positive seat counts or dimensions and empty
// emails or hold ids.  Callers should match it with errors.Is; the returned
// error carries the offending argument in its message.
var ErrInvalidArgument = errors.New("invalid argument")
