package submission

import "errors"

// ErrUnauthorized indicates the request carried no lister identity.
// The workflow trusts the caller to have resolved identity; it only rejects
// its absence.
var ErrUnauthorized = errors.New("must be logged in to list a cat")
