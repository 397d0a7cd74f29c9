package service

import "errors"

// errMalformedReply marks a completion response that violates the reply
// contract. Treated like any other completion-service failure: logged,
// generic notice to the user, no assistant turn recorded.
var errMalformedReply = errors.New("malformed completion reply")
