package errs

import (
	"errors"
	"strings"

	"github.com/go-pkgz/lgr"
)

// Context carries request details attached to classification logs.
type Context struct {
	Operation string
	Variables map[string]any
	IP        string
	UserAgent string
}

// Classifier maps arbitrary failures into the fixed error taxonomy.
// In dev mode unexpected errors keep their original message, in production
// the message is replaced with a generic one.
type Classifier struct {
	dev bool
}

// NewClassifier creates a classifier, dev retains raw messages for
// unclassified errors
func NewClassifier(dev bool) *Classifier {
	return &Classifier{dev: dev}
}

// Classify normalizes err into a classified *Error and logs it.
// Already classified errors pass through unchanged, making the call
// idempotent. The mapping is ordered and first-match-wins over the
// lower-cased error text.
func (c *Classifier) Classify(err error, reqCtx Context) *Error {
	classified := c.classify(err)
	c.logError(classified, reqCtx)
	return classified
}

func (c *Classifier) classify(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	msg := strings.ToLower(err.Error())
	switch {
	case contains(msg, "jwt", "token"):
		return NewUnauthorized("invalid or expired token")
	case contains(msg, "permission", "access", "insufficient"):
		return NewForbidden("insufficient permissions for this operation")
	case contains(msg, "rate limit", "too many requests"):
		return NewRateLimit(0)
	case contains(msg, "not found", "does not exist"):
		return NewNotFound("resource", "")
	case contains(msg, "validation", "invalid"):
		return NewValidation(err.Error(), "")
	case contains(msg, "service unavailable", "maintenance"):
		return NewServiceUnavailable("")
	case contains(msg, "bad gateway", "upstream"):
		return NewBadGateway("")
	}

	if c.dev {
		return NewInternal(err.Error())
	}
	return NewInternal("")
}

// logError emits a structured record for the classified error. It must never
// fail the response path, logging only.
func (c *Classifier) logError(e *Error, reqCtx Context) {
	level := "[WARN]"
	if e.Code == CodeInternal {
		level = "[ERROR]"
	}
	lgr.Printf("%s %s: %s, op:%s, ip:%s, vars:%v", level, e.Code, e.Message,
		reqCtx.Operation, reqCtx.IP, reqCtx.Variables)
}

func contains(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
