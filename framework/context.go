package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Context is the harness's handle on one executing test. Test actions use it to report
// failures; it implements the Errorf/FailNow pair expected by assert and require.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	skipReason  string
	errors      []error
}

type environment struct {
	results    Results
	testLogger TestLogger
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		r := recover()
		if r == nil || (r == c && c.skipReason != "") {
			return
		}
		c.failed = true
		var addError error
		if r == c {
			if len(c.errors) == 0 {
				addError = errors.New("test failed with no failure message")
			}
		} else {
			addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
		}
		if addError != nil {
			c.errors = append(c.errors, addError)
			c.env.testLogger.TestError(c.id, addError)
		}
	}()

	action(c)
}

func (c *Context) ID() TestID {
	return c.id
}

func (c *Context) Failed() bool {
	return c.failed
}

func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

func (c *Context) FailNow() {
	panic(c)
}

// Skip stops the test and reports it as skipped, unless it has already failed.
func (c *Context) Skip(reason string) {
	if reason == "" {
		reason = skipReasonSelf
	}
	c.skipReason = reason
	panic(c)
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
