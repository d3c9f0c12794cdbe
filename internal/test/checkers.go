// Package test holds the gopkg.in/check.v1 checkers shared by the tests.
package test

import (
	"errors"
	"fmt"

	check "gopkg.in/check.v1"
)

type errorIsChecker struct {
	*check.CheckerInfo
}

// ErrorIs checks that the obtained error matches the expected one with
// errors.Is, so wrapped errors are accepted.
//
//	c.Assert(err, test.ErrorIs, ErrEmptyReader)
var ErrorIs check.Checker = errorIsChecker{
	&check.CheckerInfo{
		Name:   "ErrorIs",
		Params: []string{"obtained", "expected"},
	},
}

func (e errorIsChecker) Check(params []interface{}, names []string) (bool, string) {
	obtained, ok := params[0].(error)
	if !ok {
		return false, "obtained is not an error"
	}

	expected, ok := params[1].(error)
	if !ok {
		return false, "expected is not an error"
	}

	if !errors.Is(obtained, expected) {
		return false, fmt.Sprintf("obtained: %+v expected: %+v", obtained, expected)
	}

	return true, ""
}
