package diff

import (
	"fmt"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/suite"
)

type DiffSuite struct {
	suite.Suite
}

func TestDiffSuite(t *testing.T) {
	suite.Run(t, new(DiffSuite))
}

var roundTrips = [...]struct {
	src, dst string
}{
	{"", ""},
	{"a\n", "a\n"},
	{"", "a\n"},
	{"a\n", ""},
	{"a", "a\n"},
	{"root:\n  - a\n  - b\n", "root:\n  - a\n  - c\n  - b\n"},
	{"root:\n  - a:\n      - x\n", "root:\n  - a\n"},
}

func (s *DiffSuite) TestSrcDst() {
	for i, t := range roundTrips {
		diffs := Do(t.src, t.dst)
		s.Equal(t.src, Src(diffs), fmt.Sprintf("case %d", i))
		s.Equal(t.dst, Dst(diffs), fmt.Sprintf("case %d", i))
	}
}

func (s *DiffSuite) TestDo() {
	s.Equal([]diffmatchpatch.Diff{
		{Type: diffmatchpatch.DiffInsert, Text: "abc\ncba"},
	}, Do("", "abc\ncba"))

	s.Equal([]diffmatchpatch.Diff{
		{Type: diffmatchpatch.DiffDelete, Text: "abc\ncba"},
	}, Do("abc\ncba", ""))
}

func (s *DiffSuite) TestUnified() {
	s.Equal(" a\n-b\n+c\n", Unified(Do("a\nb\n", "a\nc\n")))
	s.Equal("+x\n+y\n", Unified(Do("", "x\ny")))
	s.Equal("", Unified(nil))
}
