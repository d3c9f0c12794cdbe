package diff

import (
	"math/rand"
	"testing"

	. "gopkg.in/check.v1"
)

func Test(t *testing.T) { TestingT(t) }

type EditSuite struct{}

var _ = Suite(&EditSuite{})

func (s *EditSuite) TestActionString(c *C) {
	c.Assert(Insert.String(), Equals, "Insert")
	c.Assert(Delete.String(), Equals, "Delete")
	c.Assert(Replace.String(), Equals, "Replace")
	c.Assert(func() { _ = Action(42).String() }, PanicMatches, "unsupported action: 42")
}

func (s *EditSuite) TestEditString(c *C) {
	c.Assert(Edit{Action: Delete, DestIndex: 2}.String(), Equals, "<Delete 2>")
	c.Assert(Edit{Action: Insert, DestIndex: 1, SourceIndex: 3}.String(), Equals, "<Insert 1 from 3>")
}

func (s *EditSuite) TestSortEdits(c *C) {
	edits := SortEdits([]Edit{
		{Action: Insert, DestIndex: 1},
		{Action: Delete, DestIndex: 0},
		{Action: Replace, DestIndex: 3},
		{Action: Replace, DestIndex: 1},
		{Action: Delete, DestIndex: 1},
		{Action: Insert, DestIndex: 0},
	})

	c.Assert(edits, DeepEquals, []Edit{
		{Action: Replace, DestIndex: 1},
		{Action: Replace, DestIndex: 3},
		{Action: Insert, DestIndex: 1},
		{Action: Insert, DestIndex: 0},
		{Action: Delete, DestIndex: 1},
		{Action: Delete, DestIndex: 0},
	})
}

func (s *EditSuite) TestSortEditsTwice(c *C) {
	dest := []string{"x", "y"}
	source := []string{"n", "x"}

	edits := Edits(dest, source)
	c.Assert(edits, DeepEquals, []Edit{
		{Action: Insert, DestIndex: 0, SourceIndex: 0},
		{Action: Delete, DestIndex: 2},
	})

	sorted := SortEdits(edits)
	c.Assert(sorted, DeepEquals, edits)
	c.Assert(ApplyEdits(dest, source, sorted), DeepEquals, source)
}

func (s *EditSuite) TestRebase(c *C) {
	edits := rebase([]Edit{
		{Action: Insert, DestIndex: 2},
		{Action: Insert, DestIndex: 0},
		{Action: Delete, DestIndex: 3},
		{Action: Delete, DestIndex: 1},
	})

	c.Assert(edits, DeepEquals, []Edit{
		{Action: Insert, DestIndex: 2},
		{Action: Insert, DestIndex: 0},
		{Action: Delete, DestIndex: 5},
		{Action: Delete, DestIndex: 2},
	})
}

func (s *EditSuite) TestSortEditsSameInsertIndex(c *C) {
	edits := SortEdits([]Edit{
		{Action: Insert, DestIndex: 2, SourceIndex: 2},
		{Action: Insert, DestIndex: 2, SourceIndex: 3},
	})

	c.Assert(edits, DeepEquals, []Edit{
		{Action: Insert, DestIndex: 2, SourceIndex: 3},
		{Action: Insert, DestIndex: 2, SourceIndex: 2},
	})
}

func (s *EditSuite) check(c *C, dest, source []uint64, n int) []Edit {
	edits := Edits(dest, source)
	c.Assert(edits, HasLen, n)

	got := ApplyEdits(dest, source, edits)
	c.Assert(got, HasLen, len(source))
	for i := range source {
		c.Assert(got[i], Equals, source[i])
	}

	return edits
}

func (s *EditSuite) TestIdentical(c *C) {
	s.check(c, []uint64{1, 2, 3}, []uint64{1, 2, 3}, 0)
}

func (s *EditSuite) TestReplaceOne(c *C) {
	edits := s.check(c, []uint64{1, 2, 3, 4}, []uint64{1, 2, 3, 5}, 1)
	c.Assert(edits[0], Equals, Edit{Action: Replace, DestIndex: 3, SourceIndex: 3})
}

func (s *EditSuite) TestInsertOne(c *C) {
	edits := s.check(c, []uint64{1, 2, 3, 4}, []uint64{1, 2, 3, 6, 4}, 1)
	c.Assert(edits[0], Equals, Edit{Action: Insert, DestIndex: 3, SourceIndex: 3})
}

func (s *EditSuite) TestInsertTwo(c *C) {
	s.check(c, []uint64{1, 2, 3, 4}, []uint64{1, 2, 5, 3, 6, 4}, 2)
}

func (s *EditSuite) TestDeleteOne(c *C) {
	edits := s.check(c, []uint64{1, 2, 3, 4}, []uint64{1, 3, 4}, 1)
	c.Assert(edits[0], Equals, Edit{Action: Delete, DestIndex: 1})
}

func (s *EditSuite) TestDeleteTwo(c *C) {
	s.check(c, []uint64{1, 2, 3, 4}, []uint64{1, 4}, 2)
}

func (s *EditSuite) TestDeleteReplace(c *C) {
	s.check(c, []uint64{1, 2, 3, 4}, []uint64{1, 3, 3}, 2)
}

func (s *EditSuite) TestDeleteReplaceTwo(c *C) {
	s.check(c, []uint64{1, 2, 3, 4}, []uint64{1, 5}, 3)
}

func (s *EditSuite) TestFromEmpty(c *C) {
	s.check(c, nil, []uint64{1, 2}, 2)
	s.check(c, []uint64{1, 2}, nil, 2)
}

func (s *EditSuite) TestInsertBeforeDelete(c *C) {
	edits := s.check(c, []uint64{2, 1}, []uint64{3, 2}, 2)
	c.Assert(edits, DeepEquals, []Edit{
		{Action: Insert, DestIndex: 0, SourceIndex: 0},
		{Action: Delete, DestIndex: 2},
	})
}

func (s *EditSuite) TestStrings(c *C) {
	dest := []string{"foo", "a", "bar"}
	source := []string{"foo", "b", "bar"}
	edits := Edits(dest, source)
	c.Assert(edits, DeepEquals, []Edit{{Action: Replace, DestIndex: 1, SourceIndex: 1}})
}

func (s *EditSuite) TestRandomSequences(c *C) {
	r := rand.New(rand.NewSource(42))
	gen := func() []uint64 {
		ret := make([]uint64, r.Intn(8))
		for i := range ret {
			ret[i] = uint64(r.Intn(4))
		}

		return ret
	}

	for i := 0; i < 500; i++ {
		dest, source := gen(), gen()
		edits := Edits(dest, source)
		c.Assert(SortEdits(edits), DeepEquals, edits, Commentf("dest %v source %v", dest, source))

		got := ApplyEdits(dest, source, edits)
		if len(source) == 0 {
			c.Assert(got, HasLen, 0)
			continue
		}

		c.Assert(got, DeepEquals, source, Commentf("dest %v source %v", dest, source))
	}
}
