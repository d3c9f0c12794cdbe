package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/go-git/go-arbor/codec/yamltree"
	"github.com/go-git/go-arbor/id"
	"github.com/go-git/go-arbor/utils/trace"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/suite"
)

type CommandSuite struct {
	suite.Suite
	fs  billy.Filesystem
	app *app
}

func TestCommandSuite(t *testing.T) {
	suite.Run(t, new(CommandSuite))
}

func (s *CommandSuite) SetupTest() {
	s.fs = memfs.New()
	s.app = &app{fs: s.fs}
	s.T().Cleanup(func() { trace.SetTarget(0) })

	s.write("dest.yaml", "root:\n  - a\n  - b\n")
	s.write("source.yaml", "root:\n  - a\n  - c:\n      - x\n")
}

func (s *CommandSuite) write(name, content string) {
	s.Require().NoError(util.WriteFile(s.fs, name, []byte(content), 0o644))
}

func (s *CommandSuite) run(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd(s.app)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func (s *CommandSuite) TestDiff() {
	out, err := s.run("diff", "dest.yaml", "source.yaml")
	s.NoError(err)
	s.Contains(out, "<ReplaceNode ")
	s.Contains(out, "<SetChildren ")
	s.NotContains(out, "+++")
}

func (s *CommandSuite) TestDiffIdentical() {
	out, err := s.run("diff", "dest.yaml", "dest.yaml")
	s.NoError(err)
	s.Equal("", out)
}

func (s *CommandSuite) TestDiffText() {
	out, err := s.run("diff", "--text", "dest.yaml", "source.yaml")
	s.NoError(err)
	s.Contains(out, "--- dest.yaml\n+++ source.yaml\n")

	var added, removed bool
	for _, line := range strings.Split(out, "\n") {
		added = added || (strings.HasPrefix(line, "+") && strings.Contains(line, "x"))
		removed = removed || (strings.HasPrefix(line, "-") && strings.Contains(line, "b"))
	}

	s.True(added)
	s.True(removed)
}

func (s *CommandSuite) TestDiffTextFromConfig() {
	s.write("arbor.yaml", "text: true\n")

	out, err := s.run("--config", "arbor.yaml", "diff", "dest.yaml", "source.yaml")
	s.NoError(err)
	s.Contains(out, "+++ source.yaml")

	out, err = s.run("--config", "arbor.yaml", "diff", "--text=false", "dest.yaml", "source.yaml")
	s.NoError(err)
	s.NotContains(out, "+++")
}

func (s *CommandSuite) TestPatch() {
	out, err := s.run("patch", "dest.yaml", "source.yaml")
	s.NoError(err)

	patched, err := yamltree.Decode(strings.NewReader(out), id.NewSequence())
	s.Require().NoError(err)

	source, err := yamltree.Load(s.fs, "source.yaml", id.NewSequence())
	s.Require().NoError(err)
	s.True(patched.Equal(source))
}

func (s *CommandSuite) TestHash() {
	out, err := s.run("hash", "source.yaml")
	s.NoError(err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	s.Len(lines, 4)
	s.Contains(lines[0], "depth:0 index:0 child_index:0")
	s.True(strings.HasSuffix(lines[0], " root"))
	s.Contains(lines[3], "depth:2 index:0 child_index:0")
	s.True(strings.HasSuffix(lines[3], " x"))

	source, err := yamltree.Load(s.fs, "source.yaml", id.NewSequence())
	s.Require().NoError(err)
	s.True(strings.HasPrefix(lines[0], source.String()+" "))
}

func (s *CommandSuite) TestMissingFile() {
	_, err := s.run("hash", "missing.yaml")
	s.Error(err)
}

func (s *CommandSuite) TestWrongArgs() {
	_, err := s.run("diff", "dest.yaml")
	s.Error(err)
}

func (s *CommandSuite) TestConfigKeepsDefaults() {
	s.write("arbor.yaml", "trace: [diff]\n")

	_, err := s.run("--config", "arbor.yaml", "hash", "dest.yaml")
	s.NoError(err)
	s.Equal("sequence", s.app.config.Generator)
	s.Equal([]string{"diff"}, s.app.config.Trace)
	s.False(s.app.config.Text)
	s.True(trace.Diff.Enabled())
	s.False(trace.Patch.Enabled())
}

func (s *CommandSuite) TestConfigUUID() {
	s.write("arbor.yaml", "generator: uuid\n")

	_, err := s.run("--config", "arbor.yaml", "hash", "dest.yaml")
	s.NoError(err)
	s.IsType(id.UUID{}, s.app.gen)
}

func (s *CommandSuite) TestConfigUnknownGenerator() {
	s.write("arbor.yaml", "generator: random\n")

	_, err := s.run("--config", "arbor.yaml", "hash", "dest.yaml")
	s.ErrorIs(err, ErrUnknownGenerator)
}

func (s *CommandSuite) TestDefaultConfig() {
	cfg, err := loadConfig(s.fs, "")
	s.NoError(err)
	s.Equal(defaultConfig, *cfg)
	s.IsType(&id.Sequence{}, cfg.NewGenerator())
}

func (s *CommandSuite) TestDiffMissingSource() {
	_, err := s.run("diff", "dest.yaml", "missing.yaml")
	s.ErrorIs(err, os.ErrNotExist)

	_, err = s.run("patch", "missing.yaml", "source.yaml")
	s.ErrorIs(err, os.ErrNotExist)
}
