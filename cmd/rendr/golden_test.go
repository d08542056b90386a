package main

import (
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

// initSite writes the fixtures template into a directory named "site".
func initSite(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "site")
	if _, err := run(t, "init", dir); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestGoldenDiff(t *testing.T) {
	dir := initSite(t)
	out, err := run(t, "diff",
		filepath.Join(dir, "fixtures", "before.yaml"),
		filepath.Join(dir, "fixtures", "after.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	newGoldie(t).Assert(t, "diff_fixtures", []byte(out))
}

func TestGoldenRender(t *testing.T) {
	dir := initSite(t)
	out, err := run(t, "render", "-C", t.TempDir(), filepath.Join(dir, "fixtures", "page.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	newGoldie(t).Assert(t, "render_page", []byte(out))
}
