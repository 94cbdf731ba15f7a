package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reblaw/legal-api/internal/version"
)

const articlesYAML = `articles:
  - code: قانون_مدنی
    id: 10
    text: "قراردادهای خصوصی نسبت به کسانی که آن را منعقد نموده‌اند در صورتی که مخالف صریح قانون نباشد نافذ است."
  - code: قانون_تجارت
    id: 1
    text: "تاجر کسی است که شغل معمولی خود را معاملات تجارتی قرار بدهد."
`

func TestRun_Version(t *testing.T) {
	for _, arg := range []string{"-v", "-version", "version"} {
		t.Run(arg, func(t *testing.T) {
			ui := cli.NewMockUi()
			assert.Equal(t, 0, run([]string{"reblaw", arg}, ui))
			assert.Equal(t, "reblaw v"+version.Human()+"\n", ui.OutputWriter.String())
		})
	}
}

func TestRun_ImportThenLookup(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "iran_laws.db")
	file := filepath.Join(dir, "articles.yaml")
	require.NoError(t, os.WriteFile(file, []byte(articlesYAML), 0o644))

	ui := cli.NewMockUi()
	require.Equal(t, 0, run([]string{"reblaw", "migrate", "-db", db}, ui), ui.ErrorWriter.String())
	assert.Contains(t, ui.OutputWriter.String(), "schema version 2")

	ui = cli.NewMockUi()
	require.Equal(t, 0, run([]string{"reblaw", "import", "-db", db, file}, ui), ui.ErrorWriter.String())
	assert.Contains(t, ui.OutputWriter.String(), "2 articles")
	assert.Contains(t, ui.OutputWriter.String(), "قانون_مدنی: 1")

	t.Run("found", func(t *testing.T) {
		ui := cli.NewMockUi()
		code := run([]string{"reblaw", "lookup", "-db", db, "قانون", "مدنی", "10"}, ui)
		require.Equal(t, 0, code, ui.ErrorWriter.String())
		assert.Contains(t, ui.OutputWriter.String(), "قراردادهای خصوصی")
	})

	t.Run("json", func(t *testing.T) {
		ui := cli.NewMockUi()
		code := run([]string{"reblaw", "lookup", "-db", db, "-json", "قانون تجارت", "1"}, ui)
		require.Equal(t, 0, code)
		assert.Contains(t, ui.OutputWriter.String(), `"law_code": "قانون_تجارت"`)
	})

	t.Run("not found", func(t *testing.T) {
		ui := cli.NewMockUi()
		code := run([]string{"reblaw", "lookup", "-db", db, "قانون تجارت", "999"}, ui)
		assert.Equal(t, 2, code)
		assert.Contains(t, ui.ErrorWriter.String(), "یافت نشد")
	})

	t.Run("unknown law", func(t *testing.T) {
		ui := cli.NewMockUi()
		code := run([]string{"reblaw", "lookup", "-db", db, "قانونی عجیب", "1"}, ui)
		assert.Equal(t, 2, code)
		assert.Contains(t, ui.ErrorWriter.String(), "ناشناخته")
	})
}

func TestRun_ImportInvalidFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(file, []byte("articles:\n  - code: قانون_مدنی\n    id: 0\n"), 0o644))

	ui := cli.NewMockUi()
	code := run([]string{"reblaw", "import", "-db", filepath.Join(dir, "x.db"), file}, ui)
	assert.Equal(t, 1, code)
	assert.True(t, strings.Contains(ui.ErrorWriter.String(), "1 of 1 files failed"))
}

func TestRun_LookupUsage(t *testing.T) {
	ui := cli.NewMockUi()
	assert.Equal(t, 1, run([]string{"reblaw", "lookup", "10"}, ui))

	ui = cli.NewMockUi()
	assert.Equal(t, 1, run([]string{"reblaw", "lookup", "قانون مدنی", "ten"}, ui))
}
