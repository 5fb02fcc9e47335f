package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB: ограничение для тестового корпуса
	maxFuzzInput = 1 << 16  // 64 KiB
)

var builtinSeeds = []string{
	"",
	"中文 ,再见.foo中文",
	"中文foo 中文 foo中foo文",
	"运行时 + 编译器 vs. 只包含运行时",
	"中文**foo**中文",
	"foo ( bar ) baz",
	"2019年06月26号",
	"一， \" 二 \" ， 三",
	"第一段\n\n第二段foo\n第三行 `code`后面",
	"前文“没有结束foo\n\n中文foo",
	"中文”中文",
	"<!-- zhfmt disabled -->\n\n中文foo",
	"[链接text](http://example.com)中文",
	"| 表格 | cell |\n| --- | --- |\n| 中文foo | x |",
	"It's 中文'quoted'",
	" 中文　foo\r\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все текстовые примеры
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".md", ".txt":
		default:
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
