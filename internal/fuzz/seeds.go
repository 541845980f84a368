package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB - ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

var languageSeeds = []string{
	"",
	"42",
	"let x = 1; x + 2",
	"let s = \"abc",
	"let s = \"a\\tb\"; s + \"é\"",
	"/* open comment",
	"let i = 0; while i < 3 { i = i + 1; } i",
	"if 1 < 2 { \"yes\" } else if false { \"no\" } else { null }",
	"let a = 1; let a = a * 2.5; a",
	"1 / 0",
	"0x7fffffffffffffff + 1",
	"(((1",
	"}}} ;;; let = ;",
	"x = 1",
	"!true && false || 1 >= 2",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.tb файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".tb" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clamp(src))
		return nil
	})
}

func clamp(b []byte) []byte {
	if len(b) > maxSeedBytes {
		b = b[:maxSeedBytes]
	}
	return append([]byte(nil), b...)
}
