package main

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

const modulePath = "github.com/decker502/fireworks"

// moduleImports 收集 dir 下非测试源码的导入路径
func moduleImports(t *testing.T, root, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(root, dir))
	if err != nil {
		t.Fatalf("读取 %s 失败: %v", dir, err)
	}
	fset := token.NewFileSet()
	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(root, dir, name), nil, parser.ImportsOnly)
		if err != nil {
			t.Fatalf("解析 %s 失败: %v", name, err)
		}
		for _, imp := range f.Imports {
			path, _ := strconv.Unquote(imp.Path.Value)
			out = append(out, path)
		}
	}
	return out
}

// TestNoGraphicsBackend 无头和终端程序的依赖闭包中不能出现 ebiten
func TestNoGraphicsBackend(t *testing.T) {
	root := filepath.Join("..", "..")
	for _, start := range []string{"cmd/headless", "cmd/terminal", "pkg/fireworks"} {
		t.Run(start, func(t *testing.T) {
			seen := map[string]bool{}
			queue := []string{start}
			for len(queue) > 0 {
				dir := queue[0]
				queue = queue[1:]
				if seen[dir] {
					continue
				}
				seen[dir] = true
				for _, path := range moduleImports(t, root, dir) {
					if strings.HasPrefix(path, "github.com/hajimehoshi/ebiten") {
						t.Errorf("%s 导入了 %s", dir, path)
					}
					if rel, ok := strings.CutPrefix(path, modulePath+"/"); ok {
						queue = append(queue, rel)
					}
				}
			}
		})
	}
}
