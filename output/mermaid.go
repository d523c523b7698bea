package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/CodMac/go-treesitter-name-extractor/model"
)

// ExportMermaidHTML 生成包含 Mermaid.js 渲染逻辑的静态网页
func ExportMermaidHTML(outputPath string, files []*model.FileData) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}

	return WriteAndClose(f, func(w io.Writer) error {
		return WriteMermaidHTML(w, files)
	})
}

// WriteMermaidHTML 每个包一个 subgraph，包内每个文件一个 subgraph，实体之间画出 父 → 子 的边
func WriteMermaidHTML(out io.Writer, files []*model.FileData) error {
	w := bufio.NewWriter(out)

	// 1. 写入 HTML 模板头部
	w.WriteString(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Declared Identifier Names</title>
    <script src="https://cdn.jsdelivr.net/npm/mermaid/dist/mermaid.min.js"></script>
    <style>
        body { font-family: -apple-system, sans-serif; background: #f0f2f5; margin: 20px; }
        .mermaid { background: white; padding: 20px; border-radius: 12px; box-shadow: 0 4px 15px rgba(0,0,0,0.1); }
        h1 { color: #1a1a1a; text-align: center; }
    </style>
</head>
<body>
    <h1>Entity Tree</h1>
    <div class="mermaid">
    graph LR
`)

	// 2. 按 Package 分组，保持首次出现的顺序
	var order []string
	groups := make(map[string][]int)
	for i, fd := range files {
		pkg := fd.PackageName()
		if _, ok := groups[pkg]; !ok {
			order = append(order, pkg)
		}
		groups[pkg] = append(groups[pkg], i)
	}

	var edges []string
	for _, pkg := range order {
		hasPkg := pkg != ""
		if hasPkg {
			fmt.Fprintf(w, "    subgraph \"📦 %s\"\n", escapeLabel(pkg))
		}

		for _, idx := range groups[pkg] {
			fd := files[idx]
			fmt.Fprintf(w, "        subgraph \"📄 %s\"\n", escapeLabel(fd.FileName()))
			for i, root := range fd.Entities() {
				edges = writeEntity(w, root, fmt.Sprintf("f%d_%d", idx, i), edges)
			}
			w.WriteString("        end\n")
		}

		if hasPkg {
			w.WriteString("    end\n")
		}
	}

	// 3. 父子关系
	for _, e := range edges {
		w.WriteString(e)
	}

	// 4. 写入脚本初始化和结尾
	w.WriteString(`    </div>
    <script>
        mermaid.initialize({ 
            startOnLoad: true, 
            maxTextSize: 100000,
            theme: 'default',
            flowchart: { useMaxWidth: false, htmlLabels: true }
        });
    </script>
</body>
</html>`)

	return w.Flush()
}

func writeEntity(w *bufio.Writer, e *model.EntityNode, path string, edges []string) []string {
	id := safeID(path)
	// 节点：ID["Name (Kind)"]
	fmt.Fprintf(w, "            %s[\"%s <small>(%s)</small>\"]\n", id, escapeLabel(e.Name), e.Kind)
	for i, child := range e.Children() {
		childPath := fmt.Sprintf("%s_%d", path, i)
		edges = append(edges, fmt.Sprintf("    %s --> %s\n", id, safeID(childPath)))
		edges = writeEntity(w, child, childPath, edges)
	}
	return edges
}

// safeID 确保节点 ID 符合 Mermaid 的命名规范
func safeID(id string) string {
	r := strings.NewReplacer(".", "_", "/", "_", "-", "_", "\\", "_", ":", "_", "@", "_")
	return "n_" + r.Replace(id)
}

func escapeLabel(s string) string {
	r := strings.NewReplacer("\"", "#quot;", "<", "#lt;", ">", "#gt;")
	return r.Replace(s)
}
