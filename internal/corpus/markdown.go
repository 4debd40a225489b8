package corpus

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var mdParser = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

// markdownToText strips markdown syntax by parsing the content into an AST
// and collecting only text segments. Block boundaries become newlines so the
// splitter sees natural paragraph structure instead of markup.
func markdownToText(content []byte) string {
	if len(content) == 0 {
		return ""
	}

	doc := mdParser.Parser().Parse(text.NewReader(content))

	var builder strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Text:
			builder.Write(node.Segment.Value(content))
		case *ast.String:
			builder.Write(node.Value)
		case *ast.CodeBlock:
			writeLines(&builder, node, content)
		case *ast.FencedCodeBlock:
			writeLines(&builder, node, content)
		case *ast.Heading, *ast.Paragraph, *ast.ListItem, *ast.Blockquote:
			if builder.Len() > 0 && !strings.HasSuffix(builder.String(), "\n") {
				builder.WriteString("\n")
			}
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(builder.String())
}

func writeLines(builder *strings.Builder, n ast.Node, content []byte) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		builder.Write(line.Value(content))
	}
}
