package ui

import (
	"fmt"
	"html"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/TanaroSch/overlay-core/internal/diffutil"
)

// PreviewContextLines is the number of unchanged lines kept around a change.
const PreviewContextLines = 3

// PreviewFile is one file shown in a configuration preview.
type PreviewFile struct {
	Path   string
	Before string
	After  string
}

// renderFileDiffHTML renders one file as a line-numbered diff with unchanged
// runs folded away.
func renderFileDiffHTML(file PreviewFile, contextLines int) string {
	lines, summary := diffutil.Lines(file.Before, file.After)

	var builder strings.Builder
	fmt.Fprintf(&builder, "<h2>%s</h2>\n", html.EscapeString(file.Path))
	fmt.Fprintf(&builder, "<pre class=\"summary\">%s</pre>\n", html.EscapeString(summary.String()))

	if summary.Inserted == 0 && summary.Deleted == 0 {
		builder.WriteString("<p class=\"unchanged\">No changes.</p>\n")
		return builder.String()
	}

	builder.WriteString(`<pre class="diff-output">`)
	visible := diffutil.VisibleLines(lines, contextLines)
	hidden := 0
	for i, line := range lines {
		if !visible[i] {
			hidden++
			continue
		}
		if hidden > 0 {
			writeFoldLine(&builder, hidden)
			hidden = 0
		}
		writeDiffLine(&builder, line)
	}
	if hidden > 0 {
		writeFoldLine(&builder, hidden)
	}
	builder.WriteString("</pre>\n")
	return builder.String()
}

func writeFoldLine(builder *strings.Builder, hidden int) {
	fmt.Fprintf(builder,
		"<div class=\"line foldable\"><span class=\"line-content\">%d unchanged line(s) hidden</span></div>", hidden)
}

// writeDiffLine writes a single line with both line-number columns.
func writeDiffLine(builder *strings.Builder, line diffutil.Line) {
	var class, op string
	switch line.Op {
	case diffmatchpatch.DiffInsert:
		class, op = "diff-insert", "+"
	case diffmatchpatch.DiffDelete:
		class, op = "diff-delete", "-"
	default:
		class, op = "diff-equal", " "
	}

	fmt.Fprintf(builder,
		"<div class=\"line %s\"><span class=\"line-num\">%s</span><span class=\"line-num\">%s</span><span class=\"line-op\">%s</span><span class=\"line-content\">%s</span></div>",
		class, lineNum(line.OldNum), lineNum(line.NewNum), op, html.EscapeString(line.Text))
}

func lineNum(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprint(n)
}

// RenderPreviewHTML builds a standalone HTML page previewing files.
func RenderPreviewHTML(title string, files []PreviewFile, contextLines int) string {
	var body strings.Builder
	for _, f := range files {
		body.WriteString(renderFileDiffHTML(f, contextLines))
	}
	return fmt.Sprintf(previewPage, html.EscapeString(title), html.EscapeString(title), body.String())
}

// ShowPreview renders files to a temporary HTML page and opens it in the
// default browser. The page is removed a minute later.
func ShowPreview(title string, files []PreviewFile) error {
	page := RenderPreviewHTML(title, files, PreviewContextLines)

	tmpFile, err := os.CreateTemp("", "overlay-core-preview-*.html")
	if err != nil {
		return fmt.Errorf("create preview file: %w", err)
	}
	if _, err := tmpFile.WriteString(page); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpFile.Name())
		return fmt.Errorf("write preview file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		slog.Warn("Error closing preview file", "path", tmpFile.Name(), "error", err)
	}

	absPath, err := filepath.Abs(tmpFile.Name())
	if err != nil {
		absPath = tmpFile.Name()
	}
	slog.Info("Preview saved", "path", absPath)

	if err := OpenFileInDefaultApp(absPath); err != nil {
		return fmt.Errorf("open preview %s: %w", absPath, err)
	}

	go func(path string) {
		time.Sleep(time.Minute)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			slog.Warn("Error deleting preview file", "path", path, "error", err)
		}
	}(absPath)
	return nil
}

const previewPage = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>%s</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Arial, sans-serif;
            margin: 15px;
            background-color: #f8f9fa;
            color: #212529;
        }
        h1, h2 {
            border-bottom: 1px solid #dee2e6;
            padding-bottom: 8px;
            color: #0d6efd;
        }
        pre.summary {
            background-color: #e9ecef;
            border: 1px solid #ced4da;
            padding: 8px 12px;
            border-radius: 4px;
        }
        pre.diff-output {
            font-family: SFMono-Regular, Menlo, Consolas, "Liberation Mono", monospace;
            font-size: 0.9em;
            border: 1px solid #dee2e6;
            background-color: #fff;
            padding: 10px;
            border-radius: 4px;
            overflow-x: auto;
        }
        .line { display: flex; min-height: 1.4em; }
        .line-num {
            width: 35px;
            padding-right: 10px;
            text-align: right;
            color: #6c757d;
            user-select: none;
            flex-shrink: 0;
        }
        .line-op { width: 15px; text-align: center; font-weight: bold; margin-right: 10px; flex-shrink: 0; }
        .line-content { white-space: pre-wrap; word-break: break-all; flex-grow: 1; }
        .line.diff-insert { background-color: #e6ffed; color: #198754; }
        .line.diff-delete { background-color: #ffeef0; color: #dc3545; }
        .line.foldable { background-color: #e9ecef; color: #6c757d; font-style: italic; justify-content: center; }
        p.unchanged { color: #6c757d; font-style: italic; }
    </style>
</head>
<body>
    <h1>%s</h1>
    %s
</body>
</html>
`
