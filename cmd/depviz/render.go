package main

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// renderPNG invokes the external Graphviz dot binary to render dotPath
// into pngPath.
func renderPNG(ctx context.Context, graphvizPath, dotPath, pngPath string) error {
	cmd := exec.CommandContext(ctx, graphvizPath, "-Tpng", dotPath, "-o", pngPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("render graph with %s: %v: %s", graphvizPath, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// openViewer hands the rendered image to the platform's default opener.
// Failure is reported to the caller so it can degrade to printing the
// output path; a missing viewer is not worth failing the run over.
func openViewer(ctx context.Context, path string) error {
	opener := "xdg-open"
	if runtime.GOOS == "darwin" {
		opener = "open"
	}
	return exec.CommandContext(ctx, opener, path).Run()
}
