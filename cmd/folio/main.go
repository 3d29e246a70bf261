// Command folio is a personal e-book reader for the terminal.
// It imports PDF, DOCX, and TXT files into a local library and
// provides reading, highlighting, search, and assistant chat over
// CLI, TUI, HTTP, and MCP surfaces.
package main

import (
	"github.com/foliolabs/folio/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		cli.Fatal(err)
	}
}
