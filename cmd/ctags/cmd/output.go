package cmd

import (
	"fmt"
	"strings"

	"github.com/corey/ctags/internal/ports"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// formatTags renders store lookups, one per line:
//
//	⚡ 2 tags
//	  lib/util.sh:3  setup  function
func formatTags(tags []ports.Tag) string {
	var sb strings.Builder
	noun := "tags"
	if len(tags) == 1 {
		noun = "tag"
	}
	fmt.Fprintf(&sb, "%s⚡ %d %s%s\n", colorBold, len(tags), noun, colorReset)
	for _, t := range tags {
		fmt.Fprintf(&sb, "  %s%s%s:%d  %s  %s%s%s\n",
			colorCyan, t.File, colorReset, t.Line,
			t.Name,
			colorGray, t.KindInfo.Name, colorReset)
	}
	return sb.String()
}

// formatLanguages renders the parser table:
//
//	Sh  .sh .SH .bsh .bash .ksh .zsh .ash
func formatLanguages(defs []ports.ParserDefinition) string {
	width := 0
	for _, d := range defs {
		width = max(width, len(d.Name))
	}
	var sb strings.Builder
	for _, d := range defs {
		exts := make([]string, len(d.Extensions))
		for i, e := range d.Extensions {
			exts[i] = "." + e
		}
		fmt.Fprintf(&sb, "%-*s  %s\n", width, d.Name, strings.Join(exts, " "))
	}
	return sb.String()
}

// formatKinds renders one parser's kinds the way ctags lists them; disabled
// kinds are marked.
//
//	f  functions
func formatKinds(def ports.ParserDefinition) string {
	var sb strings.Builder
	for _, k := range def.Kinds {
		fmt.Fprintf(&sb, "%c  %s", k.Letter, k.Description)
		if !k.Enabled {
			sb.WriteString(" [off]")
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
