package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	ansiReset = "\x1b[0m"
	ansiBlue  = "\x1b[34m"
)

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

// Render writes the three-section end-of-run summary to w: updated masters,
// rejected frames grouped by group key with reason and stats, and global
// counters. colorize controls whether section headers carry ANSI color, the
// same switch cmd/darkmaster uses for every other piece of console output.
func (r *Report) Render(w io.Writer, colorize bool) {
	r.renderUpdatedMasters(w, colorize)
	fmt.Fprintln(w)
	r.renderRejections(w, colorize)
	fmt.Fprintln(w)
	r.renderCounters(w, colorize)
}

func (r *Report) renderUpdatedMasters(w io.Writer, colorize bool) {
	for _, line := range renderSectionHeader("Updated Masters", colorize) {
		fmt.Fprintln(w, line)
	}

	var rows [][]string
	for _, g := range r.groups {
		if !g.Built {
			continue
		}
		rows = append(rows, []string{
			groupLabel(g),
			fmt.Sprintf("%d/%d", g.NFramesUsed, g.NFramesTotal),
			g.MasterPath,
		})
	}
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no masters updated this run)")
		return
	}
	fmt.Fprintln(w, renderTable(
		[]string{"Group", "Frames Used/Total", "Master Path"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft},
	))
}

func (r *Report) renderRejections(w io.Writer, colorize bool) {
	for _, line := range renderSectionHeader("Rejected Frames", colorize) {
		fmt.Fprintln(w, line)
	}

	type rejectionRow struct {
		group  string
		path   string
		reason string
		median string
	}
	var flat []rejectionRow
	for _, g := range r.groups {
		for _, rej := range g.Rejected {
			flat = append(flat, rejectionRow{
				group:  groupLabel(g),
				path:   rej.Frame.Path,
				reason: string(rej.Reason),
				median: fmt.Sprintf("%.2f", rej.Stats.Median),
			})
		}
	}
	if len(flat) == 0 {
		fmt.Fprintln(w, "(no rejections this run)")
		return
	}
	sort.Slice(flat, func(i, j int) bool {
		if flat[i].group != flat[j].group {
			return flat[i].group < flat[j].group
		}
		return flat[i].path < flat[j].path
	})

	rows := make([][]string, 0, len(flat))
	for _, f := range flat {
		rows = append(rows, []string{f.group, f.path, f.reason, f.median})
	}
	fmt.Fprintln(w, renderTable(
		[]string{"Group", "Frame", "Reason", "Median"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
	))
}

func (r *Report) renderCounters(w io.Writer, colorize bool) {
	for _, line := range renderSectionHeader("Summary", colorize) {
		fmt.Fprintln(w, line)
	}

	c := r.Tally()
	rows := [][]string{
		{"Frames seen", humanize.Comma(int64(c.FramesSeen))},
		{"Frames used", humanize.Comma(int64(c.FramesUsed))},
		{"Frames rejected", humanize.Comma(int64(c.FramesRejected))},
		{"Groups built", humanize.Comma(int64(c.GroupsBuilt))},
		{"Groups skipped", humanize.Comma(int64(c.GroupsSkipped))},
		{"Success rate", fmt.Sprintf("%.1f%%", c.SuccessRate()*100)},
	}
	fmt.Fprintln(w, renderTable(
		[]string{"Metric", "Value"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	))
}
