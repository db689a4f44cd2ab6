package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/pkgsorter/internal/catalog"
	"github.com/atomicstack/pkgsorter/internal/format/table"
	"github.com/atomicstack/pkgsorter/internal/pipeline"
	uistate "github.com/atomicstack/pkgsorter/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
)

const (
	defaultWidth    = 100
	defaultHeight   = 30
	logPaneHeight   = 8
	sidePaneMin     = 30
	sidePaneFrac    = 0.4
	headerSeparator = " │ "
	itemIndicator   = "▌ "
	dateLayout      = "2006-01-02 15:04"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

func (m *Model) dims() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

// logHeight is the outer height of the log pane, border included.
func (m *Model) logHeight() int {
	_, h := m.dims()
	if h < logPaneHeight*2 {
		return max(3, h/3)
	}
	return logPaneHeight
}

// bodyHeight is the height shared by the list and the side pane.
func (m *Model) bodyHeight() int {
	_, h := m.dims()
	used := 2 + m.logHeight() // header + status line
	if m.showFooter {
		used++
	}
	return max(3, h-used)
}

func (m *Model) sideWidth() int {
	w, _ := m.dims()
	side := int(float64(w) * sidePaneFrac)
	if side < sidePaneMin {
		side = min(sidePaneMin, w/2)
	}
	return side
}

// listRows is the number of package rows that fit under the column header.
func (m *Model) listRows() int {
	return max(1, m.bodyHeight()-1)
}

// syncLayout keeps cursors and the log window consistent with the screen.
func (m *Model) syncLayout() {
	w, _ := m.dims()
	m.list.EnsureVisible(len(m.store.Visible()), m.listRows())
	m.session.Log.SetWindowHeight(m.logHeight())
	m.logView.Width = max(1, w-2)
	m.logView.Height = m.session.Log.Height()
}

// View implements tea.Model.
func (m *Model) View() string {
	w, _ := m.dims()
	bodyH := m.bodyHeight()
	sideW := m.sideWidth()
	listW := w - sideW

	header := renderLines(applyWidth([]styledLine{{text: m.headerText(), style: styles.Header}}, w))
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.viewList(listW, bodyH), m.viewSide(sideW, bodyH))
	parts := []string{header, body, m.viewLog(w), m.viewStatus(w)}
	if m.showFooter {
		parts = append(parts, renderLines(applyWidth([]styledLine{{text: m.footerText(), style: styles.Footer}}, w)))
	}
	return strings.Join(parts, "\n")
}

func (m *Model) headerText() string {
	s := m.session
	segments := []string{
		"pkgsorter",
		"Show: " + s.ShowMode.String(),
		"Sort: " + s.SortKey.String(),
	}
	if s.Search != "" {
		segments = append(segments, fmt.Sprintf("Search: %q", s.Search))
	}
	if f := filterSummary(s.TagFilters); f != "" {
		segments = append(segments, "Tags: "+f)
	}
	if f := filterSummary(s.RepoFilters); f != "" {
		segments = append(segments, "Repos: "+f)
	}
	return strings.Join(segments, headerSeparator)
}

func filterSummary(f pipeline.Filters) string {
	parts := make([]string, 0, len(f))
	for _, k := range f.Keys(pipeline.Include) {
		parts = append(parts, "+"+k)
	}
	for _, k := range f.Keys(pipeline.Exclude) {
		parts = append(parts, "-"+k)
	}
	return strings.Join(parts, " ")
}

func (m *Model) viewList(width, height int) string {
	lines := make([]styledLine, 0, height)
	visible := m.store.Visible()
	switch {
	case m.Loading():
		lines = append(lines, styledLine{text: "Loading packages…", style: styles.Loading})
	case len(visible) == 0 && m.session.Search != "":
		lines = append(lines, styledLine{text: fmt.Sprintf("No matches for %q", m.session.Search), style: styles.Info})
	case len(visible) == 0:
		lines = append(lines, styledLine{text: "(no packages)", style: styles.Info})
	default:
		lines = append(lines, m.packageLines(visible)...)
	}
	lines = limitHeight(applyWidth(lines, width), height, width)
	return lipgloss.NewStyle().Width(width).Height(height).Render(renderLines(lines))
}

func (m *Model) packageLines(visible []catalog.Package) []styledLine {
	start := m.list.Offset
	end := min(len(visible), start+m.listRows())
	rows := make([][]string, 0, end-start+1)
	rows = append(rows, []string{"Name", "Version", "Repo", "Size", "Tags"})
	for _, p := range visible[start:end] {
		rows = append(rows, []string{p.Name, p.Version, p.Repository.String(), formatSize(p.Size), strings.Join(p.Tags, ",")})
	}
	formatted := table.Format(rows, []table.Column{
		{Max: 32},
		{Max: 18},
		{},
		{Align: table.AlignRight},
		{Max: 24},
	})
	lines := make([]styledLine, 0, len(formatted))
	pad := strings.Repeat(" ", len([]rune(itemIndicator)))
	lines = append(lines, styledLine{text: pad + formatted[0], style: styles.Header})
	for i, row := range formatted[1:] {
		idx := start + i
		if idx == m.list.Index {
			lines = append(lines, styledLine{
				text:          itemIndicator + row,
				style:         styles.SelectedItem,
				prefixStyle:   styles.SelectedItemIndicator,
				highlightFrom: len([]rune(itemIndicator)),
			})
			continue
		}
		lines = append(lines, styledLine{text: pad + row, style: styles.Item})
	}
	return lines
}

func formatSize(mib float64) string {
	if mib <= 0 {
		return "0 B"
	}
	return humanize.IBytes(uint64(mib * 1024 * 1024))
}

func (m *Model) viewSide(width, height int) string {
	var lines []styledLine
	title := "Details"
	switch m.mode {
	case ModeTagging, ModeUntagging:
		title = "Add tag"
		if m.mode == ModeUntagging {
			title = "Remove tag"
		}
		if m.tagModal != nil {
			title = fmt.Sprintf("%s: %s", title, m.tagModal.pkg)
			lines = m.pickerLines(m.tagModal.picker, height-2)
		}
	case ModeSorting:
		title = "Sort by"
		if m.sortModal != nil {
			lines = m.pickerLines(m.sortModal.picker, height-2)
		}
	case ModeShowing:
		title = "Show"
		if m.showModal != nil {
			lines = m.pickerLines(m.showModal.picker, height-2)
		}
	case ModeAction:
		title = "Actions"
		if m.actionModal != nil {
			lines = m.pickerLines(m.actionModal.picker, height-2)
		}
	case ModeFiltering:
		title = "Filter"
		if m.filterModal != nil {
			lines = m.filterLines(m.filterModal, height-2)
		}
	default:
		lines = m.detailLines()
	}
	box := styles.Border
	if m.mode != ModeNormal && m.mode != ModeSearching {
		box = styles.ActiveBorder
	}
	inner := max(1, width-2)
	all := append([]styledLine{{text: title, style: styles.ModalTitle}}, lines...)
	all = limitHeight(applyWidth(all, inner), height-2, inner)
	return box.Width(inner).Height(max(1, height-2)).Render(renderLines(all))
}

func (m *Model) detailLines() []styledLine {
	pkg, ok := m.Selected()
	if !ok {
		return []styledLine{{text: "(nothing selected)", style: styles.Info}}
	}
	field := func(label, value string) styledLine {
		prefix := label + ": "
		return styledLine{
			text:          prefix + value,
			style:         styles.DetailBody,
			prefixStyle:   styles.DetailLabel,
			highlightFrom: len([]rune(prefix)),
		}
	}
	lines := []styledLine{
		{text: fmt.Sprintf("%s %s", pkg.Name, pkg.Version), style: styles.DetailTitle},
	}
	if pkg.Description != "" {
		lines = append(lines, styledLine{text: pkg.Description, style: styles.DetailBody})
	}
	lines = append(lines, field("Repository", pkg.Repository.String()))
	if m.session.ShowMode == catalog.ShowAllAvailable {
		installed := "no"
		if local, ok := m.store.FindInstalled(pkg.Name); ok {
			installed = local.Version
			pkg.InstallDate, pkg.Explicit, pkg.Tags = local.InstallDate, local.Explicit, local.Tags
		}
		lines = append(lines, field("Local", installed))
	}
	lines = append(lines, field("Size", formatSize(pkg.Size)))
	if !pkg.InstallDate.IsZero() {
		lines = append(lines, field("Installed", fmt.Sprintf("%s (%s)", pkg.InstallDate.Format(dateLayout), humanize.Time(pkg.InstallDate))))
		reason := "dependency"
		if pkg.Explicit {
			reason = "explicit"
		}
		lines = append(lines, field("Reason", reason))
	}
	if !pkg.BuildDate.IsZero() {
		lines = append(lines, field("Built", pkg.BuildDate.Format(dateLayout)))
	}
	if pkg.Popularity != nil {
		lines = append(lines, field("Popularity", fmt.Sprintf("%.2f", *pkg.Popularity)))
	}
	if pkg.Votes != nil {
		lines = append(lines, field("Votes", humanize.Comma(int64(*pkg.Votes))))
	}
	tags := "(none)"
	if len(pkg.Tags) > 0 {
		tags = strings.Join(pkg.Tags, ", ")
	}
	lines = append(lines, field("Tags", tags))
	return lines
}

// pickerLines renders a modal's input and its visible options within
// height rows.
func (m *Model) pickerLines(p *uistate.Picker, height int) []styledLine {
	lines := []styledLine{{
		text: m.inputPrompt("» ", "(type to filter)", p.Input, p.Focus == uistate.FocusInput),
		raw:  true,
	}}
	rows := max(1, height-2)
	lines = append(lines, m.optionLines(p, rows, p.Focus == uistate.FocusList, func(opt uistate.Option) string {
		if opt.Detail == "" {
			return opt.Label
		}
		return fmt.Sprintf("%s  [%s]", opt.Label, opt.Detail)
	})...)
	return lines
}

// optionLines renders the visible window of p's filtered options. The
// highlighted row gets the selected style only when highlight is set.
func (m *Model) optionLines(p *uistate.Picker, rows int, highlight bool, label func(uistate.Option) string) []styledLine {
	if len(p.Filtered) == 0 {
		msg := "(no entries)"
		if p.Input.Value != "" {
			msg = fmt.Sprintf("No matches for %q", p.Input.Value)
		}
		return []styledLine{{text: msg, style: styles.Info}}
	}
	p.Cursor.EnsureVisible(len(p.Filtered), rows)
	start := p.Cursor.Offset
	end := min(len(p.Filtered), start+rows)
	pad := strings.Repeat(" ", len([]rune(itemIndicator)))
	lines := make([]styledLine, 0, end-start)
	for i := start; i < end; i++ {
		text := label(p.Filtered[i])
		if i == p.Cursor.Index {
			style := styles.Item
			if highlight {
				style = styles.SelectedItem
			}
			lines = append(lines, styledLine{
				text:          itemIndicator + text,
				style:         style,
				prefixStyle:   styles.SelectedItemIndicator,
				highlightFrom: len([]rune(itemIndicator)),
			})
			continue
		}
		lines = append(lines, styledLine{text: pad + text, style: styles.Item})
	}
	return lines
}

func (m *Model) filterLines(f *filterModal, height int) []styledLine {
	lines := []styledLine{{
		text: m.inputPrompt("» ", "(type to filter)", f.input, f.section == sectionSearch),
		raw:  true,
	}}
	rows := max(1, (height-4)/2)
	section := func(title string, active bool, p *uistate.Picker, filters pipeline.Filters) {
		style := styles.Header
		if active {
			style = styles.ModalTitle
		}
		lines = append(lines, styledLine{text: title, style: style})
		lines = append(lines, m.optionLines(p, rows, active, func(opt uistate.Option) string {
			return filterMarker(filters.Get(opt.ID)) + " " + opt.Label
		})...)
	}
	section("Tags", f.section == sectionTags, f.tags, m.session.TagFilters)
	section("Repositories", f.section == sectionRepos, f.repos, m.session.RepoFilters)
	return lines
}

func filterMarker(s pipeline.FilterState) string {
	switch s {
	case pipeline.Include:
		return "[+]"
	case pipeline.Exclude:
		return "[-]"
	default:
		return "[ ]"
	}
}

func (m *Model) viewLog(width int) string {
	inner := max(1, width-2)
	log := m.session.Log
	messages := log.Messages()
	lines := make([]string, len(messages))
	for i, msg := range messages {
		text := fmt.Sprintf("%s %-5s %s", msg.Time.Format("15:04:05"), msg.Severity, msg.Text)
		lines[i] = renderStyled(severityStyle(msg.Severity), truncateText(text, inner))
	}
	m.logView.SetContent(strings.Join(lines, "\n"))
	m.logView.SetYOffset(log.Scroll())
	return styles.Border.Width(inner).Height(log.Height()).Render(m.logView.View())
}

func severityStyle(sev uistate.Severity) *lipgloss.Style {
	switch sev {
	case uistate.Warning:
		return styles.Warning
	case uistate.Error:
		return styles.Error
	default:
		return styles.Info
	}
}

func (m *Model) viewStatus(width int) string {
	if m.mode == ModeSearching && m.searchModal != nil {
		line := m.inputPrompt("/ ", "(type to search)", m.searchModal.input, true)
		return renderLines(applyWidth([]styledLine{{text: line, raw: true}}, width))
	}
	status := fmt.Sprintf("[%s] %d packages", m.mode, len(m.store.Visible()))
	if m.Loading() {
		status = fmt.Sprintf("[%s] loading…", m.mode)
	} else if pkg, ok := m.Selected(); ok {
		status = fmt.Sprintf("[%s] %d/%d %s", m.mode, m.list.Index+1, len(m.store.Visible()), pkg.Name)
	}
	if !m.session.Log.AtBottom() {
		status += headerSeparator + "log scrolled (J for newer)"
	}
	return renderLines(applyWidth([]styledLine{{text: status, style: styles.Footer}}, width))
}

func (m *Model) footerText() string {
	if m.mode != ModeNormal {
		return "tab focus • enter select • esc close"
	}
	help := m.keys.ShortHelp()
	parts := make([]string, 0, len(help))
	for _, b := range help {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.syncLayout()
	return nil
}

// handleMouseMsg scrolls the log when the wheel is over it and moves the
// package selection when it is over the list.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	if ev.Button != tea.MouseButtonWheelUp && ev.Button != tea.MouseButtonWheelDown {
		return nil
	}
	up := ev.Button == tea.MouseButtonWheelUp
	w, _ := m.dims()
	bodyTop := 1
	logTop := bodyTop + m.bodyHeight()
	switch {
	case ev.Y >= logTop && ev.Y < logTop+m.logHeight():
		if up {
			m.session.Log.ScrollUp(logScrollStep)
		} else {
			m.session.Log.ScrollDown(logScrollStep)
		}
	case ev.Y >= bodyTop && ev.Y < logTop && ev.X < w-m.sideWidth() && m.mode == ModeNormal:
		n := len(m.store.Visible())
		if up {
			m.moveList(m.list.PageUp(n, 1))
		} else {
			m.moveList(m.list.PageDown(n, 1))
		}
	}
	return nil
}

func renderStyled(style *lipgloss.Style, value string) string {
	if style == nil || value == "" {
		return value
	}
	return style.Render(value)
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		line.text = text
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := renderStyled(line.prefixStyle, string(runes[:line.highlightFrom]))
			tail := renderStyled(line.style, string(runes[line.highlightFrom:]))
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
