package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/genba/internal/calendar"
	"github.com/alexanderramin/genba/internal/domain"
	"github.com/alexanderramin/genba/internal/service"
	"github.com/alexanderramin/genba/internal/timeline"
	"github.com/charmbracelet/lipgloss"
)

// LabelWidth is the width of the name column left of the day grid.
const LabelWidth = 18

// RowKind tells what a rendered gantt line shows.
type RowKind int

const (
	RowHeader RowKind = iota
	RowProject
	RowLane
	RowSection
	RowWorker
)

// GanttRow maps one rendered line back to the board item it shows.
type GanttRow struct {
	Kind      RowKind
	ProjectID string
	Lane      int
	WorkerID  string
}

type GanttOptions struct {
	// DayWidth is the number of terminal cells per day, at least 1.
	DayWidth int
	Today    time.Time
	Calendar calendar.Calendar
	Workers  bool
	// Highlight is the ID of a bar to draw emphasized, e.g. during a drag.
	Highlight string
}

// Gantt is a rendered board: one entry in Rows per line.
type Gantt struct {
	Lines []string
	Rows  []GanttRow
}

func (g Gantt) String() string { return strings.Join(g.Lines, "\n") }

func (g *Gantt) add(row GanttRow, line string) {
	g.Lines = append(g.Lines, line)
	g.Rows = append(g.Rows, row)
}

// Span is the visible part of a bar in window columns. OpenLeft and
// OpenRight mark bars that continue past the window edge.
type Span struct {
	First, Last         int
	OpenLeft, OpenRight bool
}

// SpanOf clips r to the window. ok is false when nothing is visible.
func SpanOf(w service.Window, r domain.DateRange) (Span, bool) {
	first := domain.DaysBetween(w.Start, r.Start)
	last := domain.DaysBetween(w.Start, r.End)
	if last < 0 || first > w.Days-1 {
		return Span{}, false
	}
	s := Span{First: first, Last: last}
	if s.First < 0 {
		s.First, s.OpenLeft = 0, true
	}
	if s.Last > w.Days-1 {
		s.Last, s.OpenRight = w.Days-1, true
	}
	return s, true
}

type bar struct {
	span  Span
	text  string
	style lipgloss.Style
}

// RenderGantt draws the board's projects with their task lanes and,
// optionally, the worker grid.
func RenderGantt(b *service.Board, opts GanttOptions) Gantt {
	if opts.DayWidth < 1 {
		opts.DayWidth = 1
	}
	r := ganttRenderer{board: b, opts: opts, days: b.Window.Dates()}
	var g Gantt
	r.header(&g)

	for _, p := range b.Projects {
		r.project(&g, p)
	}
	if len(b.Projects) == 0 {
		g.add(GanttRow{Kind: RowSection}, Dim("  no projects"))
	}

	if opts.Workers {
		g.add(GanttRow{Kind: RowSection}, StyleHeader.Render(Fit("WORKERS", LabelWidth))+r.dateLine())
		for _, w := range b.Workers {
			r.worker(&g, w)
		}
		if len(b.Workers) == 0 {
			g.add(GanttRow{Kind: RowSection}, Dim("  no workers"))
		}
	}
	return g
}

// RenderWorkerGrid draws the date header and one row of day cells per
// worker.
func RenderWorkerGrid(b *service.Board, opts GanttOptions) Gantt {
	if opts.DayWidth < 1 {
		opts.DayWidth = 1
	}
	r := ganttRenderer{board: b, opts: opts, days: b.Window.Dates()}
	var g Gantt
	r.header(&g)
	for _, w := range b.Workers {
		r.worker(&g, w)
	}
	if len(b.Workers) == 0 {
		g.add(GanttRow{Kind: RowSection}, Dim("  no workers"))
	}
	return g
}

type ganttRenderer struct {
	board *service.Board
	opts  GanttOptions
	days  []time.Time
}

func (r ganttRenderer) header(g *Gantt) {
	title := fmt.Sprintf("%s~%s", r.days[0].Format("2006/01/02"), r.days[len(r.days)-1].Format("01/02"))
	g.add(GanttRow{Kind: RowHeader}, StyleHeader.Render(Fit(title, LabelWidth))+r.dateLine())

	var wd strings.Builder
	for _, d := range r.days {
		wd.WriteString(r.dayStyle(d).Render(Fit(WeekdayLabel(d), r.opts.DayWidth)))
	}
	g.add(GanttRow{Kind: RowHeader}, strings.Repeat(" ", LabelWidth)+wd.String())

	if !r.hasWeather() {
		return
	}
	var temps, pops strings.Builder
	for _, d := range r.days {
		dw, ok := r.opts.Calendar.Weather.On(d)
		if !ok {
			temps.WriteString(strings.Repeat(" ", r.opts.DayWidth))
			pops.WriteString(strings.Repeat(" ", r.opts.DayWidth))
			continue
		}
		temps.WriteString(StyleYellow.Render(Fit(fmt.Sprintf("%d°", dw.Temp), r.opts.DayWidth)))
		pops.WriteString(StyleBlue.Render(Fit(fmt.Sprintf("%d%%", dw.Precip), r.opts.DayWidth)))
	}
	g.add(GanttRow{Kind: RowHeader}, Dim(Fit("  temp", LabelWidth))+temps.String())
	g.add(GanttRow{Kind: RowHeader}, Dim(Fit("  rain", LabelWidth))+pops.String())
}

func (r ganttRenderer) hasWeather() bool {
	for _, d := range r.days {
		if _, ok := r.opts.Calendar.Weather.On(d); ok {
			return true
		}
	}
	return false
}

// dateLine labels each column with its day of month, and month/day on the
// first column and on the 1st.
func (r ganttRenderer) dateLine() string {
	var b strings.Builder
	for i, d := range r.days {
		label := fmt.Sprintf("%d", d.Day())
		if i == 0 || d.Day() == 1 {
			label = fmt.Sprintf("%d/%d", int(d.Month()), d.Day())
		}
		b.WriteString(r.dayStyle(d).Render(Fit(label, r.opts.DayWidth)))
	}
	return b.String()
}

func (r ganttRenderer) dayStyle(d time.Time) lipgloss.Style {
	s := StyleDim
	if _, holiday := r.opts.Calendar.Holidays.Name(d); holiday || d.Weekday() == time.Sunday {
		s = StyleRed
	} else if d.Weekday() == time.Saturday {
		s = StyleBlue
	}
	if !r.opts.Today.IsZero() && domain.Day(r.opts.Today).Equal(domain.Day(d)) {
		s = s.Reverse(true)
	}
	return s
}

func (r ganttRenderer) emptyCell(d time.Time) string {
	return r.dayStyle(d).UnsetReverse().Faint(true).Render(Fit("·", r.opts.DayWidth))
}

func (r ganttRenderer) project(g *Gantt, p *domain.Project) {
	label := lipgloss.NewStyle().Foreground(BarColor(p.Color)).Bold(true).Render(Fit(p.Name, LabelWidth-1)) + " "
	var bars []bar
	if pr, ok := p.Range(); ok {
		if s, ok := SpanOf(r.board.Window, pr); ok {
			bars = append(bars, bar{span: s, text: p.Name, style: r.barStyle(p.ID, p.Color)})
		}
	}
	g.add(GanttRow{Kind: RowProject, ProjectID: p.ID}, label+r.spans(bars))

	res := r.board.Layout[p.ID]
	lanes := max(res.LaneCount, 1)
	byLane := make([][]bar, lanes)
	for _, pt := range res.Positioned {
		tr, ok := pt.Task.Range()
		if !ok {
			continue
		}
		s, ok := SpanOf(r.board.Window, tr)
		if !ok {
			continue
		}
		color := pt.Task.Color
		if color == "" {
			color = domain.TaskBarColor(p.Color)
		}
		byLane[pt.Level] = append(byLane[pt.Level], bar{span: s, text: pt.Task.Text, style: r.barStyle(pt.Task.ID, color)})
	}
	for lane, lb := range byLane {
		g.add(GanttRow{Kind: RowLane, ProjectID: p.ID, Lane: lane}, strings.Repeat(" ", LabelWidth)+r.spans(lb))
	}
}

func (r ganttRenderer) barStyle(id, color string) lipgloss.Style {
	s := BarStyle(color)
	if id != "" && id == r.opts.Highlight {
		s = s.Bold(true).Underline(true)
	}
	return s
}

// spans renders one grid line. bars must not overlap.
func (r ganttRenderer) spans(bars []bar) string {
	at := make(map[int]bar, len(bars))
	for _, b := range bars {
		at[b.span.First] = b
	}
	var out strings.Builder
	for col := 0; col < len(r.days); col++ {
		b, ok := at[col]
		if !ok {
			out.WriteString(r.emptyCell(r.days[col]))
			continue
		}
		width := (b.span.Last - b.span.First + 1) * r.opts.DayWidth
		text := b.text
		if b.span.OpenLeft {
			text = "◂" + text
		}
		out.WriteString(b.style.Render(Fit(text, width)))
		col = b.span.Last
	}
	return out.String()
}

func (r ganttRenderer) worker(g *Gantt, w *domain.Worker) {
	name := w.Name
	if age, ok := w.Age(r.opts.Today); ok && !r.opts.Today.IsZero() {
		name = fmt.Sprintf("%s (%d)", w.Name, age)
	}
	var line strings.Builder
	line.WriteString(StyleFg.Render(Fit(name, LabelWidth-1)) + " ")
	colors := make(map[string]string, len(r.board.Projects))
	for _, p := range r.board.Projects {
		colors[p.ID] = p.Color
	}
	names := r.board.ProjectNames()
	for _, d := range r.days {
		entries := r.board.Cell(w.ID, d)
		if len(entries) == 0 {
			line.WriteString(r.emptyCell(d))
			continue
		}
		line.WriteString(CellLabel(entries, names, colors, r.opts.DayWidth))
	}
	g.add(GanttRow{Kind: RowWorker, WorkerID: w.ID}, line.String())
}

// CellLabel renders a worker/day cell in width cells: the first entry,
// with a trailing "+" when there are more.
func CellLabel(entries []domain.Assignment, names, colors map[string]string, width int) string {
	if len(entries) == 0 {
		return strings.Repeat(" ", width)
	}
	textWidth := width
	more := ""
	if len(entries) > 1 && width > 1 {
		textWidth, more = width-1, "+"
	}
	switch e := entries[0].(type) {
	case domain.ProjectAssignment:
		return BarStyle(colors[e.ProjectID]).Render(Fit(domain.DescribeAssignment(e, names), textWidth) + more)
	case domain.StatusAssignment:
		label, style := "off", StyleRed
		if e.Status == domain.StatusHalfDayOff {
			label, style = "½off", StyleYellow
		}
		return style.Render(Fit(label, textWidth) + more)
	default:
		return Fit("?", width)
	}
}

// Hit is the bar under a pointer and the drag handle its position selects.
type Hit struct {
	Item   timeline.Item
	Handle timeline.Handle
}

// HitTest resolves a position in g, with x in terminal cells from the left
// edge and y the line index, to a project or task bar. The first cell of a
// bar is its left resize handle, the last cell its right one, and any other
// cell moves it. Edges cut off by the window are not handles.
func HitTest(b *service.Board, g Gantt, dayWidth, x, y int) (Hit, bool) {
	if y < 0 || y >= len(g.Rows) || x < LabelWidth || dayWidth < 1 {
		return Hit{}, false
	}
	gx := x - LabelWidth
	col := gx / dayWidth
	if col >= b.Window.Days {
		return Hit{}, false
	}
	row := g.Rows[y]

	switch row.Kind {
	case RowProject:
		p, ok := b.Project(row.ProjectID)
		if !ok {
			return Hit{}, false
		}
		pr, ok := p.Range()
		if !ok {
			return Hit{}, false
		}
		return hitSpan(b.Window, timeline.Item{Kind: timeline.KindProject, ID: p.ID, Range: pr}, dayWidth, gx, col)
	case RowLane:
		for _, pt := range b.Layout[row.ProjectID].Positioned {
			if pt.Level != row.Lane {
				continue
			}
			tr, ok := pt.Task.Range()
			if !ok {
				continue
			}
			if hit, ok := hitSpan(b.Window, timeline.Item{Kind: timeline.KindTask, ID: pt.Task.ID, Range: tr}, dayWidth, gx, col); ok {
				return hit, true
			}
		}
	}
	return Hit{}, false
}

func hitSpan(w service.Window, item timeline.Item, dayWidth, gx, col int) (Hit, bool) {
	s, ok := SpanOf(w, item.Range)
	if !ok || col < s.First || col > s.Last {
		return Hit{}, false
	}
	left := s.First * dayWidth
	right := (s.Last+1)*dayWidth - 1
	handle := timeline.HandleMove
	switch {
	case right == left:
	case gx == left && !s.OpenLeft:
		handle = timeline.HandleResizeLeft
	case gx == right && !s.OpenRight:
		handle = timeline.HandleResizeRight
	}
	return Hit{Item: item, Handle: handle}, true
}
