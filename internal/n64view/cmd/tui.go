package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"n64view/internal/analysis"
	"n64view/internal/n64view/styles"
	"n64view/internal/rom"
	"n64view/internal/ui/colorize"
)

type viewMode int

const (
	viewListing viewMode = iota
	viewSymbols
	viewInfo
)

type symbolItem struct {
	address    uint32
	name       string
	display    string
	filterTerm string // Pre-computed filter value
}

func (i symbolItem) Title() string       { return fmt.Sprintf("%08x  %s", i.address, i.display) }
func (i symbolItem) FilterValue() string { return i.filterTerm }
func (i symbolItem) Description() string { return "" }

// Custom item delegate for symbols list
type itemDelegate struct {
	palette styles.Palette
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(symbolItem)
	if !ok {
		return
	}

	indicator := " "
	addrStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(d.palette.Muted))
	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(d.palette.Text))
	if index == m.Index() {
		indicator = ">"
		addrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(d.palette.Label))
		nameStyle = nameStyle.Bold(true)
	}

	fmt.Fprintf(w, " %s  %s  %s",
		indicator,
		addrStyle.Render(fmt.Sprintf("%08x", i.address)),
		nameStyle.Render(i.display))
}

// symbolItems lists the loaded symbols, or the call targets found in res
// when no symbol map was given.
func symbolItems(sm *analysis.SymbolMap, res *analysis.AnnotatorResult) []list.Item {
	var items []list.Item
	add := func(addr uint32, name, display string) {
		items = append(items, symbolItem{
			address:    addr,
			name:       name,
			display:    display,
			filterTerm: fmt.Sprintf("%x %s", addr, display),
		})
	}

	if sm.Len() > 0 {
		for _, sym := range sm.Symbols() {
			add(sym.Addr, sym.Name, sym.Display())
		}
		return items
	}
	if res == nil {
		return nil
	}
	seen := make(map[uint32]bool)
	for _, f := range res.Findings {
		if !f.HasTarget || seen[f.TargetVA] {
			continue
		}
		seen[f.TargetVA] = true
		add(f.TargetVA, f.Target, f.Target)
	}
	sort.Slice(items, func(a, b int) bool {
		return items[a].(symbolItem).address < items[b].(symbolItem).address
	})
	return items
}

type model struct {
	viewport    viewport.Model
	symbolsList list.Model
	infoView    viewport.Model
	spinner     spinner.Model
	mode        viewMode
	ctx         context.Context
	cancel      context.CancelFunc
	sess        *session
	im          *rom.Image
	start       uint32
	title       string
	result      *analysis.AnnotatorResult
	info        string
	loading     bool
	loadingInfo bool
	err         error
	width       int
	height      int
}

// Message types
type listingMsg struct {
	start uint32
	res   *analysis.AnnotatorResult
	err   error
}

type infoMsg struct {
	markdown string
	err      error
}

// Commands
func sweepCmd(ctx context.Context, s *session, im *rom.Image, start uint32, function bool) tea.Cmd {
	return func() tea.Msg {
		res, _, err := listing(ctx, s, im, start, disOptions{
			count:    analysis.DefaultSweepInstructions,
			function: function,
		})
		return listingMsg{start: start, res: res, err: err}
	}
}

func reportCmd(ctx context.Context, s *session, im *rom.Image) tea.Cmd {
	return func() tea.Msg {
		md, err := report(ctx, s, im)
		return infoMsg{markdown: md, err: err}
	}
}

// newModel returns the viewer model. Sweeps run under ctx and are
// cancelled when the viewer quits.
func newModel(ctx context.Context, s *session, im *rom.Image, start uint32) model {
	p := s.cfg.Palette()
	ctx, cancel := context.WithCancel(ctx)

	vp := viewport.New()
	vp.SetWidth(80)
	vp.SetHeight(24)

	symbolsList := list.New([]list.Item{}, itemDelegate{palette: p}, 80, 24)
	symbolsList.SetShowStatusBar(false)
	symbolsList.SetFilteringEnabled(true)
	symbolsList.Title = "Symbols"
	symbolsList.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Heading)).
		MarginLeft(2)
	symbolsList.SetShowHelp(true)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Label))

	ivp := viewport.New()
	ivp.SetWidth(80)
	ivp.SetHeight(24)

	title := im.Header.Title
	if title == "" {
		title = im.Path
	}

	m := model{
		viewport:    vp,
		symbolsList: symbolsList,
		infoView:    ivp,
		spinner:     sp,
		mode:        viewListing,
		ctx:         ctx,
		cancel:      cancel,
		sess:        s,
		im:          im,
		start:       start,
		title:       title,
		loading:     true,
		loadingInfo: true,
		width:       80,
		height:      24,
	}
	m.updateContent()
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		sweepCmd(m.ctx, m.sess, m.im, m.start, false),
		reportCmd(m.ctx, m.sess, m.im),
		m.spinner.Tick,
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case listingMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.start = msg.start
			m.result = msg.res
			if m.symbolsList.FilterState() == list.Unfiltered {
				cmd = m.symbolsList.SetItems(symbolItems(m.sess.symbols, m.result))
				m.symbolsList.Title = fmt.Sprintf("Symbols (%d total)", len(m.symbolsList.Items()))
			}
		}
		m.updateContent()
		m.viewport.GotoTop()
		return m, cmd

	case infoMsg:
		m.loadingInfo = false
		m.info = msg.markdown
		if msg.err != nil {
			m.info = fmt.Sprintf("# Error\n\n%v\n", msg.err)
		}
		m.updateInfo()
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		// Only continue spinner if we're still loading something
		if m.loading || m.loadingInfo {
			if m.loading {
				m.updateContent()
			}
			if m.loadingInfo {
				m.updateInfo()
			}
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		if msg.Width != m.width || msg.Height != m.height {
			m.width = msg.Width
			m.height = msg.Height
			m.viewport.SetWidth(msg.Width)
			m.viewport.SetHeight(msg.Height - 2)
			m.symbolsList.SetWidth(msg.Width)
			m.symbolsList.SetHeight(msg.Height - 2)
			m.infoView.SetWidth(msg.Width)
			m.infoView.SetHeight(msg.Height - 2)
			m.updateContent()
			m.updateInfo()
		}

	case tea.KeyMsg:
		// Let the list handle keys while filtering
		if m.mode == viewSymbols && m.symbolsList.FilterState() == list.Filtering {
			if msg.String() == "ctrl+c" {
				m.cancel()
				return m, tea.Quit
			}
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		case "l":
			m.mode = viewListing
			return m, nil
		case "s":
			m.mode = viewSymbols
			return m, nil
		case "i":
			m.mode = viewInfo
			return m, nil
		case "enter":
			if m.mode != viewSymbols {
				break
			}
			if item, ok := m.symbolsList.SelectedItem().(symbolItem); ok {
				m.mode = viewListing
				m.loading = true
				m.updateContent()
				return m, tea.Batch(sweepCmd(m.ctx, m.sess, m.im, item.address, true), m.spinner.Tick)
			}
			return m, nil
		case "tab":
			m.mode = (m.mode + 1) % 3
			return m, nil
		case "shift+tab":
			m.mode = (m.mode + 2) % 3
			return m, nil
		}
	}

	// Update the active view
	switch m.mode {
	case viewSymbols:
		m.symbolsList, cmd = m.symbolsList.Update(msg)
	case viewInfo:
		m.infoView, cmd = m.infoView.Update(msg)
	default:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m model) View() string {
	var content string
	var menu string
	switch m.mode {
	case viewSymbols:
		content = m.symbolsList.View()
		menu = " Enter: disassemble • L: listing • I: info • Tab: cycle • Q: quit "
	case viewInfo:
		content = m.infoView.View()
		menu = " L: listing • S: symbols • Tab: cycle • Q: quit "
	default:
		content = m.viewport.View()
		menu = " S: symbols • I: info • Tab: cycle • Q: quit "
	}

	p := m.sess.cfg.Palette()
	menuStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color(p.Text)).
		Padding(0, 1).
		Width(m.width)

	return content + "\n" + menuStyle.Render(menu)
}

// updateContent renders the listing pane.
func (m *model) updateContent() {
	p := m.sess.cfg.Palette()
	header := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Comment)).
		Render(fmt.Sprintf("; %s  %s  0x%08x", m.title, m.im.Format, m.start))

	var body string
	switch {
	case m.loading:
		body = fmt.Sprintf("%s Disassembling...", m.spinner.View())
	case m.err != nil:
		body = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Label)).Render("; " + m.err.Error())
	case m.result != nil:
		body = colorize.Listing(p, m.result)
	}
	m.viewport.SetContent(header + "\n\n" + body)
}

// updateInfo renders the report pane.
func (m *model) updateInfo() {
	if m.loadingInfo {
		m.infoView.SetContent(fmt.Sprintf("%s Reading header...", m.spinner.View()))
		return
	}
	width := m.width
	if width == 0 {
		width = 80
	}
	r, err := styles.MarkdownRenderer(m.sess.cfg.Palette(), width-2)
	if err != nil {
		m.infoView.SetContent(m.info)
		return
	}
	rendered, err := r.Render(m.info)
	if err != nil {
		rendered = m.info
	}
	m.infoView.SetContent(strings.TrimSuffix(rendered, "\n"))
}
