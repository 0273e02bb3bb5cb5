package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/desertthunder/ccx/internal/models"
	"github.com/desertthunder/ccx/internal/services"
	"github.com/desertthunder/ccx/internal/session"
)

// autoCloseDelay is how long the add-workflow confirmation stays visible
// before the modal closes itself.
const autoCloseDelay = 1500 * time.Millisecond

// focusZone identifies which region of the page owns key input.
type focusZone int

const (
	focusForm focusZone = iota
	focusDirectory
	focusResults
)

// Messages delivered by async commands. Each carries the generation or
// invocation token stamped when its request was issued, so the session
// can drop responses that a later request superseded.

type directoryMsg struct {
	playlists []models.Playlist
	err       error
}

type resultMsg struct {
	gen uint64
	res *session.Result
	err error
}

type detailMsg struct {
	gen     uint64
	details *models.TrackDetails
	err     error
}

type addPlaylistsMsg struct {
	token     uint64
	playlists []models.Playlist
	err       error
}

type addDoneMsg struct {
	token uint64
	err   error
}

type autoCloseMsg struct {
	token uint64
}

// Model is the root Bubble Tea model. All page state lives in the wrapped
// [session.Session]; the model only holds widget state (inputs, lists,
// focus) and translates key events into session transitions.
type Model struct {
	sess    *session.Session
	checker services.Checker
	logger  *log.Logger

	inputs    map[session.Field]*textinput.Model
	fieldIdx  int
	focus     focusZone
	formErr   string
	results   list.Model
	directory list.Model
	addCursor int
	addToken  uint64
	help      help.Model
	width     int
	height    int
	quitting  bool
}

func NewModel(checker services.Checker, logger *log.Logger) Model {
	m := Model{
		sess:      session.New(),
		checker:   checker,
		logger:    logger,
		inputs:    map[session.Field]*textinput.Model{},
		results:   newList("Results", 14),
		directory: newList("Your Playlists", 10),
		help:      help.New(),
	}

	for _, f := range []session.Field{
		session.FieldText, session.FieldLimit,
		session.FieldRangeStart, session.FieldRangeEnd,
	} {
		ti := textinput.New()
		ti.CharLimit = 512
		ti.Width = 48
		m.inputs[f] = &ti
	}

	m.applyMode()
	return m
}

func (m Model) Init() tea.Cmd {
	if m.sess.Mode().UsesDirectory() {
		m.sess.BeginDirectoryLoad()
		return m.fetchDirectory()
	}
	return textinput.Blink
}

// applyMode resets the form widgets after a mode switch: every field is
// cleared and the mode's first field takes focus.
func (m *Model) applyMode() {
	for _, ti := range m.inputs {
		ti.Reset()
		ti.Blur()
	}

	m.inputs[session.FieldText].Placeholder = "search query"
	if m.sess.Mode() == session.ModeURL {
		m.inputs[session.FieldText].Placeholder = "spotify playlist or album URL"
	}
	m.inputs[session.FieldLimit].Placeholder = fmt.Sprintf("limit (default %d)", session.DefaultLimit)
	m.inputs[session.FieldRangeStart].Placeholder = "range start"
	m.inputs[session.FieldRangeEnd].Placeholder = "range end"

	m.fieldIdx = 0
	m.focus = focusForm
	m.formErr = ""

	fields := m.sess.Mode().Fields()
	if len(fields) > 0 {
		m.inputs[fields[0]].Focus()
	}
}

// gatherInputs snapshots the visible fields into a raw input record.
func (m Model) gatherInputs() session.Inputs {
	return session.Inputs{
		Text:       m.inputs[session.FieldText].Value(),
		Limit:      m.inputs[session.FieldLimit].Value(),
		RangeStart: m.inputs[session.FieldRangeStart].Value(),
		RangeEnd:   m.inputs[session.FieldRangeEnd].Value(),
	}
}

// Commands

func (m Model) fetchDirectory() tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.checker.MyPlaylists(context.Background())
		return directoryMsg{playlists: playlists, err: err}
	}
}

func (m Model) runQuery(gen uint64, req *session.Request) tea.Cmd {
	return func() tea.Msg {
		res, err := m.checker.Check(context.Background(), req)
		return resultMsg{gen: gen, res: res, err: err}
	}
}

func (m Model) fetchDetail(gen uint64, trackID string) tea.Cmd {
	return func() tea.Msg {
		details, err := m.checker.TrackDetails(context.Background(), trackID)
		return detailMsg{gen: gen, details: details, err: err}
	}
}

func (m Model) fetchAddPlaylists(token uint64) tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.checker.MyPlaylists(context.Background())
		return addPlaylistsMsg{token: token, playlists: playlists, err: err}
	}
}

func (m Model) submitAdd(token uint64, sub *session.AddSubmission) tea.Cmd {
	return func() tea.Msg {
		err := m.checker.AddToPlaylist(context.Background(), sub.TrackID, sub.PlaylistID)
		return addDoneMsg{token: token, err: err}
	}
}

func scheduleAutoClose(token uint64) tea.Cmd {
	return tea.Tick(autoCloseDelay, func(time.Time) tea.Msg {
		return autoCloseMsg{token: token}
	})
}

// Update

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.results.SetSize(msg.Width-4, 14)
		m.directory.SetSize(msg.Width-4, 10)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case directoryMsg:
		m.sess.ApplyDirectory(msg.playlists, msg.err)
		return m, m.directory.SetItems(playlistItems(m.sess.Playlists()))

	case resultMsg:
		if m.sess.ApplyResult(msg.gen, msg.res, msg.err) {
			m.results.Title = m.sess.Title()
			return m, m.results.SetItems(trackItems(m.sess.Tracks()))
		}
		return m, nil

	case detailMsg:
		m.sess.ApplyDetail(msg.gen, msg.details, msg.err)
		return m, nil

	case addPlaylistsMsg:
		if m.sess.ApplyAddPlaylists(msg.token, msg.playlists, msg.err) {
			m.addCursor = 0
		}
		return m, nil

	case addDoneMsg:
		if m.sess.ApplyAddResult(msg.token, msg.err) && msg.err == nil {
			return m, scheduleAutoClose(msg.token)
		}
		return m, nil

	case autoCloseMsg:
		m.sess.AutoCloseAdd(msg.token)
		return m, nil
	}

	return m.updateWidgets(msg)
}

// handleKey routes key events by precedence: the add modal first, then
// the detail modal, then whichever page zone has focus.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.sess.Add().Open() {
		return m.handleAddKeys(msg)
	}
	if m.sess.Detail().Open() {
		return m.handleDetailKeys(msg)
	}

	switch {
	case msg.String() == "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Tab):
		return m.cycleFocus()

	case key.Matches(msg, keys.Enter):
		switch m.focus {
		case focusForm:
			return m.submitQuery()
		case focusDirectory:
			return m.selectPlaylist()
		}
	}

	// Printable keys belong to the focused text field; shortcuts apply
	// only outside the form.
	if m.focus == focusForm {
		return m.updateWidgets(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Mode):
		return m.cycleMode()
	}

	if m.focus == focusResults {
		switch {
		case key.Matches(msg, keys.Detail):
			return m.openDetail()
		case key.Matches(msg, keys.Add):
			return m.beginAdd()
		}
	}

	return m.updateWidgets(msg)
}

func (m Model) cycleMode() (tea.Model, tea.Cmd) {
	modes := session.Modes()
	next := modes[(int(m.sess.Mode())+1)%len(modes)]
	m.sess.SetMode(next)
	m.applyMode()

	if next.UsesDirectory() {
		m.sess.BeginDirectoryLoad()
		return m, tea.Batch(textinput.Blink, m.fetchDirectory())
	}
	return m, textinput.Blink
}

func (m Model) cycleFocus() (tea.Model, tea.Cmd) {
	fields := m.sess.Mode().Fields()

	if m.focus == focusForm && m.fieldIdx < len(fields)-1 {
		m.inputs[fields[m.fieldIdx]].Blur()
		m.fieldIdx++
		m.inputs[fields[m.fieldIdx]].Focus()
		return m, textinput.Blink
	}

	if len(fields) > 0 && m.focus == focusForm {
		m.inputs[fields[m.fieldIdx]].Blur()
	}

	switch m.focus {
	case focusForm:
		if m.sess.Mode().UsesDirectory() {
			m.focus = focusDirectory
		} else {
			m.focus = focusResults
		}
	case focusDirectory:
		m.focus = focusResults
	case focusResults:
		m.focus = focusForm
		m.fieldIdx = 0
		if len(fields) > 0 {
			m.inputs[fields[0]].Focus()
		}
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) submitQuery() (tea.Model, tea.Cmd) {
	req, err := m.sess.ResolveQuery(m.gatherInputs())
	if err != nil {
		m.formErr = err.Error()
		return m, nil
	}

	m.formErr = ""
	gen := m.sess.BeginQuery()
	if m.logger != nil {
		m.logger.Debug("query issued", "mode", m.sess.Mode().String(), "endpoint", req.Endpoint)
	}
	return m, m.runQuery(gen, req)
}

func (m Model) selectPlaylist() (tea.Model, tea.Cmd) {
	item, ok := m.directory.SelectedItem().(playlistItem)
	if !ok {
		return m, nil
	}
	if err := m.sess.SelectPlaylist(item.playlist.ID); err != nil {
		m.formErr = err.Error()
	}
	return m, nil
}

func (m Model) openDetail() (tea.Model, tea.Cmd) {
	item, ok := m.results.SelectedItem().(trackItem)
	if !ok {
		return m, nil
	}
	gen, ok := m.sess.OpenDetail(item.track.ID)
	if !ok {
		return m, nil
	}
	return m, m.fetchDetail(gen, item.track.ID)
}

func (m Model) beginAdd() (tea.Model, tea.Cmd) {
	item, ok := m.results.SelectedItem().(trackItem)
	if !ok {
		return m, nil
	}
	token, ok := m.sess.BeginAdd(item.track.ID)
	if !ok {
		return m, nil
	}
	m.addToken = token
	return m, m.fetchAddPlaylists(token)
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Quit):
		m.sess.CloseDetail()
	}
	return m, nil
}

func (m Model) handleAddKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Back):
		m.sess.CloseAdd()
		return m, nil

	case key.Matches(msg, keys.Up):
		if m.addCursor > 0 {
			m.addCursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.addCursor < len(m.sess.AddPlaylists())-1 {
			m.addCursor++
		}
		return m, nil

	case key.Matches(msg, keys.Enter):
		var playlistID string
		if playlists := m.sess.AddPlaylists(); m.addCursor < len(playlists) {
			playlistID = playlists[m.addCursor].ID
		}
		sub, err := m.sess.SubmitAdd(playlistID)
		if err != nil {
			return m, nil
		}
		return m, m.submitAdd(m.addToken, sub)
	}
	return m, nil
}

func (m Model) updateWidgets(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.focus == focusForm {
		fields := m.sess.Mode().Fields()
		if m.fieldIdx < len(fields) {
			ti := m.inputs[fields[m.fieldIdx]]
			updated, cmd := ti.Update(msg)
			*ti = updated
			cmds = append(cmds, cmd)
		}
	}

	if m.focus == focusDirectory {
		var cmd tea.Cmd
		m.directory, cmd = m.directory.Update(msg)
		cmds = append(cmds, cmd)
	}

	if m.focus == focusResults {
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.sess.Add().Open() {
		return m.renderAdd()
	}
	if m.sess.Detail().Open() {
		return m.renderDetail()
	}

	var b strings.Builder
	b.WriteString(styles.title.Render("Spotify Copyright Checker"))
	b.WriteString("\n")
	b.WriteString(m.renderModeBar())
	b.WriteString("\n\n")
	b.WriteString(m.renderForm())

	if m.sess.Mode().UsesDirectory() {
		b.WriteString("\n")
		b.WriteString(m.renderDirectory())
	}

	b.WriteString("\n")
	b.WriteString(m.renderResults())
	b.WriteString("\n")
	b.WriteString(styles.help.Render(m.help.ShortHelpView(keys.ShortHelp())))
	return b.String()
}

func (m Model) renderModeBar() string {
	parts := make([]string, 0, len(session.Modes()))
	for _, mode := range session.Modes() {
		label := mode.Label()
		if mode == m.sess.Mode() {
			label = styles.ok.Render("[" + label + "]")
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderForm() string {
	var b strings.Builder
	for _, f := range m.sess.Mode().Fields() {
		b.WriteString(m.inputs[f].View())
		b.WriteString("\n")
	}
	if m.formErr != "" {
		b.WriteString(styles.err.Render(m.formErr))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderDirectory() string {
	switch m.sess.Directory().Phase {
	case session.Loading:
		return styles.warn.Render("Loading playlists...")
	case session.Failed:
		return styles.err.Render(m.sess.Directory().Err)
	case session.Ready:
		return m.directory.View()
	default:
		return ""
	}
}

func (m Model) renderResults() string {
	if m.sess.Loading() {
		return styles.warn.Render("Checking...")
	}
	if m.sess.ResultError() != "" {
		return styles.err.Render(m.sess.ResultError())
	}
	if m.sess.Title() == "" {
		return styles.help.Render("Run a check to see results.")
	}
	return m.results.View()
}

func (m Model) renderDetail() string {
	var b strings.Builder

	switch m.sess.Detail().Phase {
	case session.Loading:
		b.WriteString(styles.warn.Render("Loading track details..."))

	case session.Failed:
		b.WriteString(styles.err.Render(m.sess.Detail().Err))

	case session.Ready:
		d := m.sess.DetailData()
		b.WriteString(styles.title.Render(
			fmt.Sprintf("%s — %s", d.Track.Name, d.Track.Artist)))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%s · confidence %.2f\n\n", badge(d.Free()), d.Confidence()))

		label := d.Album.Label
		if label == "" {
			label = "Unknown label"
		}
		b.WriteString(fmt.Sprintf("Album: %s (%s)\n", d.Album.Name, d.Album.ReleaseDate))
		b.WriteString(fmt.Sprintf("Label: %s\n", label))
		b.WriteString(fmt.Sprintf("Popularity: %d  Explicit: %t\n\n", d.Track.Popularity, d.Track.Explicit))

		if d.License != nil {
			if d.License.Reason != "" {
				b.WriteString(fmt.Sprintf("Reason: %s\n", d.License.Reason))
			}
			b.WriteString("Signals:\n")
			b.WriteString("  positive: " + signalLine(d.License.Signals.Positive) + "\n")
			b.WriteString("  negative: " + signalLine(d.License.Signals.Negative) + "\n\n")
		}

		if d.AudioFeatures != nil && d.AudioFeatures.HasData {
			b.WriteString("Audio features:\n")
			b.WriteString(featureLine("tempo", d.AudioFeatures.Tempo))
			b.WriteString(featureLine("danceability", d.AudioFeatures.Danceability))
			b.WriteString(featureLine("energy", d.AudioFeatures.Energy))
			b.WriteString("\n")
		}

		b.WriteString("Album copyrights:\n")
		if len(d.Album.Copyrights) == 0 {
			b.WriteString("  None\n")
		} else {
			for _, c := range d.Album.Copyrights {
				b.WriteString(fmt.Sprintf("  [%s] %s\n", c.Type, c.Text))
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.help.Render("esc to close"))
	return b.String()
}

func signalLine(signals []string) string {
	if len(signals) == 0 {
		return "none"
	}
	return strings.Join(signals, ", ")
}

func featureLine(name string, v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("  %s: %.2f\n", name, *v)
}

func (m Model) renderAdd() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Add to Playlist"))
	b.WriteString("\n")

	switch m.sess.Add().Phase {
	case session.Loading:
		b.WriteString(styles.warn.Render("Loading playlists..."))

	case session.Failed:
		b.WriteString(styles.err.Render(m.sess.Add().Err))

	case session.Ready:
		for i, p := range m.sess.AddPlaylists() {
			cursor := "  "
			if i == m.addCursor {
				cursor = styles.ok.Render("> ")
			}
			b.WriteString(fmt.Sprintf("%s%s (%s)\n", cursor, p.Name, p.Owner))
		}
		if m.sess.AddNotice() != "" {
			b.WriteString("\n")
			b.WriteString(styles.err.Render(m.sess.AddNotice()))
		}

	case session.Submitting:
		b.WriteString(styles.warn.Render("Adding..."))

	case session.Done:
		b.WriteString(styles.ok.Render("✓ Added to playlist"))
	}

	b.WriteString("\n\n")
	b.WriteString(styles.help.Render("enter to confirm · esc to cancel"))
	return b.String()
}
