package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pookanfai/studio/core/conversation"
	"github.com/pookanfai/studio/core/playback"
	"github.com/pookanfai/studio/core/studio"
)

type chatMode int

const (
	modeRoleplay chatMode = iota
	modeAssistant
)

func (m chatMode) identity() conversation.Identity {
	if m == modeAssistant {
		return conversation.IdentityAssistant
	}
	return conversation.IdentityRoleplay
}

func (m chatMode) String() string {
	if m == modeAssistant {
		return "พู่กันไฟ"
	}
	return "โรลเพลย์"
}

const assistantName = "พู่กันไฟ"

type chatTheme struct {
	header      lipgloss.Style
	tabActive   lipgloss.Style
	tabInactive lipgloss.Style
	panel       lipgloss.Style
	inputPanel  lipgloss.Style
	user        lipgloss.Style
	agent       lipgloss.Style
	greeting    lipgloss.Style
	status      lipgloss.Style
	errorStatus lipgloss.Style
	help        lipgloss.Style
}

func newChatTheme() chatTheme {
	pink := lipgloss.Color("#ff71ce")
	blue := lipgloss.Color("#01cdfe")
	mint := lipgloss.Color("#05ffa1")
	muted := lipgloss.Color("#9ca3d8")

	return chatTheme{
		header: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(blue).
			Padding(0, 1),
		tabActive: lipgloss.NewStyle().
			Background(pink).
			Foreground(lipgloss.Color("#22062f")).
			Bold(true).
			Padding(0, 1),
		tabInactive: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),
		panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(blue).
			Padding(0, 1),
		inputPanel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(mint).
			Padding(0, 1),
		user:        lipgloss.NewStyle().Foreground(mint).Bold(true),
		agent:       lipgloss.NewStyle().Foreground(pink).Bold(true),
		greeting:    lipgloss.NewStyle().Foreground(muted).Italic(true),
		status:      lipgloss.NewStyle().Foreground(blue).Bold(true),
		errorStatus: lipgloss.NewStyle().Foreground(pink).Bold(true),
		help:        lipgloss.NewStyle().Foreground(muted),
	}
}

type replyMsg struct {
	mode  chatMode
	reply studio.Reply
	err   error
}

type speakDoneMsg struct{ err error }

type stateMsg playback.State

// offerState replaces whatever state is still queued in ch with s, so the
// reader always catches up to the newest one. ch must have a buffer of one
// and a single sender.
func offerState(ch chan playback.State, s playback.State) {
	select {
	case <-ch:
	default:
	}
	ch <- s
}

func waitState(ch <-chan playback.State) tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-ch)
	}
}

type chatModel struct {
	ctx         context.Context
	chat        *studio.Chat
	coordinator *playback.Coordinator
	states      <-chan playback.State
	downloadDir string

	mode      chatMode
	waiting   map[chatMode]bool
	playState playback.State
	status    string
	statusErr bool
	sources   string

	input      textinput.Model
	transcript viewport.Model
	spinner    spinner.Model
	theme      chatTheme
	width      int
	height     int
}

func newChatModel(ctx context.Context, chat *studio.Chat, coordinator *playback.Coordinator, states <-chan playback.State, mode chatMode, downloadDir string) chatModel {
	input := textinput.New()
	input.Prompt = "❯ "
	input.CharLimit = 4000
	input.Placeholder = "พิมพ์ข้อความแล้วกด Enter"
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#05ffa1"))

	m := chatModel{
		ctx:         ctx,
		chat:        chat,
		coordinator: coordinator,
		states:      states,
		downloadDir: downloadDir,
		mode:        mode,
		waiting:     make(map[chatMode]bool),
		input:       input,
		transcript:  viewport.New(80, 20),
		spinner:     sp,
		theme:       newChatTheme(),
	}
	m.renderTranscript()
	return m
}

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, waitState(m.states))
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(10, msg.Width-8)
		m.transcript.Width = max(10, msg.Width-4)
		m.transcript.Height = max(3, msg.Height-10)
		m.renderTranscript()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.switchMode()
			return m, nil
		case "enter":
			cmd := m.send()
			return m, cmd
		case "ctrl+s":
			cmd := m.speakLast()
			return m, cmd
		case "ctrl+x":
			m.stop()
			return m, nil
		case "ctrl+d":
			m.download()
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.transcript, cmd = m.transcript.Update(msg)
			return m, cmd
		}

	case replyMsg:
		m.waiting[msg.mode] = false
		switch {
		case msg.err != nil:
			m.setError(msg.err.Error())
		case msg.reply.Err != nil:
			m.setError("ตอบกลับไม่สำเร็จ")
		case msg.reply.SpeechErr != nil:
			m.setError(speechMessage(msg.reply.SpeechErr))
		default:
			m.setStatus("พร้อม")
		}
		if msg.mode == modeAssistant {
			m.sources = formatGrounding(msg.reply.Grounding)
		}
		m.renderTranscript()
		return m, nil

	case speakDoneMsg:
		if msg.err != nil {
			m.setError(speechMessage(msg.err))
		}
		return m, nil

	case stateMsg:
		m.playState = playback.State(msg)
		return m, waitState(m.states)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.waiting[m.mode] {
			m.renderTranscript()
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *chatModel) switchMode() {
	next := modeAssistant
	if m.mode == modeAssistant {
		next = modeRoleplay
	}
	if next == modeRoleplay {
		if _, ok := m.chat.Character(); !ok {
			m.setError(studio.MsgMissingCharacter)
			return
		}
	}
	m.mode = next
	m.sources = ""
	m.renderTranscript()
}

func (m *chatModel) send() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return nil
	}
	if m.waiting[m.mode] {
		m.setError("กำลังรอคำตอบ กรุณารอสักครู่")
		return nil
	}
	m.input.SetValue("")
	m.waiting[m.mode] = true
	m.setStatus("กำลังคิด...")

	ctx, chat, mode := m.ctx, m.chat, m.mode
	return func() tea.Msg {
		var (
			reply studio.Reply
			err   error
		)
		if mode == modeAssistant {
			reply, err = chat.Assist(ctx, text, wantsSearch(text))
		} else {
			reply, err = chat.Roleplay(ctx, text)
		}
		return replyMsg{mode: mode, reply: reply, err: err}
	}
}

func (m *chatModel) speakLast() tea.Cmd {
	text := lastAgentTurn(m.chat.Conversation(m.mode.identity()).Turns())
	if text == "" {
		m.setError(studio.MsgNothingToSpeak)
		return nil
	}
	if m.coordinator.State() == playback.StateSynthesizing {
		m.setError(studio.MsgSpeechBusy)
		return nil
	}
	m.setStatus("กำลังสร้างเสียง...")

	ctx, chat := m.ctx, m.chat
	return func() tea.Msg {
		return speakDoneMsg{err: chat.Speak(ctx, text)}
	}
}

func (m *chatModel) stop() {
	if err := m.coordinator.Stop(); err != nil {
		m.setError("ไม่มีเสียงที่กำลังเล่น")
		return
	}
	m.setStatus("หยุดเล่นเสียงแล้ว")
}

func (m *chatModel) download() {
	path, err := m.coordinator.Download(m.downloadDir, nowFunc())
	if err != nil {
		if errors.Is(err, playback.ErrNoResource) {
			m.setError(studio.MsgNoAudio)
		} else {
			m.setError(err.Error())
		}
		return
	}
	m.setStatus("บันทึกไฟล์เสียง: " + path)
}

func (m *chatModel) setStatus(s string) { m.status, m.statusErr = s, false }
func (m *chatModel) setError(s string)  { m.status, m.statusErr = s, true }

func speechMessage(err error) string {
	if errors.Is(err, playback.ErrBusy) {
		return studio.MsgSpeechBusy
	}
	return studio.MsgSpeechFailed
}

func lastAgentTurn(turns []conversation.Turn) string {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Speaker == conversation.SpeakerAgent {
			return turns[i].Text
		}
	}
	return ""
}

func (m *chatModel) agentName() string {
	if m.mode == modeRoleplay {
		if c, ok := m.chat.Character(); ok {
			return c.Name
		}
	}
	return assistantName
}

func (m *chatModel) renderTranscript() {
	conv := m.chat.Conversation(m.mode.identity())
	wrap := lipgloss.NewStyle().Width(max(10, m.transcript.Width-2))

	var b strings.Builder
	if greeting := conv.Greeting(); greeting != "" {
		b.WriteString(m.theme.greeting.Render(greeting) + "\n\n")
	}
	for _, entry := range conv.Display() {
		if entry.Speaker == conversation.SpeakerUser {
			b.WriteString(m.theme.user.Render("คุณ") + "\n")
			b.WriteString(wrap.Render(entry.Content) + "\n\n")
			continue
		}
		b.WriteString(m.theme.agent.Render(m.agentName()) + "\n")
		if entry.Pending {
			b.WriteString(m.spinner.View() + " กำลังพิมพ์...\n\n")
			continue
		}
		b.WriteString(wrap.Render(entry.Content) + "\n\n")
	}
	if m.sources != "" {
		b.WriteString(m.theme.help.Render(m.sources))
	}

	m.transcript.SetContent(b.String())
	m.transcript.GotoBottom()
}

func (m chatModel) View() string {
	tabs := make([]string, 0, 2)
	for _, mode := range []chatMode{modeRoleplay, modeAssistant} {
		style := m.theme.tabInactive
		if mode == m.mode {
			style = m.theme.tabActive
		}
		tabs = append(tabs, style.Render(mode.String()))
	}
	header := m.theme.header.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...) +
		m.theme.help.Render(fmt.Sprintf("  เสียง: %s (%s)", m.chat.Voice(), m.playState)))

	status := m.theme.status.Render(m.status)
	if m.statusErr {
		status = m.theme.errorStatus.Render(m.status)
	}
	help := m.theme.help.Render("enter ส่ง · tab สลับ · ctrl+s พูด · ctrl+x หยุด · ctrl+d ดาวน์โหลด · esc ออก")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.theme.panel.Render(m.transcript.View()),
		m.theme.inputPanel.Render(m.input.View()),
		status,
		help,
	)
}
