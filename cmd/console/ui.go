package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/outpost-engine/pkg/chat"
	"github.com/jwebster45206/outpost-engine/pkg/npc"
	"github.com/jwebster45206/outpost-engine/pkg/quest"
)

const (
	PlaceHolderText = "Say something, or describe a quest idea and press Ctrl+Q..."
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *http.Client
	state        *playerState
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error
	notice       string
	loading      bool

	// NPC selection state
	showNPCModal bool
	npcs         []npc.Profile
	selectedNPC  int
	loadingNPCs  bool
	current      *npc.Profile

	// Quit confirmation state
	showQuitModal bool

	spinner spinner.Model
}

type dialogueResponseMsg struct {
	npcID    string
	response *chat.DialogueResponse
	err      error
}

type questMsg struct {
	quest *quest.Quest
	err   error
}

type npcsLoadedMsg struct {
	npcs []npc.Profile
	err  error
}

type savedMsg struct {
	saveID string
	err    error
}

type loadedMsg struct {
	saveID string
	state  *playerState
	err    error
}

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = dimStyle.Render(":: ")
	ta.CharLimit = chat.MaxPlayerTextLength
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = busyStyle

	return ConsoleUI{
		config:       cfg,
		client:       client,
		state:        newPlayerState(),
		textarea:     ta,
		chatViewport: chatVp,
		metaViewport: metaVp,
		showNPCModal: true,
		loadingNPCs:  true,
		spinner:      sp,
	}
}

func (m *ConsoleUI) writeMetadata() {
	var content strings.Builder
	content.WriteString(headingStyle.Render("PLAYER") + "\n\n")
	content.WriteString(fmt.Sprintf("Crypto: %.0f\n\n", m.state.Crypto))

	if m.current != nil {
		content.WriteString("Talking to:\n")
		content.WriteString(m.current.Name + "\n")
		content.WriteString(dimStyle.Render(m.current.Role) + "\n\n")
	}

	content.WriteString("Quests:\n")
	if len(m.state.ActiveQuests) == 0 {
		content.WriteString("None\n")
	}
	for _, q := range m.state.ActiveQuests {
		content.WriteString("• " + q.Title + "\n")
	}

	content.WriteString("\n")
	content.WriteString("Commands:\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• Ctrl+Q: Ask for quest\n")
	content.WriteString("• Ctrl+Y: Copy reply\n")
	content.WriteString("• /npc: Switch NPC\n")
	content.WriteString("• /help: Help\n")
	content.WriteString("• Ctrl+C: Quit\n")

	m.metaViewport.SetContent(content.String())
}

// writeChatContent builds the conversation with the current NPC for the
// current viewport width.
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6 // Account for left(3) + right(3) padding
	if chatWidth < 10 {
		chatWidth = 10
	}

	var content strings.Builder
	content.WriteString(headingStyle.Render("OUTPOST") + "\n\n")
	if m.current != nil && m.current.Greeting != "" {
		content.WriteString(formatNPCLine(m.current.Name, m.current.Greeting, chatWidth) + "\n\n")
	}
	content.WriteString(ruleStyle.Render(strings.Repeat("─", max(chatWidth-6, 1))) + "\n\n")

	if m.current != nil {
		for _, msg := range m.state.history(m.current.ID) {
			switch msg.Role {
			case chat.ChatRoleAgent:
				content.WriteString(formatNPCLine(m.current.Name, msg.Content, chatWidth) + "\n\n")
			case chat.ChatRoleUser:
				content.WriteString(playerStyle.Render(m.config.PlayerName+": ") + wordwrap.String(msg.Content, chatWidth-6) + "\n\n")
			}
		}
	}

	if m.notice != "" {
		content.WriteString(m.notice + "\n\n")
	}
	if m.err != nil {
		content.WriteString(failStyle.Render("Error: "+m.err.Error()) + "\n\n")
	}
	if m.loading && m.current != nil {
		content.WriteString(m.spinner.View() + " " + busyStyle.Render(m.current.Name+" is thinking..."))
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func formatNPCLine(name, line string, width int) string {
	prefix := name + ": "
	wrapped := wordwrap.String(line, max(width-len(prefix), 10))
	return npcStyle.Render(prefix) + wrapped
}

func formatQuest(q *quest.Quest) string {
	var b strings.Builder
	b.WriteString(questStyle.Render("New quest: "+q.Title) + "\n")
	b.WriteString(q.Description + "\n")
	switch q.Type {
	case quest.TypeCollectItem:
		b.WriteString(fmt.Sprintf("Collect %d × %s", q.Quantity, q.TargetItem))
	case quest.TypeTalkToNPC:
		b.WriteString("Talk to " + q.TargetNPC)
	default:
		for _, o := range q.Objectives {
			b.WriteString(fmt.Sprintf("%s (0/%d)\n", o.Description, o.Target))
		}
	}
	if q.RewardCrypto > 0 {
		b.WriteString(fmt.Sprintf("\nReward: %d crypto", q.RewardCrypto))
	} else if q.Reward != "" {
		b.WriteString("\nReward: " + q.Reward)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m ConsoleUI) Init() tea.Cmd {
	return m.loadNPCs()
}

func (m *ConsoleUI) resize() {
	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	m.chatViewport.Width = chatWidth - 2
	m.chatViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(chatWidth - 4)
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle quit modal first
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	if m.showNPCModal {
		return m.updateNPCModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.writeChatContent()
		m.writeMetadata()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil

		case tea.KeyCtrlY:
			if line, ok := m.state.lastReply(m.current.ID); ok {
				if err := clipboard.WriteAll(line); err != nil {
					m.err = fmt.Errorf("failed to copy to clipboard: %w", err)
				} else {
					m.err = nil
					m.notice = dimStyle.Render("Copied last reply to clipboard.")
				}
				m.writeChatContent()
			}
			return m, nil

		case tea.KeyCtrlQ:
			if m.loading {
				return m, nil
			}
			suggestion := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()
			m.startLoading()
			return m, tea.Batch(m.requestQuest(suggestion), m.spinner.Tick)

		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}

			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}

			m.textarea.Reset()
			memory := chat.Transcript(m.state.history(m.current.ID), m.config.PlayerName, m.current.Name)
			m.state.addMessage(m.current.ID, chat.ChatRoleUser, input)
			m.startLoading()

			return m, tea.Batch(m.sendMessage(input, memory), m.spinner.Tick)
		}

	case dialogueResponseMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.state.addMessage(msg.npcID, chat.ChatRoleAgent, msg.response.Message)
		}
		m.writeChatContent()
		return m, nil

	case questMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.state.ActiveQuests = append(m.state.ActiveQuests, *msg.quest)
			if msg.quest.Response != "" {
				m.state.addMessage(m.current.ID, chat.ChatRoleAgent, msg.quest.Response)
			}
			m.notice = formatQuest(msg.quest)
		}
		m.writeChatContent()
		m.writeMetadata()
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.notice = dimStyle.Render("Game saved as " + msg.saveID + ".")
		}
		m.writeChatContent()
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.state = msg.state
			m.notice = dimStyle.Render("Loaded " + msg.saveID + ".")
		}
		m.writeChatContent()
		m.writeMetadata()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.writeChatContent()
		return m, cmd
	}

	// Update components for non-mouse events
	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m *ConsoleUI) startLoading() {
	m.loading = true
	m.err = nil
	m.notice = ""
	m.writeChatContent()
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	cmd := strings.ToLower(strings.TrimSpace(input))
	m.textarea.Reset()
	m.err = nil

	switch cmd {
	case "/help":
		m.notice = headingStyle.Render("Help:") + `
• Type a message and press Enter to talk
• Ctrl+Q asks for a quest; any typed text is sent as your idea
• Ctrl+Y copies the last reply
• /npc - Talk to someone else
• /quests - List your quests
• /save, /load - Save or restore the game
• Ctrl+C - Quit`

	case "/npc":
		m.showNPCModal = true
		return m, nil

	case "/quests":
		if len(m.state.ActiveQuests) == 0 {
			m.notice = "You have no quests."
			break
		}
		var b strings.Builder
		for i := range m.state.ActiveQuests {
			b.WriteString(formatQuest(&m.state.ActiveQuests[i]) + "\n\n")
		}
		m.notice = strings.TrimRight(b.String(), "\n")

	case "/save":
		m.writeChatContent()
		return m, m.save()

	case "/load":
		m.writeChatContent()
		return m, m.load()

	default:
		m.err = fmt.Errorf("unknown command %s, try /help", cmd)
	}

	m.writeChatContent()
	return m, nil
}

func (m ConsoleUI) sendMessage(message, memory string) tea.Cmd {
	p := *m.current
	req := chat.DialogueRequest{
		NPCID:            p.ID,
		NPCName:          p.Name,
		NPCPersonality:   p.Personality,
		NPCRole:          p.Role,
		NPCBackground:    p.Background,
		NPCDialogueStyle: p.DialogueStyle,
		PlayerMessage:    message,
		PlayerContext:    m.state.context(),
		MemoryContext:    memory,
	}
	return func() tea.Msg {
		resp, err := sendDialogue(m.client, m.config.APIBaseURL, req)
		return dialogueResponseMsg{npcID: p.ID, response: resp, err: err}
	}
}

func (m ConsoleUI) requestQuest(suggestion string) tea.Cmd {
	var others []string
	for _, p := range m.npcs {
		if p.ID != m.current.ID {
			others = append(others, p.Name)
		}
	}
	req := chat.GenerateQuestRequest{
		NPCName:             m.current.Name,
		ConversationContext: chat.Transcript(m.state.history(m.current.ID), m.config.PlayerName, m.current.Name),
		PlayerSuggestion:    suggestion,
		AvailableItems:      slices.Clone(quest.Items),
		AvailableNPCs:       others,
	}
	return func() tea.Msg {
		q, err := generateQuest(m.client, m.config.APIBaseURL, req)
		return questMsg{quest: q, err: err}
	}
}

func (m ConsoleUI) save() tea.Cmd {
	// marshal now; the state keeps changing while the request is in flight
	snapshot, err := json.Marshal(m.state)
	if err != nil {
		return func() tea.Msg { return savedMsg{err: err} }
	}
	return func() tea.Msg {
		id, err := saveGame(m.client, m.config.APIBaseURL, json.RawMessage(snapshot))
		return savedMsg{saveID: id, err: err}
	}
}

func (m ConsoleUI) load() tea.Cmd {
	return func() tea.Msg {
		s := newPlayerState()
		id, err := loadGame(m.client, m.config.APIBaseURL, s)
		return loadedMsg{saveID: id, state: s, err: err}
	}
}

func (m ConsoleUI) loadNPCs() tea.Cmd {
	return func() tea.Msg {
		npcs, err := listNPCs(m.client, m.config.APIBaseURL)
		return npcsLoadedMsg{npcs, err}
	}
}

func (m ConsoleUI) updateNPCModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case npcsLoadedMsg:
		m.loadingNPCs = false
		if msg.err != nil {
			m.err = msg.err
		} else if len(msg.npcs) == 0 {
			m.err = fmt.Errorf("the server has no NPCs")
		} else {
			m.npcs = msg.npcs
		}

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			if m.loadingNPCs || m.err != nil || m.current == nil {
				return m, tea.Quit
			}
			// back to the current conversation
			m.showNPCModal = false
			return m, textarea.Blink
		case tea.KeyUp:
			if m.selectedNPC > 0 {
				m.selectedNPC--
			}
		case tea.KeyDown:
			if m.selectedNPC < len(m.npcs)-1 {
				m.selectedNPC++
			}
		case tea.KeyEnter:
			if len(m.npcs) == 0 {
				return m, nil
			}
			selected := m.npcs[m.selectedNPC]
			m.current = &selected
			m.showNPCModal = false
			m.notice = ""
			m.err = nil
			if m.width > 0 && m.height > 0 {
				m.resize()
				m.ready = true
			}
			m.writeChatContent()
			m.writeMetadata()
			m.textarea.Focus()
			return m, textarea.Blink
		}
	}

	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				if m.showNPCModal {
					return m, nil
				}
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(boxTitleStyle.Render("Leave the Outpost?"))
	content.WriteString("\n\n")
	content.WriteString("Unsaved progress will be lost. Use /save first to keep it.")
	content.WriteString("\n\n")
	content.WriteString(dimStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := boxStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderNPCModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	switch {
	case m.loadingNPCs:
		content.WriteString(boxTitleStyle.Render("Loading Residents..."))
		content.WriteString("\n\n")
		content.WriteString(busyStyle.Render("Please wait while we find who is around..."))
	case m.err != nil:
		content.WriteString(boxTitleStyle.Render("Error"))
		content.WriteString("\n\n")
		content.WriteString(failStyle.Render(fmt.Sprintf("Failed to load NPCs: %v", m.err)))
		content.WriteString("\n\n")
		content.WriteString("Press Ctrl+C to exit")
	default:
		content.WriteString(boxTitleStyle.Render("Who do you want to talk to?"))
		content.WriteString("\n\n")

		for i, p := range m.npcs {
			label := fmt.Sprintf("%s (%s)", p.Name, p.Role)
			if i == m.selectedNPC {
				content.WriteString(pickedStyle.Render("▶ " + label))
			} else {
				content.WriteString(itemStyle.Render("  " + label))
			}
			content.WriteString("\n")
		}

		content.WriteString("\n")
		content.WriteString(dimStyle.Render("Use ↑/↓ to navigate, Enter to select, Esc to go back"))
	}

	modal := boxStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if m.showNPCModal {
		return m.renderNPCModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := leftPane.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			ruleStyle.Render(strings.Repeat("─", max(chatWidth-4, 1))),
			m.textarea.View(),
		),
	)

	metaPanel := rightPane.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}
