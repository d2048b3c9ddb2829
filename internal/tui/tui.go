// Package tui is the interactive terminal frontend. Every action goes
// through the client API, so the same screen works against the server or the
// offline store.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"todoapp/internal/client"
	"todoapp/internal/domains/todo/model/dto"
	"todoapp/shared/patch"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const requestTimeout = 10 * time.Second

type inputMode int

const (
	inputNone inputMode = iota
	inputAdd
	inputEditTitle
	inputEditDescription
)

type (
	todosLoadedMsg struct {
		todos   []dto.TodoResponse
		offline bool
	}
	refreshMsg struct{}
	apiErrMsg  struct{ err error }
)

// listItem adapts a todo to bubbles/list.Item.
type listItem struct {
	todo dto.TodoResponse
}

func (i listItem) line() string {
	box := boxUnchecked
	if i.todo.Completed {
		box = boxChecked
	}

	return fmt.Sprintf("%s %s", box, i.todo.Title)
}

func (i listItem) Title() string       { return i.line() }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.todo.Title }

// itemDelegate renders each todo on a single line with its description, if
// any, dimmed behind it.
type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}

	box := mutedStyle.Render(boxUnchecked)
	text := it.todo.Title
	if it.todo.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}

	if it.todo.Description != nil && *it.todo.Description != "" {
		text += " " + mutedStyle.Render("("+*it.todo.Description+")")
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}

	fmt.Fprintln(w, prefix+box+" "+text)
}

type Model struct {
	api *client.Fallback

	list    list.Model
	input   textinput.Model
	mode    inputMode
	editID  int64
	offline bool
	lastErr string
	width   int
	height  int
}

func New(api *client.Fallback) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.Title = titleStyle.Render("Todos")
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("todo", "todos")
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "

	extraKeys := func() []key.Binding {
		return []key.Binding{
			key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
			key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit title")),
			key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "edit note")),
			key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
			key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
			key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		}
	}
	l.AdditionalShortHelpKeys = extraKeys
	l.AdditionalFullHelpKeys = extraKeys

	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 255

	return Model{
		api:   api,
		list:  l,
		input: input,
	}
}

// Run starts the interactive session and blocks until the user quits.
func Run(api *client.Fallback) error {
	_, err := tea.NewProgram(New(api), tea.WithAltScreen()).Run()

	return err
}

func (m Model) Init() tea.Cmd {
	return m.loadTodos()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeList()

		return m, nil

	case todosLoadedMsg:
		m.offline = msg.offline
		m.lastErr = ""

		items := make([]list.Item, 0, len(msg.todos))
		for _, todo := range msg.todos {
			items = append(items, listItem{todo: todo})
		}

		return m, m.list.SetItems(items)

	case refreshMsg:
		return m, m.loadTodos()

	case apiErrMsg:
		m.lastErr = msg.err.Error()

		return m, m.loadTodos()
	}

	if m.mode != inputNone {
		return m.updateInput(msg)
	}

	return m.updateList(msg)
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "enter":
			return m.submitInput()
		case "esc":
			m.mode = inputNone
			m.input.SetValue("")
			m.input.Blur()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	mode := m.mode

	if mode != inputEditDescription && value == "" {
		m.lastErr = "title cannot be empty"

		return m, nil
	}

	m.mode = inputNone
	m.input.SetValue("")
	m.input.Blur()

	switch mode {
	case inputAdd:
		return m, m.createTodo(value)
	case inputEditTitle:
		return m, m.updateTodo(m.editID, dto.UpdateTodoRequest{Title: patch.Set(value)})
	case inputEditDescription:
		// An emptied note clears the stored description entirely.
		req := dto.UpdateTodoRequest{Description: patch.Null[string]()}
		if value != "" {
			req.Description = patch.Set(value)
		}

		return m, m.updateTodo(m.editID, req)
	}

	return m, nil
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
		switch keyMsg.String() {
		case "q", "esc":
			return m, tea.Quit

		case " ":
			if item, ok := m.selected(); ok {
				return m, m.toggleTodo(item.todo.ID)
			}

			return m, nil

		case "d":
			if item, ok := m.selected(); ok {
				return m, m.deleteTodo(item.todo.ID)
			}

			return m, nil

		case "a":
			m.mode = inputAdd
			m.input.Placeholder = "New todo title..."
			m.input.SetValue("")
			m.input.Focus()

			return m, nil

		case "e":
			if item, ok := m.selected(); ok {
				m.mode = inputEditTitle
				m.editID = item.todo.ID
				m.input.Placeholder = "Todo title..."
				m.input.SetValue(item.todo.Title)
				m.input.CursorEnd()
				m.input.Focus()
			}

			return m, nil

		case "D":
			if item, ok := m.selected(); ok {
				m.mode = inputEditDescription
				m.editID = item.todo.ID
				m.input.Placeholder = "Note (leave empty to clear)..."
				m.input.SetValue("")
				if item.todo.Description != nil {
					m.input.SetValue(*item.todo.Description)
				}
				m.input.CursorEnd()
				m.input.Focus()
			}

			return m, nil

		case "r":
			return m, m.loadTodos()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m Model) View() string {
	header := m.header()
	content := m.list.View()

	if m.mode != inputNone {
		label := map[inputMode]string{
			inputAdd:             "Add todo",
			inputEditTitle:       "Edit title",
			inputEditDescription: "Edit note",
		}[m.mode]

		content += "\n" + inputBarStyle.Render(label+"\n"+m.input.View())
	}

	if m.lastErr != "" {
		content += "\n" + errorStyle.Render("✖ "+m.lastErr)
	}

	return header + "\n" + content
}

func (m *Model) header() string {
	done, pending := 0, 0
	for _, item := range m.list.Items() {
		if li, ok := item.(listItem); ok {
			if li.todo.Completed {
				done++
			} else {
				pending++
			}
		}
	}

	header := fmt.Sprintf("%s %d  %s %d",
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), pending,
	)

	if m.offline {
		header += "  " + offlineStyle.Render("[offline]")
	}

	return header
}

func (m *Model) selected() (listItem, bool) {
	item, ok := m.list.SelectedItem().(listItem)

	return item, ok
}

func (m *Model) resizeList() {
	height := m.height - 4
	if m.mode != inputNone {
		height -= 4
	}
	if height < 1 {
		height = 1
	}

	m.list.SetSize(m.width-2, height)
}

func (m Model) loadTodos() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		offline := m.api.Offline(ctx)

		todos, err := m.api.GetAll(ctx)
		if err != nil {
			return apiErrMsg{err: err}
		}

		return todosLoadedMsg{todos: todos, offline: offline}
	}
}

func (m Model) createTodo(title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if _, err := m.api.Create(ctx, dto.CreateTodoRequest{Title: title}); err != nil {
			return apiErrMsg{err: err}
		}

		return refreshMsg{}
	}
}

func (m Model) updateTodo(id int64, req dto.UpdateTodoRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if _, err := m.api.Update(ctx, id, req); err != nil {
			return apiErrMsg{err: err}
		}

		return refreshMsg{}
	}
}

func (m Model) toggleTodo(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if _, err := m.api.Toggle(ctx, id); err != nil {
			return apiErrMsg{err: err}
		}

		return refreshMsg{}
	}
}

func (m Model) deleteTodo(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := m.api.Delete(ctx, id)
		if err != nil {
			return apiErrMsg{err: err}
		}

		if !result.Success {
			return apiErrMsg{err: fmt.Errorf("todo %d was already gone", id)}
		}

		return refreshMsg{}
	}
}
