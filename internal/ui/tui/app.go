// Package tui is the terminal presentation shell. It only composes the
// store, form and poller components and renders their state; every protocol
// decision (refetch policy, confirmation gates, draft isolation, stale
// result discard) lives in those packages.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"insurtrack/internal/domain/customer"
	uidash "insurtrack/internal/ui/dashboard"
	"insurtrack/internal/ui/form"
	"insurtrack/internal/ui/store"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

type mode int

const (
	modeCustomers mode = iota
	modeCustomerForm
	modeConfirmCustomer
	modeInsurances
	modeInsuranceForm
	modeConfirmInsurance
)

type (
	refreshDoneMsg    struct{ err error }
	insRefreshDoneMsg struct{ err error }
	submitDoneMsg     struct{ err error }
	deleteDoneMsg     struct {
		deleted bool
		err     error
	}
	tickMsg time.Time
)

// Model is the root bubbletea model.
type Model struct {
	styles Styles
	logger *zap.Logger

	customers  *store.CustomerStore
	insurances *store.InsuranceStore
	poller     *uidash.Poller

	customerForm  *form.CustomerForm
	insuranceForm *form.InsuranceForm

	mode   mode
	search textinput.Model
	table  table.Model
	rows   []customer.Customer

	insCursor int

	editingCustomerID  int64 // 0 means create
	editingInsuranceID int64
	pendingDeleteID    int64

	fields fieldSet

	status string
	width  int
	height int
}

// New wires the shell around already-constructed components. The poller
// must be started by the caller.
func New(customers *store.CustomerStore, insurances *store.InsuranceStore, poller *uidash.Poller, logger *zap.Logger) Model {
	search := textinput.New()
	search.Placeholder = "search by name, email, phone, or address"
	search.CharLimit = 128
	search.Width = 48

	t := table.New(
		table.WithColumns(customerColumns(96)),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	return Model{
		styles:        DefaultStyles(),
		logger:        logger,
		customers:     customers,
		insurances:    insurances,
		poller:        poller,
		customerForm:  &form.CustomerForm{},
		insuranceForm: &form.InsuranceForm{},
		search:        search,
		table:         t,
	}
}

func customerColumns(width int) []table.Column {
	w := width / 5
	return []table.Column{
		{Title: "Name", Width: w},
		{Title: "Email", Width: w},
		{Title: "Phone", Width: w - 4},
		{Title: "Address", Width: w},
		{Title: "Created", Width: 12},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refreshCustomersCmd(), tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// ---------- commands ----------

func (m Model) refreshCustomersCmd() tea.Cmd {
	s := m.customers
	return func() tea.Msg {
		return refreshDoneMsg{err: s.Refresh(context.Background())}
	}
}

func (m Model) openInsurancesCmd(cust customer.Customer) tea.Cmd {
	s := m.insurances
	return func() tea.Msg {
		return insRefreshDoneMsg{err: s.Open(context.Background(), cust)}
	}
}

func (m Model) refreshInsurancesCmd() tea.Cmd {
	s := m.insurances
	return func() tea.Msg {
		return insRefreshDoneMsg{err: s.Refresh(context.Background())}
	}
}

func (m Model) submitCustomerCmd() tea.Cmd {
	f, s, id := m.customerForm, m.customers, m.editingCustomerID
	return func() tea.Msg {
		err := f.Submit(context.Background(), form.ValidateCustomerDraft,
			func(ctx context.Context, d form.CustomerDraft) error {
				if id == 0 {
					_, err := s.Create(ctx, d.Request())
					return err
				}
				_, err := s.Update(ctx, id, d.Request())
				return err
			})
		return submitDoneMsg{err: err}
	}
}

func (m Model) submitInsuranceCmd() tea.Cmd {
	f, s, id := m.insuranceForm, m.insurances, m.editingInsuranceID
	return func() tea.Msg {
		err := f.Submit(context.Background(), form.ValidateInsuranceDraft,
			func(ctx context.Context, d form.InsuranceDraft) error {
				req, err := d.Request()
				if err != nil {
					return err
				}
				if id == 0 {
					_, err = s.Create(ctx, req)
					return err
				}
				_, err = s.Update(ctx, id, req)
				return err
			})
		return submitDoneMsg{err: err}
	}
}

func (m Model) deleteCustomerCmd(id int64) tea.Cmd {
	s := m.customers
	return func() tea.Msg {
		deleted, err := s.Remove(context.Background(), id, func() bool { return true })
		return deleteDoneMsg{deleted: deleted, err: err}
	}
}

func (m Model) deleteInsuranceCmd(id int64) tea.Cmd {
	s := m.insurances
	return func() tea.Msg {
		deleted, err := s.Remove(context.Background(), id, func() bool { return true })
		return deleteDoneMsg{deleted: deleted, err: err}
	}
}

// ---------- update ----------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetColumns(customerColumns(max(60, m.width-8)))
		return m, nil

	case tickMsg:
		// Re-render so the dashboard header tracks the poller snapshot.
		return m, tickCmd()

	case refreshDoneMsg:
		m.rebuildRows()
		if msg.err != nil {
			m.status = "Failed to load customers"
		}
		return m, nil

	case insRefreshDoneMsg:
		if m.insCursor >= len(m.insurances.Insurances()) {
			m.insCursor = 0
		}
		if msg.err != nil {
			m.status = "Failed to load insurances"
		}
		return m, nil

	case submitDoneMsg:
		return m.handleSubmitDone(msg)

	case deleteDoneMsg:
		if msg.err != nil {
			m.status = "Failed to delete"
		}
		switch m.mode {
		case modeConfirmCustomer:
			m.mode = modeCustomers
			m.rebuildRows()
		case modeConfirmInsurance:
			m.mode = modeInsurances
			if n := len(m.insurances.Insurances()); m.insCursor >= n && m.insCursor > 0 {
				m.insCursor--
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleSubmitDone(msg submitDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// Form stays open with the draft preserved; its message is shown.
		return m, nil
	}
	switch m.mode {
	case modeCustomerForm:
		m.mode = modeCustomers
		m.rebuildRows()
		m.status = "Saved"
	case modeInsuranceForm:
		m.mode = modeInsurances
		m.status = "Saved"
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeCustomers:
		return m.handleCustomersKey(msg)
	case modeCustomerForm, modeInsuranceForm:
		return m.handleFormKey(msg)
	case modeConfirmCustomer, modeConfirmInsurance:
		return m.handleConfirmKey(msg)
	case modeInsurances:
		return m.handleInsurancesKey(msg)
	}
	return m, nil
}

func (m Model) handleCustomersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.search.Focused() {
		switch msg.String() {
		case "esc", "enter":
			m.search.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			m.customers.SetSearchTerm(m.search.Value())
			m.rebuildRows()
			return m, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/":
		m.search.Focus()
		return m, textinput.Blink
	case "r":
		return m, m.refreshCustomersCmd()
	case "a":
		m.editingCustomerID = 0
		draft := form.NewCustomerDraft(nil)
		m.customerForm.Open(draft, false)
		m.fields = customerFields(draft)
		m.mode = modeCustomerForm
		return m, textinput.Blink
	case "e":
		if cust, ok := m.selectedCustomer(); ok {
			m.editingCustomerID = cust.ID
			draft := form.NewCustomerDraft(&cust)
			m.customerForm.Open(draft, true)
			m.fields = customerFields(draft)
			m.mode = modeCustomerForm
			return m, textinput.Blink
		}
	case "d":
		if cust, ok := m.selectedCustomer(); ok {
			m.pendingDeleteID = cust.ID
			m.mode = modeConfirmCustomer
		}
	case "enter":
		if cust, ok := m.selectedCustomer(); ok {
			m.insCursor = 0
			m.mode = modeInsurances
			return m, m.openInsurancesCmd(cust)
		}
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	isCustomer := m.mode == modeCustomerForm

	switch msg.String() {
	case "esc":
		// Cancel discards the draft immediately; an in-flight submit may
		// still resolve but its result is discarded by the form.
		if isCustomer {
			m.customerForm.Cancel()
			m.mode = modeCustomers
		} else {
			m.insuranceForm.Cancel()
			m.mode = modeInsurances
		}
		return m, nil
	case "tab", "down":
		m.fields.next()
		return m, nil
	case "shift+tab", "up":
		m.fields.prev()
		return m, nil
	case "enter":
		if m.fields.focus < len(m.fields.inputs)-1 {
			m.fields.next()
			return m, nil
		}
		return m.submitCurrentForm(isCustomer)
	case "ctrl+s":
		return m.submitCurrentForm(isCustomer)
	}

	return m, m.fields.update(msg)
}

func (m Model) submitCurrentForm(isCustomer bool) (tea.Model, tea.Cmd) {
	if isCustomer {
		if m.customerForm.Status() == form.StatusSubmitting {
			return m, nil // submit affordance disabled while in flight
		}
		m.customerForm.SetDraft(customerDraftFromFields(&m.fields))
		return m, m.submitCustomerCmd()
	}
	if m.insuranceForm.Status() == form.StatusSubmitting {
		return m, nil
	}
	m.insuranceForm.SetDraft(insuranceDraftFromFields(&m.fields))
	return m, m.submitInsuranceCmd()
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	isCustomer := m.mode == modeConfirmCustomer

	switch msg.String() {
	case "y", "Y":
		if isCustomer {
			return m, m.deleteCustomerCmd(m.pendingDeleteID)
		}
		return m, m.deleteInsuranceCmd(m.pendingDeleteID)
	case "n", "N", "esc":
		// Declined: no call is issued, the list is unchanged.
		if isCustomer {
			m.mode = modeCustomers
		} else {
			m.mode = modeInsurances
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleInsurancesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.insurances.Insurances()

	switch msg.String() {
	case "esc", "q":
		m.insurances.Close()
		m.mode = modeCustomers
		return m, nil
	case "up", "k":
		if m.insCursor > 0 {
			m.insCursor--
		}
	case "down", "j":
		if m.insCursor < len(list)-1 {
			m.insCursor++
		}
	case "r":
		return m, m.refreshInsurancesCmd()
	case "a":
		m.editingInsuranceID = 0
		draft := form.NewInsuranceDraft(nil)
		m.insuranceForm.Open(draft, false)
		m.fields = insuranceFields(draft)
		m.mode = modeInsuranceForm
		return m, textinput.Blink
	case "e":
		if m.insCursor < len(list) {
			ins := list[m.insCursor]
			m.editingInsuranceID = ins.ID
			draft := form.NewInsuranceDraft(&ins)
			m.insuranceForm.Open(draft, true)
			m.fields = insuranceFields(draft)
			m.mode = modeInsuranceForm
			return m, textinput.Blink
		}
	case "d":
		if m.insCursor < len(list) {
			m.pendingDeleteID = list[m.insCursor].ID
			m.mode = modeConfirmInsurance
		}
	}
	return m, nil
}

func (m *Model) selectedCustomer() (customer.Customer, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return customer.Customer{}, false
	}
	return m.rows[idx], true
}

func (m *Model) rebuildRows() {
	m.rows = m.customers.Customers()
	rows := make([]table.Row, len(m.rows))
	for i, c := range m.rows {
		rows[i] = table.Row{
			c.Name, c.Email, c.Phone, c.Address,
			c.CreatedAt.Format("2006-01-02"),
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

// ---------- view ----------

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Header.Render(" Insurance Tracking "))
	sb.WriteString("\n\n")
	sb.WriteString(m.statsView())
	sb.WriteString("\n")

	switch m.mode {
	case modeCustomers:
		sb.WriteString(m.customersView())
	case modeCustomerForm:
		sb.WriteString(m.formView("Customer", m.customerForm.ErrMessage(), m.customerForm.Status()))
	case modeConfirmCustomer:
		sb.WriteString(m.customersView())
		sb.WriteString("\n")
		sb.WriteString(m.styles.Confirm.Render("Delete this customer? (y/n)"))
	case modeInsurances:
		sb.WriteString(m.insurancesView())
	case modeInsuranceForm:
		sb.WriteString(m.formView("Insurance", m.insuranceForm.ErrMessage(), m.insuranceForm.Status()))
	case modeConfirmInsurance:
		sb.WriteString(m.insurancesView())
		sb.WriteString("\n")
		sb.WriteString(m.styles.Confirm.Render("Delete this insurance? (y/n)"))
	}

	if m.status != "" {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Muted.Render(m.status))
	}

	return sb.String()
}

func (m Model) statsView() string {
	snap := m.poller.Snapshot()

	render := func(label, value string) string {
		return m.styles.StatCard.Render(
			m.styles.Muted.Render(label) + "\n" + m.styles.StatNum.Render(value),
		)
	}

	switch {
	case snap.Loading:
		return m.styles.Muted.Render("loading dashboard...")
	case snap.Err != nil:
		return m.styles.Error.Render("Failed to load dashboard statistics")
	case snap.Stats == nil:
		return ""
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		render("Total Customers", fmt.Sprintf("%d", snap.Stats.TotalCustomers)),
		" ",
		render("Active Policies", fmt.Sprintf("%d", snap.Stats.ActivePolicies)),
		" ",
		render("Upcoming Renewals", fmt.Sprintf("%d", snap.Stats.UpcomingRenewals)),
	)
}

func (m Model) customersView() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("Customers"))
	sb.WriteString("  ")
	sb.WriteString(m.search.View())
	sb.WriteString("\n\n")

	if m.customers.Loading() {
		sb.WriteString(m.styles.Muted.Render("loading..."))
		return sb.String()
	}
	if err := m.customers.Err(); err != nil {
		sb.WriteString(m.styles.Error.Render("Failed to load customers"))
		sb.WriteString("\n")
	}

	if len(m.rows) == 0 {
		if m.customers.SearchTerm() != "" {
			sb.WriteString(m.styles.Muted.Render("No customers found matching your search"))
		} else {
			sb.WriteString(m.styles.Muted.Render("No customers found"))
		}
	} else {
		sb.WriteString(m.table.View())
	}

	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Muted.Render(
		"[/] search  [a] add  [e] edit  [d] delete  [enter] insurances  [r] refresh  [q] quit",
	))
	return sb.String()
}

func (m Model) insurancesView() string {
	var sb strings.Builder

	cust := m.insurances.Customer()
	sb.WriteString(m.styles.Title.Render("Insurances for " + cust.Name))
	sb.WriteString("\n\n")

	if m.insurances.Loading() {
		sb.WriteString(m.styles.Muted.Render("loading..."))
		return sb.String()
	}
	if err := m.insurances.Err(); err != nil {
		sb.WriteString(m.styles.Error.Render("Failed to load insurances"))
		sb.WriteString("\n")
	}

	list := m.insurances.Insurances()
	if len(list) == 0 {
		sb.WriteString(m.styles.Muted.Render("No insurances. Press [a] to add one."))
	}
	for i, ins := range list {
		line := fmt.Sprintf("%-11s %s  $%.2f  %s",
			ins.Type, ins.RenewalDate.String(), ins.PremiumAmount, ins.CoverageDetails)
		if ins.Notes != "" {
			line += "  (" + ins.Notes + ")"
		}
		if i == m.insCursor {
			sb.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			sb.WriteString(m.styles.Normal.Render("  " + line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render(
		"[a] add  [e] edit  [d] delete  [r] refresh  [esc] back",
	))
	return sb.String()
}

func (m Model) formView(title, errMsg string, status form.Status) string {
	var sb strings.Builder

	if status == form.StatusSubmitting {
		title += " (saving...)"
	}
	sb.WriteString(m.styles.Title.Render(title))
	sb.WriteString("\n")
	sb.WriteString(m.fields.view(m.styles))

	if errMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Error.Render(errMsg))
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("[tab] next field  [enter] submit  [esc] cancel"))

	return m.styles.FormBox.Render(sb.String())
}
