package tui

import (
	"fmt"
	"strconv"
	"strings"

	"insurtrack/internal/ui/form"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// fieldSet is a vertical run of labelled text inputs with one focused at a
// time. It only holds widget state; draft semantics live in the form
// package.
type fieldSet struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newFieldSet(labels []string, values []string, placeholders []string) fieldSet {
	inputs := make([]textinput.Model, len(labels))
	for i := range labels {
		in := textinput.New()
		in.CharLimit = 256
		in.Width = 40
		if i < len(placeholders) {
			in.Placeholder = placeholders[i]
		}
		if i < len(values) {
			in.SetValue(values[i])
		}
		inputs[i] = in
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}
	return fieldSet{labels: labels, inputs: inputs}
}

func (fs *fieldSet) next() {
	fs.inputs[fs.focus].Blur()
	fs.focus = (fs.focus + 1) % len(fs.inputs)
	fs.inputs[fs.focus].Focus()
}

func (fs *fieldSet) prev() {
	fs.inputs[fs.focus].Blur()
	fs.focus = (fs.focus - 1 + len(fs.inputs)) % len(fs.inputs)
	fs.inputs[fs.focus].Focus()
}

func (fs *fieldSet) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	fs.inputs[fs.focus], cmd = fs.inputs[fs.focus].Update(msg)
	return cmd
}

func (fs *fieldSet) values() []string {
	out := make([]string, len(fs.inputs))
	for i := range fs.inputs {
		out[i] = strings.TrimSpace(fs.inputs[i].Value())
	}
	return out
}

func (fs *fieldSet) view(styles Styles) string {
	var sb strings.Builder
	for i := range fs.inputs {
		sb.WriteString(styles.Label.Render(fmt.Sprintf("%-17s", fs.labels[i])))
		sb.WriteString(fs.inputs[i].View())
		sb.WriteString("\n")
	}
	return sb.String()
}

// customerFields builds the inputs for a customer draft.
func customerFields(d form.CustomerDraft) fieldSet {
	return newFieldSet(
		[]string{"Name *", "Email", "Phone", "Address", "Notes"},
		[]string{d.Name, d.Email, d.Phone, d.Address, d.Notes},
		[]string{"Jane Doe", "jane@example.com", "+1 555 0100", "", ""},
	)
}

// customerDraftFromFields reads the inputs back into a draft.
func customerDraftFromFields(fs *fieldSet) form.CustomerDraft {
	v := fs.values()
	return form.CustomerDraft{
		Name:    v[0],
		Email:   v[1],
		Phone:   v[2],
		Address: v[3],
		Notes:   v[4],
	}
}

// insuranceFields builds the inputs for a policy draft.
func insuranceFields(d form.InsuranceDraft) fieldSet {
	premium := ""
	if d.PremiumAmount != 0 {
		premium = strconv.FormatFloat(d.PremiumAmount, 'f', -1, 64)
	}
	return newFieldSet(
		[]string{"Type *", "Renewal date *", "Coverage *", "Premium *", "Notes"},
		[]string{d.Type, d.RenewalDate, d.CoverageDetails, premium, d.Notes},
		[]string{"life|health|auto|property|disability|liability|other", "2026-01-31", "", "0.00", ""},
	)
}

// insuranceDraftFromFields reads the inputs back into a draft. A premium
// that does not parse becomes -1 so validation rejects it.
func insuranceDraftFromFields(fs *fieldSet) form.InsuranceDraft {
	v := fs.values()
	premium := float64(0)
	if v[3] != "" {
		p, err := strconv.ParseFloat(v[3], 64)
		if err != nil {
			premium = -1
		} else {
			premium = p
		}
	}
	return form.InsuranceDraft{
		Type:            v[0],
		RenewalDate:     v[1],
		CoverageDetails: v[2],
		PremiumAmount:   premium,
		Notes:           v[4],
	}
}
