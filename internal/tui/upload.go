package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adriagisbert/stayloom/internal/store"
	"github.com/adriagisbert/stayloom/pkg/domain"
)

// uploadSteps is the wizard order. Each entry is a view name; the step's path
// segment under /account/:username/upload is the suffix after "upload-".
var uploadSteps = []string{
	"upload-basic-data",
	"upload-location",
	"upload-services",
	"upload-rules",
	"upload-images",
}

// publishedMsg carries the outcome of submitting the wizard draft.
type publishedMsg struct {
	acc *domain.Accommodation
	err error
}

// editLoadedMsg carries the listing being edited, already copied into the
// accommodation store's draft.
type editLoadedMsg struct {
	err error
}

// uploadModel is one step of the accommodation upload wizard. The draft lives
// in the accommodation store so it survives step navigation; each step reads
// the draft on entry and writes it back on advance.
type uploadModel struct {
	accommodations *store.AccommodationStore
	step           string // view name, one of uploadSteps
	username       string // :username segment for step paths
	editing        bool   // accomodation-edit prefills from the server
	regNumber      string // set when editing

	fields []authField
	cursor int
	busy   bool
	errMsg string
}

func newUploadModel(accommodations *store.AccommodationStore, step, username string) uploadModel {
	m := uploadModel{accommodations: accommodations, step: step, username: username}
	m.fields = m.stepFields()
	return m
}

// newEditModel prefills the wizard from an existing listing and starts at the
// basic-data step.
func newEditModel(accommodations *store.AccommodationStore, username, regNumber string) uploadModel {
	m := uploadModel{
		accommodations: accommodations,
		step:           "upload-basic-data",
		username:       username,
		editing:        true,
		regNumber:      regNumber,
	}
	m.fields = m.stepFields()
	return m
}

// stepFields builds the step's field set, prefilled from the store draft.
func (m *uploadModel) stepFields() []authField {
	draft := m.accommodations.Current()
	switch m.step {
	case "upload-location":
		return []authField{
			{label: "direction", value: draft.Location.Direction},
			{label: "city     ", value: draft.Location.City},
			{label: "zip      ", value: draft.Location.Zip},
			{label: "lat      ", value: formatFloat(draft.Location.Coords.Lat)},
			{label: "lng      ", value: formatFloat(draft.Location.Coords.Lng)},
		}
	case "upload-services":
		return []authField{
			{label: "services (comma separated)", value: strings.Join(draft.Services, ", ")},
		}
	case "upload-rules":
		return []authField{
			{label: "rules (comma separated)", value: strings.Join(draft.Rules, ", ")},
		}
	case "upload-images":
		return []authField{
			{label: "image urls (comma separated)", value: strings.Join(draft.Images, ", ")},
		}
	default: // basic-data
		return []authField{
			{label: "register number", value: draft.RegisterNumber},
			{label: "category       ", value: draft.Category},
			{label: "price/night    ", value: formatFloat(draft.PricePerNight)},
			{label: "guests         ", value: formatInt(draft.NumOfGuests)},
			{label: "beds           ", value: formatInt(draft.NumOfBeds)},
			{label: "bedrooms       ", value: formatInt(draft.NumOfBedRooms)},
			{label: "bathrooms      ", value: formatInt(draft.NumOfBathRooms)},
			{label: "area m²        ", value: formatFloat(draft.Area)},
		}
	}
}

func formatFloat(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatInt(i int) string {
	if i == 0 {
		return ""
	}
	return strconv.Itoa(i)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// commit validates the step's fields and writes them into the store draft.
func (m *uploadModel) commit() error {
	draft := m.accommodations.Current()
	v := func(i int) string { return strings.TrimSpace(m.fields[i].value) }

	switch m.step {
	case "upload-location":
		lat, err := parseOptionalFloat(v(3))
		if err != nil {
			return fmt.Errorf("lat: enter a number")
		}
		lng, err := parseOptionalFloat(v(4))
		if err != nil {
			return fmt.Errorf("lng: enter a number")
		}
		if v(0) == "" || v(1) == "" {
			return fmt.Errorf("direction and city are required")
		}
		draft.Location = domain.Location{
			Direction: v(0),
			City:      v(1),
			Zip:       v(2),
			Coords:    domain.Coordinate{Lat: lat, Lng: lng},
		}
	case "upload-services":
		draft.Services = splitList(v(0))
	case "upload-rules":
		draft.Rules = splitList(v(0))
	case "upload-images":
		draft.Images = splitList(v(0))
	default:
		if v(0) == "" {
			return fmt.Errorf("register number is required")
		}
		price, err := parseOptionalFloat(v(2))
		if err != nil || price <= 0 {
			return fmt.Errorf("price/night: enter a number")
		}
		guests, err := parseOptionalInt(v(3))
		if err != nil || guests < 1 {
			return fmt.Errorf("guests: enter a number")
		}
		beds, err := parseOptionalInt(v(4))
		if err != nil {
			return fmt.Errorf("beds: enter a number")
		}
		bedrooms, err := parseOptionalInt(v(5))
		if err != nil {
			return fmt.Errorf("bedrooms: enter a number")
		}
		bathrooms, err := parseOptionalInt(v(6))
		if err != nil {
			return fmt.Errorf("bathrooms: enter a number")
		}
		area, err := parseOptionalFloat(v(7))
		if err != nil {
			return fmt.Errorf("area: enter a number")
		}
		draft.RegisterNumber = v(0)
		draft.Category = v(1)
		draft.PricePerNight = price
		draft.NumOfGuests = guests
		draft.NumOfBeds = beds
		draft.NumOfBedRooms = bedrooms
		draft.NumOfBathRooms = bathrooms
		draft.Area = area
	}

	m.accommodations.SetState(draft)
	return nil
}

func parseOptionalFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseOptionalInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// nextStepPath returns the path of the step after the current one, or ""
// when this is the last step.
func (m uploadModel) nextStepPath() string {
	for i, s := range uploadSteps {
		if s == m.step && i < len(uploadSteps)-1 {
			next := uploadSteps[i+1]
			return "/account/" + m.username + "/upload/" + strings.TrimPrefix(next, "upload-")
		}
	}
	return ""
}

func (m uploadModel) publish() tea.Cmd {
	accommodations := m.accommodations
	return func() tea.Msg {
		acc, err := accommodations.Publish(context.Background())
		return publishedMsg{acc: acc, err: err}
	}
}

func (m uploadModel) Init() tea.Cmd {
	if !m.editing {
		return nil
	}
	accommodations := m.accommodations
	reg := m.regNumber
	return func() tea.Msg {
		_, err := accommodations.ByRegisterNumber(context.Background(), reg)
		return editLoadedMsg{err: err}
	}
}

func (m uploadModel) Update(msg tea.Msg) (uploadModel, tea.Cmd) {
	switch msg := msg.(type) {
	case editLoadedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.fields = m.stepFields()

	case publishedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		return m, navigateCmd("/accomodation/" + msg.acc.RegisterNumber)

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.cursor = (m.cursor + 1) % len(m.fields)
		case "shift+tab", "up":
			m.cursor = (m.cursor - 1 + len(m.fields)) % len(m.fields)
		case "enter":
			if m.cursor < len(m.fields)-1 {
				m.cursor++
				return m, nil
			}
			if err := m.commit(); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.errMsg = ""
			if m.editing {
				// Edit shows all steps at once conceptually; a single commit
				// republishes with the changed basic data.
				m.busy = true
				return m, m.publish()
			}
			if next := m.nextStepPath(); next != "" {
				return m, navigateCmd(next)
			}
			m.busy = true
			return m, m.publish()
		default:
			m.fields[m.cursor].value = editRune(m.fields[m.cursor].value, msg.String())
		}
	}
	return m, nil
}

func (m uploadModel) stepIndex() int {
	for i, s := range uploadSteps {
		if s == m.step {
			return i
		}
	}
	return 0
}

func (m uploadModel) View() string {
	var b strings.Builder

	title := "Publish a place"
	if m.editing {
		title = "Edit " + m.regNumber
	}
	b.WriteString("\n  " + selectedStyle.Render(title))
	if !m.editing {
		b.WriteString("  " + metaStyle.Render(fmt.Sprintf("step %d/%d", m.stepIndex()+1, len(uploadSteps))))
	}
	b.WriteString("\n\n")

	for i, f := range m.fields {
		b.WriteString(renderField(f.label, f.value, i == m.cursor && !m.busy, false) + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.busy:
		b.WriteString("  " + dimStyle.Render("publishing...") + "\n")
	case m.errMsg != "":
		b.WriteString("  " + errorStyle.Render(m.errMsg) + "\n")
	case m.step == "upload-images" || m.editing:
		b.WriteString("  " + helpEntry("enter", "publish") + "\n")
	default:
		b.WriteString("  " + helpEntry("enter", "next step") + "\n")
	}
	return b.String()
}
