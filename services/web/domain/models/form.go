package models

import (
	"io"
	"strconv"
	"strings"

	webdomain "github.com/ghuser/ecoleta/services/web/domain"
)

// UnsetSelection is the value of SelectedUF and SelectedCity before the user
// picks one.
const UnsetSelection = "0"

// Position is a map coordinate.
type Position struct {
	Latitude  float64
	Longitude float64
}

// IsZero reports whether p is the (0,0) default.
func (p Position) IsZero() bool {
	return p.Latitude == 0 && p.Longitude == 0
}

// Item is a catalogue entry as served by the points API.
type Item struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}

// FormData holds the free-text contact fields.
type FormData struct {
	Name     string
	Email    string
	Whatsapp string
}

// CreatePointForm is the whole state of the create-point page.
type CreatePointForm struct {
	Items            []Item
	UFs              []string
	SelectedUF       string
	Cities           []string
	SelectedCity     string
	SelectedPosition Position
	InitialPosition  Position
	SelectedItems    []int64
	FormData         FormData
}

// NewCreatePointForm returns the initial form state.
func NewCreatePointForm() *CreatePointForm {
	return &CreatePointForm{
		SelectedUF:   UnsetSelection,
		SelectedCity: UnsetSelection,
	}
}

// HasUF reports whether a state was picked.
func (f *CreatePointForm) HasUF() bool {
	return f.SelectedUF != UnsetSelection
}

// SelectUF picks a state. Changing the state clears the city list and the
// selected city since they belong to the previous state.
func (f *CreatePointForm) SelectUF(uf string) {
	uf = normalizeSelection(strings.ToUpper(uf))
	if uf == f.SelectedUF {
		return
	}
	f.SelectedUF = uf
	f.SelectedCity = UnsetSelection
	f.Cities = nil
}

// SelectCity picks a city of the selected state.
func (f *CreatePointForm) SelectCity(city string) {
	f.SelectedCity = normalizeSelection(city)
}

// ToggleItem adds id to the selection or removes it when already present.
func (f *CreatePointForm) ToggleItem(id int64) {
	for i, sel := range f.SelectedItems {
		if sel == id {
			f.SelectedItems = append(f.SelectedItems[:i:i], f.SelectedItems[i+1:]...)
			return
		}
	}
	f.SelectedItems = append(f.SelectedItems, id)
}

// IsSelected reports whether id is part of the selection.
func (f *CreatePointForm) IsSelected(id int64) bool {
	for _, sel := range f.SelectedItems {
		if sel == id {
			return true
		}
	}
	return false
}

// ClickMap records the point picked on the map.
func (f *CreatePointForm) ClickMap(p Position) {
	f.SelectedPosition = p
}

// SetField updates one of the contact fields by input name.
func (f *CreatePointForm) SetField(name, value string) error {
	switch name {
	case "name":
		f.FormData.Name = value
	case "email":
		f.FormData.Email = value
	case "whatsapp":
		f.FormData.Whatsapp = value
	default:
		return webdomain.ErrUnknownField
	}
	return nil
}

// SelectedItemsParam renders the selection as "1,3,5".
func (f *CreatePointForm) SelectedItemsParam() string {
	return joinIDs(f.SelectedItems)
}

// Submission composes the payload sent to the points API. Unset selections
// are sent empty so the API reports them as missing.
func (f *CreatePointForm) Submission() Submission {
	return Submission{
		Name:      strings.TrimSpace(f.FormData.Name),
		Email:     strings.TrimSpace(f.FormData.Email),
		Whatsapp:  strings.TrimSpace(f.FormData.Whatsapp),
		UF:        unsetToEmpty(f.SelectedUF),
		City:      unsetToEmpty(f.SelectedCity),
		Latitude:  f.SelectedPosition.Latitude,
		Longitude: f.SelectedPosition.Longitude,
		Items:     append([]int64(nil), f.SelectedItems...),
	}
}

// Submission is the point creation payload.
type Submission struct {
	Name      string
	Email     string
	Whatsapp  string
	UF        string
	City      string
	Latitude  float64
	Longitude float64
	Items     []int64
}

// ItemsParam renders Items in the comma-separated wire form.
func (s Submission) ItemsParam() string {
	return joinIDs(s.Items)
}

// Image is the uploaded point photo forwarded to the API.
type Image struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// CreatedPoint is the API's answer to a successful submission.
type CreatedPoint struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

// ParseSelectedItems reads a "1,3,5" selection. Entries that are not
// positive integers are dropped, as are repeats.
func ParseSelectedItems(s string) []int64 {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		dup := false
		for _, seen := range ids {
			if seen == id {
				dup = true
				break
			}
		}
		if !dup {
			ids = append(ids, id)
		}
	}
	return ids
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

func normalizeSelection(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return UnsetSelection
	}
	return v
}

func unsetToEmpty(v string) string {
	if v == UnsetSelection {
		return ""
	}
	return v
}
