package renderer

import (
	"embed"
	"html/template"
	"io"

	"github.com/etnz/income"
)

//go:embed templates/*.html
var templates embed.FS

var pageTemplate = template.Must(template.ParseFS(templates, "templates/page.html"))

// Input is a numeric filter field.
type Input struct {
	Name        string
	Placeholder string
	Value       string // as typed by the user
}

// InputGroup is a range of two inputs.
type InputGroup struct {
	Title  string
	Inputs []Input
}

// Page is the view model of the whole document: exactly one of Loading, Error and Table is set.
type Page struct {
	Title   string
	Lang    string
	Loading bool
	Error   string
	Groups  []InputGroup
	Sort    string
	Dir     string
	Table   *Table
	Export  string // link to the markdown rendition of the same view
}

var groups = []struct {
	title string
	keys  []income.BoundKey
	holds []string
}{
	{"Date Range", []income.BoundKey{income.StartYear, income.EndYear}, []string{"Start Year", "End Year"}},
	{"Revenue Range", []income.BoundKey{income.MinRevenue, income.MaxRevenue}, []string{"Min Revenue", "Max Revenue"}},
	{"Net Income Range", []income.BoundKey{income.MinNetIncome, income.MaxNetIncome}, []string{"Min Net Income", "Max Net Income"}},
}

// NewPage builds the page for the current state of session s and the view state.
//
// The derived sequence is only computed when the session is loaded.
func NewPage(title string, s *income.Session, state income.ViewState, opts Options) *Page {
	p := &Page{Title: title, Lang: "en"}
	switch s.Status() {
	case income.Loading:
		p.Loading = true
		return p
	case income.Failed:
		p.Error = s.Err().Error()
		return p
	}

	for _, g := range groups {
		group := InputGroup{Title: g.title}
		for i, k := range g.keys {
			group.Inputs = append(group.Inputs, Input{
				Name:        string(k),
				Placeholder: g.holds[i],
				Value:       state.Criteria.Get(k).Text(),
			})
		}
		p.Groups = append(p.Groups, group)
	}
	p.Sort = state.Sort.Field.String()
	p.Dir = state.Sort.Direction.String()
	p.Table = NewTable(s.View(state), state, opts)
	p.Export = "table.md?" + state.Values().Encode()
	return p
}

// RenderPage writes the HTML document.
func RenderPage(w io.Writer, p *Page) error {
	return pageTemplate.Execute(w, p)
}
