package svgcard

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/beevik/etree"
	"github.com/tmih06/profilegen/pkg/logger"
)

var templateLog = logger.New("svgcard:template")

// TemplateField is one id substitution in a hand-made SVG template.
type TemplateField struct {
	ID     string
	Text   string
	Length int // 0 disables dot padding
}

// FindAndReplace sets the text of the element with the given id. Unknown ids
// are ignored so a template only has to carry the fields it displays.
func FindAndReplace(doc *etree.Document, id, text string) {
	el := doc.FindElement(fmt.Sprintf("//*[@id='%s']", id))
	if el == nil {
		return
	}
	el.SetText(text)
}

// JustifyFormat sets the element text and resizes the sibling "<id>_dots"
// padding run so the value stays right-aligned at the given length. The run
// is empty when the text already fills the column.
func JustifyFormat(doc *etree.Document, id, text string, length int) {
	FindAndReplace(doc, id, text)
	count := length - utf8.RuneCountInString(text)
	if count < 0 {
		count = 0
	}
	padding := ""
	if count > 0 {
		padding = strings.Repeat(".", count) + " "
	}
	FindAndReplace(doc, id+"_dots", padding)
}

// JustifyInt comma-formats n before justifying.
func JustifyInt(doc *etree.Document, id string, n, length int) {
	JustifyFormat(doc, id, comma(n), length)
}

// TemplateFields maps card data onto the element ids used by the classic
// hand-made profile templates. The lengths match the dot runs those
// templates shipped with; fields without a length are substituted verbatim.
func TemplateFields(d *Data) []TemplateField {
	return []TemplateField{
		{ID: "age_data", Text: d.Uptime, Length: 49},
		{ID: "commit_data", Text: comma(d.Commits), Length: 22},
		{ID: "star_data", Text: strconv.Itoa(d.Stars), Length: 14},
		{ID: "repo_data", Text: strconv.Itoa(d.Repos), Length: 7},
		{ID: "contrib_data", Text: comma(d.Contributions)},
		{ID: "follower_data", Text: strconv.Itoa(d.Followers), Length: 10},
		{ID: "loc_data", Text: comma(d.Additions - d.Deletions), Length: 9},
		{ID: "loc_add", Text: comma(d.Additions)},
		{ID: "loc_del", Text: comma(d.Deletions), Length: 7},
	}
}

// UpdateTemplate rewrites an SVG template in place, substituting every field
// by element id.
func UpdateTemplate(path string, fields []TemplateField) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return fmt.Errorf("failed to read template %s: %w", path, err)
	}
	for _, f := range fields {
		if f.Length > 0 {
			JustifyFormat(doc, f.ID, f.Text, f.Length)
		} else {
			FindAndReplace(doc, f.ID, f.Text)
		}
	}
	if err := doc.WriteToFile(path); err != nil {
		return fmt.Errorf("failed to write template %s: %w", path, err)
	}
	templateLog.Printf("updated template %s (%d fields)", path, len(fields))
	return nil
}
