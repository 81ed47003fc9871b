package agentconfig

import "strconv"

///////////////////////////////////////////////////////////////////////////////
// TYPES

// TemplateTable implements table.TableData for the catalog, marking the
// selected entry.
type TemplateTable struct {
	Templates []Template
	Selected  string
}

// ModelTable implements table.TableData for the embeddings models,
// marking the selected model.
type ModelTable struct {
	Models   []ModelOption
	Selected string
}

///////////////////////////////////////////////////////////////////////////////
// TEMPLATE TABLE (LIST)

func (t TemplateTable) Header() []string {
	return []string{"KEY", "NAME", "TYPE", "DESCRIPTION"}
}

func (t TemplateTable) Len() int {
	return len(t.Templates)
}

func (t TemplateTable) Row(i int) []any {
	tmpl := t.Templates[i]
	key := tmpl.Key
	if key == t.Selected {
		key = "* " + key
	}
	return []any{key, tmpl.Name, tmpl.Type, tmpl.Description}
}

///////////////////////////////////////////////////////////////////////////////
// MODEL TABLE (LIST)

func (t ModelTable) Header() []string {
	return []string{"#", "MODEL", "LABEL"}
}

func (t ModelTable) Len() int {
	return len(t.Models)
}

func (t ModelTable) Row(i int) []any {
	m := t.Models[i]
	pos := strconv.Itoa(i + 1)
	if m.Value == t.Selected {
		pos = "* " + pos
	}
	return []any{pos, m.Value, m.Label}
}
