package ruggy

// Document is the JSON-shaped unit of storage. The binding layer imposes no
// schema beyond "a JSON object"; field values may be anything encoding/json
// can represent.
type Document map[string]any

// IDField is the identifier field the engine adds to every inserted document.
const IDField = "_id"

// ID returns the engine-assigned identifier, or "" if the document has none.
func (d Document) ID() string {
	id, _ := d[IDField].(string)
	return id
}
